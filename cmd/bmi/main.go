// Command bmi prints the Body Mass Index for a weight (kg) and height (m).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := execute(newRootCmd(os.Stdout), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
