package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yusufkecer/bmi-calculator/internal/bmi"
	"github.com/yusufkecer/bmi-calculator/pkg/logging"
)

// Used when no arguments are given.
const (
	exampleWeight = 70
	exampleHeight = 1.75
)

func newRootCmd(out io.Writer) *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "bmi [weight height]",
		Short: "Compute the Body Mass Index",
		Long: "Compute the Body Mass Index from a weight in kilograms and a height in meters.\n" +
			"Without arguments the example 70 kg / 1.75 m is used.",
		Args:          cobra.RangeArgs(0, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			weight, height := float64(exampleWeight), exampleHeight
			switch len(args) {
			case 0:
			case 2:
				var err error
				if weight, err = parseNumber("weight", args[0]); err != nil {
					return err
				}
				if height, err = parseNumber("height", args[1]); err != nil {
					return err
				}
			default:
				return fmt.Errorf("expected 0 or 2 arguments (weight height), got %d", len(args))
			}

			result, err := bmi.Compute(weight, height)
			if err != nil {
				return err
			}
			slog.Debug("computed bmi", "weight", weight, "height", height, "bmi", result)

			_, err = fmt.Fprintln(out, strconv.FormatFloat(result, 'f', -1, 64))
			return err
		},
	}

	cmd.SetOut(out)
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	return cmd
}

func parseNumber(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return v, nil
}

// execute runs cmd with args, ending flag parsing before the first numeric
// positional so negative values such as -1.75 are not read as shorthand flags.
func execute(cmd *cobra.Command, args []string) error {
	cmd.SetArgs(terminateFlags(cmd, args))
	return cmd.Execute()
}

func terminateFlags(cmd *cobra.Command, args []string) []string {
	out := make([]string, 0, len(args)+1)
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return append(out, args[i:]...)
		}
		if _, err := strconv.ParseFloat(a, 64); err == nil {
			out = append(out, "--")
			return append(out, args[i:]...)
		}
		out = append(out, a)
		if takesValue(cmd, a) && i+1 < len(args) {
			i++
			out = append(out, args[i])
		}
	}
	return out
}

// takesValue reports whether a is a "--name" flag whose value is the next arg.
func takesValue(cmd *cobra.Command, a string) bool {
	name, ok := strings.CutPrefix(a, "--")
	if !ok || name == "" || strings.Contains(name, "=") {
		return false
	}
	f := cmd.Flags().Lookup(name)
	return f != nil && f.NoOptDefVal == ""
}
