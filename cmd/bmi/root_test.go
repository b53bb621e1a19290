package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/yusufkecer/bmi-calculator/internal/bmi"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := execute(cmd, args)
	return out.String(), err
}

func TestRootCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "default example", args: nil, want: "22.86\n"},
		{name: "light adult", args: []string{"45.5", "1.6"}, want: "17.77\n"},
		{name: "whole number", args: []string{"80", "2.0"}, want: "20\n"},
		{name: "zero weight", args: []string{"0", "1.75"}, want: "0\n"},
		{name: "negative weight", args: []string{"-70", "1.75"}, want: "-22.86\n"},
		{name: "explicit terminator", args: []string{"--", "-70", "1.75"}, want: "-22.86\n"},
		{name: "log level before numbers", args: []string{"--log-level", "debug", "-70", "1.75"}, want: "-22.86\n"},
		{name: "log level with equals", args: []string{"--log-level=error", "80", "2"}, want: "20\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRootCmdInvalidHeight(t *testing.T) {
	for _, height := range []string{"0", "-1.75"} {
		out, err := run(t, "70", height)
		if !errors.Is(err, bmi.ErrInvalidHeight) {
			t.Errorf("height %s: error = %v, want ErrInvalidHeight", height, err)
		}
		if out != "" {
			t.Errorf("height %s: unexpected output %q", height, out)
		}
	}
}

func TestRootCmdBadArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "one argument", args: []string{"70"}},
		{name: "three arguments", args: []string{"70", "1.75", "3"}},
		{name: "unparsable weight", args: []string{"heavy", "1.75"}},
		{name: "unparsable height", args: []string{"70", "tall"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Errorf("expected error for args %v", tt.args)
			}
		})
	}
}

func TestTerminateFlags(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{})
	tests := []struct {
		in   []string
		want []string
	}{
		{in: nil, want: []string{}},
		{in: []string{"70", "-1.75"}, want: []string{"--", "70", "-1.75"}},
		{in: []string{"--log-level", "debug", "-70", "1.75"}, want: []string{"--log-level", "debug", "--", "-70", "1.75"}},
		{in: []string{"--", "-70", "1.75"}, want: []string{"--", "-70", "1.75"}},
		{in: []string{"--help"}, want: []string{"--help"}},
	}
	for _, tt := range tests {
		got := terminateFlags(cmd, tt.in)
		if strings.Join(got, " ") != strings.Join(tt.want, " ") || len(got) != len(tt.want) {
			t.Errorf("terminateFlags(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRootCmdArgCountMessage(t *testing.T) {
	_, err := run(t, "70")
	if err == nil || err.Error() != "expected 0 or 2 arguments (weight height), got 1" {
		t.Errorf("error = %v", err)
	}
}
