// Package output provides utilities for creating termenv.Output with consistent
// color profile and TTY handling across the CLI.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// ColorProfile returns the color profile for the current environment.
// It checks if NO_COLOR is set, returning Ascii if so.
// Otherwise, it detects the terminal's capabilities automatically.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a new termenv.Output with the shared profile logic.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
