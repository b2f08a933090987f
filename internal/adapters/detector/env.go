// Package detector provides environment detection for log format selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// LogFormat represents the log rendering format for the application.
type LogFormat int

const (
	// FormatAuto automatically detects the appropriate format.
	FormatAuto LogFormat = iota
	// FormatPretty forces human-readable log lines.
	FormatPretty
	// FormatJSON forces structured JSON log lines.
	FormatJSON
)

// DetectEnvironment returns the recommended log format based on the
// environment. Logs go to stderr, so the terminal check looks at stderr;
// CI environments get JSON regardless.
func DetectEnvironment() LogFormat {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return FormatJSON
	}
	return FormatPretty
}

// ResolveFormat applies the user override to auto-detection.
// override should be one of: "auto", "pretty", "json", or empty.
func ResolveFormat(autoDetected LogFormat, override string) LogFormat {
	switch override {
	case "pretty":
		return FormatPretty
	case "json":
		return FormatJSON
	case "auto", "":
		return autoDetected
	default:
		return autoDetected
	}
}
