package logger

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// messager describes an error that can report its own message and metadata
// without the rest of the chain. This matches the Message() and Metadata()
// methods provided by zerr.Error; other errors fall back to Error().
type messager interface {
	Message() string
	Metadata() map[string]any
}

// ErrorEntry is one link of an error chain prepared for rendering.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the error chain and extracts one entry per link.
// Traversal stops at the first error that cannot report its own message,
// which is rendered with its full Error() text.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry

	current := err
	for current != nil {
		if m, ok := current.(messager); ok {
			entries = append(entries, ErrorEntry{
				Message:  m.Message(),
				Metadata: m.Metadata(),
			})
			current = errors.Unwrap(current)
			continue
		}

		entries = append(entries, ErrorEntry{Message: current.Error()})
		break
	}

	return entries
}

// formatErrorEntries renders the chain hierarchically. The first entry is the
// main error, the rest are listed under a "Caused by:" header. Metadata keys
// are printed sorted under their entry.
func formatErrorEntries(entries []ErrorEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			// Indent continuation lines to align with "Error: "
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
			lines = appendMetadata(lines, entry.Metadata, "       ")
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
		lines = appendMetadata(lines, entry.Metadata, "      ")
	}

	return strings.Join(lines, "\n")
}

func appendMetadata(lines []string, metadata map[string]any, indent string) []string {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, metadata[k]))
	}
	return lines
}
