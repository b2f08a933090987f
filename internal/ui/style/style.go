// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Indigo = lipgloss.Color("#4F46E5")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Ink    = lipgloss.Color("#0B0F19")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
	Circle  = "○"
)
