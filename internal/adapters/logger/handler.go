package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/WestonVoglesonger/Multifact-V3/internal/ui/output"
	"github.com/WestonVoglesonger/Multifact-V3/internal/ui/style"
	"github.com/muesli/termenv"
)

// PrettyHandler is a slog.Handler that renders records as single colored
// lines for terminal consumption. Warnings and errors carry a level icon,
// attributes are appended as key=value pairs.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	preset []slog.Attr
	group  string
}

// NewPrettyHandler creates a handler writing to w. A nil writer falls back
// to os.Stderr, a nil options level falls back to slog.LevelInfo.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	level := slog.Leveler(slog.LevelInfo)
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	icon, color := levelDecoration(r.Level)

	parts := make([]string, 0, 2+len(h.preset)+r.NumAttrs())
	if icon != "" {
		parts = append(parts, icon)
	}
	parts = append(parts, r.Message)

	for _, attr := range h.preset {
		parts = append(parts, h.formatAttr(attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, h.formatAttr(attr))
		return true
	})

	styled := h.out.String(strings.Join(parts, " ")).Foreground(color)
	_, err := h.out.WriteString(styled.String() + "\n")

	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.preset = slices.Concat(h.preset, attrs)
	return &clone
}

// WithGroup returns a new Handler that prefixes attribute keys with name.
// An empty name returns the receiver unchanged per the slog contract.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.group = name
	return &clone
}

func (h *PrettyHandler) formatAttr(attr slog.Attr) string {
	key := attr.Key
	if h.group != "" {
		key = h.group + "." + key
	}
	return key + "=" + attr.Value.String()
}

func levelDecoration(level slog.Level) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, termenv.RGBColor(string(style.Red))
	case level >= slog.LevelWarn:
		return style.Warning, termenv.RGBColor(string(style.Yellow))
	default:
		return "", termenv.RGBColor(string(style.Slate))
	}
}
