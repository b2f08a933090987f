package ports

import (
	"context"
	"io"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
	// EmitPlan signals that a set of tokens is scheduled for compilation.
	EmitPlan(ctx context.Context, tokenPaths []string)
}

// Span represents a unit of work. Writes stream raw tool or provider output
// attached to the span.
type Span interface {
	io.Writer
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// SpanConfig holds configuration for a starting span. It carries no fields
// yet; it exists so Start can take options without a signature change later.
type SpanConfig struct{}

// SpanOption is a functional option for configuring a span.
type SpanOption func(*SpanConfig)
