package telemetry

import (
	"context"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
)

// NoOpTracer is a Tracer that records nothing.
type NoOpTracer struct{}

// NewNoOpTracer creates a new NoOpTracer.
func NewNoOpTracer() *NoOpTracer {
	return &NoOpTracer{}
}

// Start returns the context unchanged and a span that discards everything.
func (t *NoOpTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, &NoOpSpan{}
}

// EmitPlan does nothing.
func (t *NoOpTracer) EmitPlan(_ context.Context, _ []string) {}

// NoOpSpan discards all span operations.
type NoOpSpan struct{}

// End does nothing.
func (s *NoOpSpan) End() {}

// RecordError does nothing.
func (s *NoOpSpan) RecordError(_ error) {}

// SetAttribute does nothing.
func (s *NoOpSpan) SetAttribute(_ string, _ any) {}

// Write discards the data and reports it as written.
func (s *NoOpSpan) Write(p []byte) (int, error) {
	return len(p), nil
}
