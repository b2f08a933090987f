package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
)

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
type OTelTracer struct {
	tracer trace.Tracer
}

// NewOTelTracer creates a new OTelTracer with the given instrumentation name.
func NewOTelTracer(name string) *OTelTracer {
	return &OTelTracer{tracer: otel.Tracer(name)}
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, span := t.tracer.Start(ctx, name)

	// Streamed output is batched into span events rather than one event per write.
	batcher := NewBatchProcessor(0, 0, func(data []byte) {
		span.AddEvent("log", trace.WithAttributes(
			attribute.String("output", string(data)),
		))
	})

	return ctx, &OTelSpan{span: span, batcher: batcher}
}

// EmitPlan records the set of tokens scheduled for compilation on the current span.
func (t *OTelTracer) EmitPlan(ctx context.Context, tokenPaths []string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("tokens", tokenPaths),
		))
	}
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span    trace.Span
	batcher *BatchProcessor
}

// End completes the span.
func (s *OTelSpan) End() {
	if s.batcher != nil {
		_ = s.batcher.Close()
	}
	s.span.End()
}

// RecordError records an error for the span.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}

// Write satisfies io.Writer by feeding streamed output to the span's batcher.
func (s *OTelSpan) Write(p []byte) (n int, err error) {
	if s.batcher != nil {
		return s.batcher.Write(p)
	}
	s.span.AddEvent("log", trace.WithAttributes(attribute.String("output", string(p))))
	return len(p), nil
}
