package telemetry

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Bridge implements sdktrace.SpanProcessor to mirror span lifecycles into the
// workspace debug log.
type Bridge struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBridge returns a new Bridge writing to w. A nil writer disables output.
func NewBridge(w io.Writer) *Bridge {
	return &Bridge{w: w}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	if b.w == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	line := fmt.Sprintf("start %s span=%s", s.Name(), sc.SpanID())
	if parentSpan := trace.SpanFromContext(parent); parentSpan.SpanContext().IsValid() {
		line += " parent=" + parentSpan.SpanContext().SpanID().String()
	}

	b.write(s.StartTime(), line)
}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.w == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)
	line := fmt.Sprintf("end %s span=%s duration=%s", s.Name(), sc.SpanID(), elapsed)
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "failed"
		}
		line += fmt.Sprintf(" error=%q", desc)
	}

	b.write(s.EndTime(), line)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

func (b *Bridge) write(ts time.Time, line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintf(b.w, "%s %s\n", ts.Format(time.RFC3339Nano), line)
}
