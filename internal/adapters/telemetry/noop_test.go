package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WestonVoglesonger/Multifact-V3/internal/adapters/telemetry"
)

func TestNoOpTracer_Start(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	newCtx, span := tracer.Start(ctx, "test-span")
	assert.NotNil(t, newCtx)
	assert.NotNil(t, span)

	span.End()
}

func TestNoOpTracer_EmitPlan(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	tracer.EmitPlan(context.Background(), []string{"scene:Checkout", "component:PaymentForm"})
}

func TestNoOpSpan_RecordError(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	_, span := tracer.Start(context.Background(), "test")
	span.RecordError(errors.New("test error"))
	span.End()
}

func TestNoOpSpan_SetAttribute(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	_, span := tracer.Start(context.Background(), "test")
	span.SetAttribute("key", "value")
	span.SetAttribute("int", 123)
	span.SetAttribute("bool", true)
	span.End()
}

func TestNoOpSpan_Write(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	_, span := tracer.Start(context.Background(), "test")
	n, err := span.Write([]byte("test log data"))
	require.NoError(t, err)
	assert.Equal(t, 13, n)
	span.End()
}
