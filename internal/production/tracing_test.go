package production

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/comalice/immutablectx/internal/core"
)

func newRecordingTracer() (*Tracer, *tracetest.SpanRecorder) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	return NewTracer(tp), sr
}

func TestTracer_Spans(t *testing.T) {
	tr, sr := newRecordingTracer()
	start := time.Now().Add(-time.Millisecond)

	tr.Applied(start, nil)
	tr.Applied(start, errors.New("boom"))
	tr.Forced(start)

	spans := sr.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "immutablectx.apply", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.True(t, spans[0].StartTime().Equal(start))
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "boom", spans[1].Status().Description)
	assert.Equal(t, "immutablectx.force_set", spans[2].Name())
}

func TestTracer_WithMetricsFanOut(t *testing.T) {
	tr, sr := newRecordingTracer()
	m, err := NewMetrics(nil)
	require.NoError(t, err)

	c := core.New(counter{}, core.WithInstrument[counter](Instruments{tr, m}))
	require.NoError(t, c.Apply(func(s *counter) { s.Count++ }))

	assert.Len(t, sr.Ended(), 1)
}

func TestSetupTracing_NoopWhenEndpointEmpty(t *testing.T) {
	tp, shutdown, err := SetupTracing(context.Background(), "", "test-service")
	require.NoError(t, err)
	require.NotNil(t, tp)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupTracing_ShutdownFlushesCleanly(t *testing.T) {
	// Non-routable address so no actual export happens.
	tp, shutdown, err := SetupTracing(context.Background(), "http://192.0.2.1:4318", "flush-test")
	require.NoError(t, err)
	require.NotNil(t, tp)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, shutdown(ctx))
}
