package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestInitTracer_Disabled(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), DefaultConfig("storefront"))
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracer_Enabled(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	cfg := DefaultConfig("storefront")
	cfg.Enabled = true
	cfg.OTLPEndpoint = "127.0.0.1:0"

	shutdown, err := InitTracer(context.Background(), cfg)
	require.NoError(t, err)

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok, "expected SDK tracer provider, got %T", otel.GetTracerProvider())

	// Export to the unroutable endpoint may fail on flush.
	_ = shutdown(context.Background())
}

func TestConfig_Sampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "ParentBased{root:AlwaysOnSampler"},
		{2.5, "ParentBased{root:AlwaysOnSampler"},
		{0, "ParentBased{root:AlwaysOffSampler"},
		{-1, "ParentBased{root:AlwaysOffSampler"},
		{0.25, "ParentBased{root:TraceIDRatioBased{0.25}"},
	}
	for _, tt := range tests {
		cfg := Config{SampleRate: tt.rate}
		assert.Contains(t, cfg.Sampler().Description(), tt.want)
	}
}

func TestTracer_UsesGlobalProvider(t *testing.T) {
	tr := Tracer("storefront/catalog")
	_, span := tr.Start(context.Background(), "ListProducts")
	defer span.End()

	assert.IsType(t, trace.SpanContext{}, span.SpanContext())
}
