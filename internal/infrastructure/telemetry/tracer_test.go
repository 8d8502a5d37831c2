package telemetry_test

import (
	"context"
	"testing"

	"github.com/podplatform/backend/internal/infrastructure/config"
	"github.com/podplatform/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zaptest"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:     false,
		ServiceName: "test-service",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.ForceFlush(context.Background()))
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestNewTracerProvider_ExportsSpans(t *testing.T) {
	original := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(original) })

	exporter := tracetest.NewInMemoryExporter()
	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:       true,
		SamplingRatio: 1.0,
		ServiceName:   "test-service",
	}, zaptest.NewLogger(t), telemetry.WithSpanExporter(exporter))
	require.NoError(t, err)
	assert.True(t, tp.IsEnabled())

	_, span := telemetry.StartSpan(ctx, "order.ship", "order_id", "abc")
	span.End()
	require.NoError(t, tp.ForceFlush(ctx))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "order.ship", spans[0].Name)
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestNewTracerProvider_NeverSample(t *testing.T) {
	original := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(original) })

	exporter := tracetest.NewInMemoryExporter()
	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:       true,
		SamplingRatio: 0,
		ServiceName:   "test-service",
	}, zaptest.NewLogger(t), telemetry.WithSpanExporter(exporter))
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(ctx, "dropped")
	span.End()
	require.NoError(t, tp.ForceFlush(ctx))

	assert.Empty(t, exporter.GetSpans())
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestConfigFrom(t *testing.T) {
	cfg := telemetry.ConfigFrom(config.TelemetryConfig{
		Enabled:           true,
		CollectorEndpoint: "otel:4317",
		SamplingRatio:     0.25,
		ServiceName:       "pod",
		Insecure:          true,
	})

	assert.Equal(t, telemetry.Config{
		Enabled:           true,
		CollectorEndpoint: "otel:4317",
		SamplingRatio:     0.25,
		ServiceName:       "pod",
		Insecure:          true,
	}, cfg)
}
