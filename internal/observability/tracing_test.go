package observability

import (
	"context"
	"testing"
	"time"

	"github.com/Vero970/ProjFit/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func restoreGlobalProvider(t *testing.T) {
	t.Helper()
	previous := otel.GetTracerProvider()
	t.Cleanup(func() {
		if otel.GetTracerProvider() != previous {
			otel.SetTracerProvider(previous)
		}
	})
}

func TestInitTracing_Disabled(t *testing.T) {
	restoreGlobalProvider(t)
	before := otel.GetTracerProvider()

	shutdown, err := InitTracing(context.Background(), config.Tracing{Enabled: false}, "test")

	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestInitTracing_EnabledInstallsSDKProvider(t *testing.T) {
	restoreGlobalProvider(t)

	shutdown, err := InitTracing(context.Background(), config.Tracing{
		Enabled:     true,
		Endpoint:    "127.0.0.1:4317",
		ServiceName: "calorifit-test",
	}, "test")
	require.NoError(t, err)

	assert.IsType(t, &sdktrace.TracerProvider{}, otel.GetTracerProvider())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = shutdown(ctx)
}

func TestTracer_UsesGlobalProvider(t *testing.T) {
	restoreGlobalProvider(t)
	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	_, span := Tracer().Start(context.Background(), "intake.compute")
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "intake.compute", ended[0].Name())
	assert.Equal(t, TracerName, ended[0].InstrumentationScope().Name)
}
