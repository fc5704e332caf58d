package tracer

import (
	"context"
	"log"

	"eviden-bot/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const serviceName = "eviden-bot"

type ShutdownFunc func(context.Context) error

func noop(context.Context) error { return nil }

// InitTracer installs the global tracer provider. With telemetry disabled, or when the exporter
// cannot be built, spans go to the default no-op provider and the bot keeps running.
func InitTracer(cfg config.TelemetryConfig, environment string) ShutdownFunc {
	if !cfg.Enabled {
		log.Println("OpenTelemetry tracing is disabled (set OTEL_ENABLED=true to enable)")
		return noop
	}

	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		log.Printf("Warning: Failed to create OTLP exporter: %v (tracing disabled)", err)
		return noop
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
		semconv.DeploymentEnvironmentKey.String(environment),
	)

	// Webhook calls from Telegram carry no trace context, so every update starts a root span.
	// The ratio thins out those roots; children follow their parent.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	log.Printf("✅ OpenTelemetry tracer initialized (endpoint: %s, sample ratio: %.2f)", cfg.Endpoint, cfg.SampleRatio)

	return tp.Shutdown
}
