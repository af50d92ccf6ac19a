package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ShutdownFunc flushes and stops a telemetry provider.
type ShutdownFunc func(context.Context) error

func ServiceName() string {
	name := os.Getenv("OTEL_SERVICE_NAME")
	if name == "" {
		name = "rechner-api"
	}
	return name
}

func newResource(ctx context.Context) (*resource.Resource, error) {
	return resource.New(
		ctx,
		resource.WithFromEnv(),
		resource.WithAttributes(
			semconv.ServiceName(ServiceName()),
		),
	)
}

// InitTracing installs a batching OTLP/HTTP tracer provider and the W3C
// propagators used by otelhttp.
func InitTracing(ctx context.Context) (ShutdownFunc, error) {

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return provider.Shutdown, nil
}

// InitMetrics installs a periodic OTLP/HTTP meter provider. Domain packages
// create their instruments afterwards.
func InitMetrics(ctx context.Context) (ShutdownFunc, error) {

	exporter, err := otlpmetrichttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx)
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter),
		),
	)

	otel.SetMeterProvider(provider)

	return provider.Shutdown, nil
}

// InitLogging tees Logger into an OTLP/HTTP log exporter. InitLogger must
// have run first.
func InitLogging(ctx context.Context) (ShutdownFunc, error) {

	exporter, err := otlploghttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx)
	if err != nil {
		return nil, err
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(
			sdklog.NewBatchProcessor(exporter),
		),
	)

	otelCore := otelzap.NewCore(ServiceName(), otelzap.WithLoggerProvider(provider))

	// Logs go to both stdout and the OTLP endpoint.
	Logger = zap.New(zapcore.NewTee(Logger.Core(), otelCore))

	return provider.Shutdown, nil
}

// InitTelemetry starts tracing, metrics and log export and returns one
// shutdown per provider, keyed by name. On error the providers started so far
// are shut down again.
func InitTelemetry(ctx context.Context) (map[string]ShutdownFunc, error) {
	steps := []struct {
		name string
		init func(context.Context) (ShutdownFunc, error)
	}{
		{name: "tracing", init: InitTracing},
		{name: "metrics", init: InitMetrics},
		{name: "logging", init: InitLogging},
	}

	shutdowns := make(map[string]ShutdownFunc, len(steps))
	for _, step := range steps {
		shutdown, err := step.init(ctx)
		if err != nil {
			var errs []error
			for _, s := range shutdowns {
				errs = append(errs, s(ctx))
			}
			return nil, errors.Join(append([]error{fmt.Errorf("init %s: %w", step.name, err)}, errs...)...)
		}
		shutdowns[step.name] = shutdown
	}

	return shutdowns, nil
}

func PrometheusHandler() http.Handler {
	return promhttp.Handler()
}
