package rechnungen

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metric instruments. They are no-ops until InitMetrics runs.
var (
	requestCounter   metric.Int64Counter     = noop.Int64Counter{}
	requestHistogram metric.Float64Histogram = noop.Float64Histogram{}
	errorCounter     metric.Int64Counter     = noop.Int64Counter{}
)

// InitMetrics registers the OTel instruments of the rechnungen API.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("rechnungen")

	var err error

	requestCounter, err = meter.Int64Counter("rechnungen.requests.total",
		metric.WithDescription("Total number of successful Rechnungen API calls"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("creating request counter: %w", err)
	}

	requestHistogram, err = meter.Float64Histogram("rechnungen.request.duration",
		metric.WithDescription("Duration of Rechnungen store round trips in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.5, 1, 5, 10, 50, 100, 500),
	)
	if err != nil {
		return fmt.Errorf("creating request histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("rechnungen.errors.total",
		metric.WithDescription("Total number of failed Rechnungen API calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	return nil
}
