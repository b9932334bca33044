package sitescan

import (
	"context"
	"fmt"
	"sitescan/pkg/metrics"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "sitescan/internal/sitescan"

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

type instruments struct {
	validations        metric.Int64Counter
	validationDuration metric.Float64Histogram
	urlFetches         metric.Int64Counter
}

func newInstruments(mp metric.MeterProvider) (*instruments, error) {
	meter := mp.Meter(meterName)

	validations, err := meter.Int64Counter("sitescan.validations",
		metric.WithDescription("Number of URL validations by outcome."))
	if err != nil {
		return nil, fmt.Errorf("could not create validations counter: %w", err)
	}

	validationDuration, err := meter.Float64Histogram("sitescan.validation.duration",
		metric.WithDescription("Duration of URL validation requests."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create validation duration histogram: %w", err)
	}

	urlFetches, err := meter.Int64Counter("sitescan.url_fetches",
		metric.WithDescription("Number of scannable URL list fetches by outcome."))
	if err != nil {
		return nil, fmt.Errorf("could not create url fetches counter: %w", err)
	}

	return &instruments{
		validations:        validations,
		validationDuration: validationDuration,
		urlFetches:         urlFetches,
	}, nil
}

func (i *instruments) recordValidation(ctx context.Context, outcome string, took time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	i.validations.Add(ctx, 1, attrs)
	i.validationDuration.Record(ctx, took.Seconds(), attrs)
}

func (i *instruments) recordFetch(ctx context.Context, outcome string) {
	i.urlFetches.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
