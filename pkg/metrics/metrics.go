// Package metrics wires OpenTelemetry metric instruments to a Prometheus
// registry so that everything recorded by the scan session shows up on the
// /metrics endpoint.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60} //nolint: gochecknoglobals

// NewMeterProvider creates an SDK meter provider whose readings are exported
// through the given Prometheus registerer.
func NewMeterProvider(registerer prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(registerer))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}
