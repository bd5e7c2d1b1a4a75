package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
}

// InitMetrics initializes the OpenTelemetry metrics pipeline with a
// Prometheus exporter and returns the provider plus an HTTP handler for the
// /metrics endpoint.
func InitMetrics(_ MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	return provider, promhttp.Handler(), nil
}

// ScreeningMetrics bundles the Prometheus instruments that the screening
// pipeline records into.
type ScreeningMetrics struct {
	ScreeningsTotal  *prometheus.CounterVec
	FindingsTotal    *prometheus.CounterVec
	ExternalDegraded prometheus.Counter
	NormalizedScore  prometheus.Histogram
}

// NewScreeningMetrics registers the screening instruments with the given
// registerer. Pass prometheus.DefaultRegisterer in production wiring and a
// fresh registry in tests.
func NewScreeningMetrics(reg prometheus.Registerer) *ScreeningMetrics {
	factory := promauto.With(reg)

	return &ScreeningMetrics{
		ScreeningsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "screening_requests_total",
			Help: "Completed screening requests by final recommendation.",
		}, []string{"recommendation"}),
		FindingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "screening_findings_total",
			Help: "Triggered fraud findings by rule category and severity.",
		}, []string{"category", "severity"}),
		ExternalDegraded: factory.NewCounter(prometheus.CounterOpts{
			Name: "screening_external_degraded_total",
			Help: "Screenings that proceeded with a degraded external result.",
		}),
		NormalizedScore: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "screening_normalized_score",
			Help:    "Distribution of the final normalized risk score.",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
	}
}
