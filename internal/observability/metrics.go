package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the tool service.
type Metrics struct {
	ToolInvocations *prometheus.CounterVec   // labels: tool, outcome={success,invalid,not_found,upstream_error}
	ToolDuration    *prometheus.HistogramVec // labels: tool

	// Upstream (Open-Meteo) metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: service={geocoding,forecast}, outcome={success,error}
	UpstreamDuration *prometheus.HistogramVec // labels: service
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ToolInvocations,
		m.ToolDuration,
		m.UpstreamRequests,
		m.UpstreamDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ToolInvocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forecast_tool",
			Name:      "invocations_total",
			Help:      "Tool invocations by tool name and outcome.",
		}, []string{"tool", "outcome"}),
		ToolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "forecast_tool",
			Name:      "invocation_duration_seconds",
			Help:      "End-to-end tool invocation duration.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"tool"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forecast_tool",
			Name:      "upstream_requests_total",
			Help:      "Open-Meteo API requests by service and outcome.",
		}, []string{"service", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "forecast_tool",
			Name:      "upstream_request_duration_seconds",
			Help:      "Open-Meteo API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"service"}),
	}
}
