// Package metrics exposes Prometheus collectors for tool dispatch.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains all Prometheus metrics for the adapter. Collectors live
// on a private registry so several instances can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	Invocations     *prometheus.CounterVec
	UpstreamLatency *prometheus.HistogramVec
	RegisteredTools *prometheus.GaugeVec
	ErrorsTotal     *prometheus.CounterVec
}

// New creates and registers all metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Invocations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cmc_mcp_tool_invocations_total",
			Help: "Tool invocations by tool, outcome and envelope status",
		}, []string{"tool", "outcome", "status"}),

		UpstreamLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cmc_mcp_upstream_latency_ms",
			Help:    "CoinMarketCap request latency in milliseconds",
			Buckets: []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}, []string{"tool"}),

		RegisteredTools: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cmc_mcp_registered_tools",
			Help: "Number of tools registered per subscription tier",
		}, []string{"tier"}),

		ErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cmc_mcp_errors_total",
			Help: "Errors by component and type",
		}, []string{"component", "error_type"}),
	}
}

// RecordInvocation counts one resolved invocation.
func (m *Metrics) RecordInvocation(tool string, ok bool, status int) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	m.Invocations.WithLabelValues(tool, outcome, strconv.Itoa(status)).Inc()
}

// RecordUpstreamLatency observes the duration of one upstream call.
func (m *Metrics) RecordUpstreamLatency(tool string, d time.Duration) {
	m.UpstreamLatency.WithLabelValues(tool).Observe(float64(d.Milliseconds()))
}

// RecordRegisteredTools sets the active tool count for a tier.
func (m *Metrics) RecordRegisteredTools(tier string, n int) {
	m.RegisteredTools.WithLabelValues(tier).Set(float64(n))
}

// RecordError increments the error counter.
func (m *Metrics) RecordError(component, errorType string) {
	m.ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
