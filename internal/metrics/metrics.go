package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pixelgate"

// Metrics holds the gateway's Prometheus collectors.
type Metrics struct {
	registry       *prometheus.Registry
	processTotal   *prometheus.CounterVec
	engineDuration prometheus.Histogram
}

// New registers the collectors on a fresh registry, so several gateways can
// live in one process (tests do).
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		processTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "process_requests_total",
			Help:      "Total number of /process requests by outcome",
		}, []string{"outcome"}),
		engineDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "engine_duration_seconds",
			Help:      "Time spent waiting for the processing engine",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// ObserveProcess counts one /process request.
func (m *Metrics) ObserveProcess(outcome string) {
	m.processTotal.WithLabelValues(outcome).Inc()
}

// ObserveEngine records one engine round trip.
func (m *Metrics) ObserveEngine(d time.Duration) {
	m.engineDuration.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
