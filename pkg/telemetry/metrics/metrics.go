// Package metrics exposes Prometheus metrics for Graph request processing:
// request counts and durations per entity, and retry counts per reason.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dirgate-hq/dirgate/pkg/config"
)

// Collector registers and records all dirgate metrics.
type Collector struct {
	registry *prometheus.Registry

	// Total Graph requests by entity and outcome status
	requestsTotal *prometheus.CounterVec

	// Graph request duration histogram by entity
	requestDuration *prometheus.HistogramVec

	// Retry attempts by reason (error kind or status code)
	retriesTotal *prometheus.CounterVec
}

// NewCollector creates a collector and registers its metrics. If registry is
// nil, a fresh registry is created (the default global registry is avoided so
// tests can run in parallel).
func NewCollector(cfg config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "graph_requests_total",
				Help:      "Total number of Graph API requests by entity and status",
			},
			[]string{"entity", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "graph_request_duration_seconds",
				Help:      "Duration of Graph API requests in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"entity"},
		),
		retriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "graph_retries_total",
				Help:      "Total number of retried Graph API requests by reason",
			},
			[]string{"reason"},
		),
	}

	registry.MustRegister(c.requestsTotal, c.requestDuration, c.retriesTotal)
	return c
}

// RecordRequest records one completed Graph request. status is "ok" for
// success or the classified error kind for failure.
func (c *Collector) RecordRequest(entity, status string, duration time.Duration) {
	c.requestsTotal.WithLabelValues(entity, status).Inc()
	c.requestDuration.WithLabelValues(entity).Observe(duration.Seconds())
}

// RecordRetry records one retry sleep with the reason it was triggered.
func (c *Collector) RecordRetry(reason string) {
	c.retriesTotal.WithLabelValues(reason).Inc()
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
