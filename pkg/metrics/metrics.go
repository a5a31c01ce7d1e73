// Package metrics exposes Prometheus counters for upstream store API calls.
package metrics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/benedict-erwin/store-console/pkg/apiclient"
)

// Collector records every apiclient attempt
type Collector struct {
	attempts     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	fallbacks    prometheus.Counter
	unauthorized prometheus.Counter
}

// NewCollector creates the metrics and registers them on reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "store_console_api_attempts_total",
			Help: "Upstream store API attempts by method, outcome and status",
		}, []string{"method", "outcome", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "store_console_api_latency_seconds",
			Help:    "Upstream store API attempt latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "store_console_api_base_fallbacks_total",
			Help: "Attempts that missed a route and moved to the next base URL",
		}),
		unauthorized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "store_console_api_unauthorized_total",
			Help: "Upstream 401 responses that cleared the session",
		}),
	}

	reg.MustRegister(c.attempts, c.latency, c.fallbacks, c.unauthorized)
	return c
}

// ObserveAttempt records one attempt. It matches apiclient.Hooks.OnAttempt.
func (c *Collector) ObserveAttempt(_ context.Context, a apiclient.Attempt) {
	c.attempts.WithLabelValues(a.Method, a.Outcome, strconv.Itoa(a.Status)).Inc()
	c.latency.WithLabelValues(a.Method).Observe(a.Latency.Seconds())

	switch a.Outcome {
	case apiclient.OutcomeRoutingMiss:
		c.fallbacks.Inc()
	case apiclient.OutcomeUnauthorized:
		c.unauthorized.Inc()
	}
}

// Hooks returns apiclient hooks feeding this collector
func (c *Collector) Hooks() apiclient.Hooks {
	return apiclient.Hooks{OnAttempt: c.ObserveAttempt}
}

// Handler returns the Prometheus scrape handler
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
