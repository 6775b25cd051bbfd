// Package metrics exposes HTTP request metrics for Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	// RequestsTotal counts requests.
	// Labels: method, route (gin full path, "unmatched" for 404s), status
	RequestsTotal *prometheus.CounterVec

	// RequestDuration measures handler latency in seconds.
	RequestDuration *prometheus.HistogramVec

	// InFlight tracks requests currently being served.
	InFlight prometheus.Gauge

	// CacheResults counts response cache lookups by outcome ("hit", "miss", "error").
	CacheResults *prometheus.CounterVec
}

// New registers the collectors on a private registry together with the
// Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "moviehub",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "moviehub",
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "moviehub",
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		}),
		CacheResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "moviehub",
				Name:      "response_cache_results_total",
				Help:      "Response cache lookups by outcome",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.InFlight,
		m.CacheResults,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records count, latency and in-flight gauge for every request.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.InFlight.Inc()
		defer m.InFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// CacheHit, CacheMiss and CacheError satisfy the cache package's recorder.
func (m *Metrics) CacheHit() { m.CacheResults.WithLabelValues("hit").Inc() }
func (m *Metrics) CacheMiss() { m.CacheResults.WithLabelValues("miss").Inc() }
func (m *Metrics) CacheError() { m.CacheResults.WithLabelValues("error").Inc() }
