package preview

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the Prometheus metrics for the preview server.
type metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	reloadsTotal    prometheus.Counter
	reloadClients   prometheus.Gauge
}

// newMetrics creates the preview metrics on a private registry so multiple
// servers in one process (tests) don't collide.
func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &metrics{
		registry: registry,

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stencil",
			Subsystem: "preview",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests served",
		}, []string{"code", "method"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stencil",
			Subsystem: "preview",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),

		reloadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "stencil",
			Subsystem: "preview",
			Name:      "reloads_total",
			Help:      "Total number of reload notifications broadcast",
		}),

		reloadClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "stencil",
			Subsystem: "preview",
			Name:      "reload_clients",
			Help:      "Number of connected live-reload clients",
		}),
	}
}

// handler returns the /metrics HTTP handler.
func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the response status code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument wraps a handler with request metrics.
func (m *metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.requestsTotal.WithLabelValues(strconv.Itoa(rec.status), r.Method).Inc()
		m.requestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}
