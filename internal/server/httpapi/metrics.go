package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector records Prometheus metrics for the REST surface.
type MetricsCollector struct {
	requests     *prometheus.CounterVec
	duration     prometheus.Histogram
	loginSuccess prometheus.Counter
	loginFail    prometheus.Counter
}

// NewMetricsCollector registers the server metrics on the given registry.
func NewMetricsCollector(reg prometheus.Registerer) *MetricsCollector {
	c := &MetricsCollector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "saferide_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "status_code"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "saferide_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "saferide_login_success_total",
			Help: "Successful login attempts.",
		}),
		loginFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "saferide_login_fail_total",
			Help: "Rejected login attempts.",
		}),
	}

	reg.MustRegister(c.requests, c.duration, c.loginSuccess, c.loginFail)
	return c
}

func (c *MetricsCollector) RecordRequest(method string, status int, elapsed time.Duration) {
	c.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.duration.Observe(elapsed.Seconds())
}

func (c *MetricsCollector) RecordLogin(ok bool) {
	if ok {
		c.loginSuccess.Inc()
	} else {
		c.loginFail.Inc()
	}
}

// MetricsHandler returns the Prometheus scrape handler.
func MetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
