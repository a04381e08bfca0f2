package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http_api",
		Name:      "requests_total",
		Help:      "Count of HTTP API requests.",
	}, []string{"route", "code"})
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http_api",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "code"})
)

// HTTPAPI tracks metrics for the HTTP API.
type HTTPAPI struct{}

// NewHTTPAPI constructs an HTTPAPI collector.
func NewHTTPAPI() *HTTPAPI {
	return &HTTPAPI{}
}

// Observe records one served request.
func (m HTTPAPI) Observe(route string, code int, started time.Time) {
	c := strconv.Itoa(code)
	httpRequestsTotal.WithLabelValues(route, c).Inc()
	httpRequestDuration.WithLabelValues(route, c).Observe(time.Since(started).Seconds())
}
