package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decodeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "summarizer",
		Name:      "decode_total",
		Help:      "Count of raw transaction decodes.",
	}, []string{"chain", "status"})

	summaryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "summarizer",
		Name:      "summaries_total",
		Help:      "Count of computed summaries by kind and outcome status.",
	}, []string{"chain", "kind", "status"})

	summarizeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "summarizer",
		Name:      "request_duration_seconds",
		Help:      "Duration of summarizing one request, enrichment included.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"chain", "status"})
)

// Summarizer tracks decode and summary outcomes.
type Summarizer struct{}

// NewSummarizer constructs a Summarizer collector.
func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// ObserveDecode records a decode attempt.
func (m Summarizer) ObserveDecode(c string, err error) {
	decodeTotal.WithLabelValues(orUnknown(c), status(err)).Inc()
}

// ObserveSummary records the status of a payment or balance-decreasing summary.
func (m Summarizer) ObserveSummary(c, kind, summaryStatus string) {
	summaryTotal.WithLabelValues(orUnknown(c), kind, summaryStatus).Inc()
}

// ObserveRequest records the duration of a whole request.
func (m Summarizer) ObserveRequest(c string, err error, started time.Time) {
	summarizeDuration.WithLabelValues(orUnknown(c), status(err)).Observe(time.Since(started).Seconds())
}
