package metrics

import (
	"time"

	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	enrichTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "enrichment",
		Name:      "enrich_total",
		Help:      "Count of transaction enrichment runs.",
	}, []string{"chain", "network", "status"})

	enrichDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "enrichment",
		Name:      "enrich_duration_seconds",
		Help:      "Duration of transaction enrichment runs.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"chain", "network", "status"})

	enrichInputs = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "enrichment",
		Name:      "missing_inputs",
		Help:      "Number of inputs waiting for previous outputs per run.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"chain", "network"})

	enrichUnresolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "enrichment",
		Name:      "unresolved_inputs_total",
		Help:      "Count of inputs whose previous output no source returned.",
	}, []string{"chain", "network"})

	cacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "enrichment_cache",
		Name:      "lookups_total",
		Help:      "Count of previous-output cache lookups by result.",
	}, []string{"chain", "network", "result"})

	recordedOutputsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "enrichment",
		Name:      "recorded_outputs_total",
		Help:      "Count of outputs flushed to the previous-output store.",
	}, []string{"chain", "network", "status"})
)

// Enrichment tracks metrics for previous-output resolution.
type Enrichment struct {
	chain   string
	network string
}

// NewEnrichment constructs an Enrichment collector.
func NewEnrichment(c chain.Chain, network chain.Network) *Enrichment {
	return &Enrichment{chain: orUnknown(c), network: orUnknown(network)}
}

// ObserveEnrich records one enrichment run over missing inputs, of which unresolved stayed unknown.
func (m Enrichment) ObserveEnrich(err error, missing, unresolved int, started time.Time) {
	s := status(err)
	enrichTotal.WithLabelValues(m.chain, m.network, s).Inc()
	enrichDuration.WithLabelValues(m.chain, m.network, s).Observe(time.Since(started).Seconds())
	enrichInputs.WithLabelValues(m.chain, m.network).Observe(float64(missing))
	if unresolved > 0 {
		enrichUnresolved.WithLabelValues(m.chain, m.network).Add(float64(unresolved))
	}
}

// ObserveCache records cache hits and misses of one lookup.
func (m Enrichment) ObserveCache(hits, misses int) {
	cacheLookupsTotal.WithLabelValues(m.chain, m.network, "hit").Add(float64(hits))
	cacheLookupsTotal.WithLabelValues(m.chain, m.network, "miss").Add(float64(misses))
}

// ObserveRecord records a flush of outputs to the previous-output store.
func (m Enrichment) ObserveRecord(err error, outputs int) {
	recordedOutputsTotal.WithLabelValues(m.chain, m.network, status(err)).Add(float64(outputs))
}
