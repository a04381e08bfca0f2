// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "multichain_client"

var (
	rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "operations_total",
		Help:      "Count of node RPC operations.",
	}, []string{"operation", "chain", "network", "status"})
	rpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of node RPC operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "chain", "network", "status"})
)

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func orUnknown[T ~string](v T) string {
	if v == "" {
		return "unknown"
	}
	return string(v)
}

// RPCClient tracks metrics for RPC calls to blockchain nodes.
type RPCClient struct {
	chain   string
	network string
}

// NewRPCClient constructs a metrics collector for RPC calls.
func NewRPCClient(c chain.Chain, network chain.Network) *RPCClient {
	return &RPCClient{chain: orUnknown(c), network: orUnknown(network)}
}

// Observe records a single RPC call outcome and duration.
func (m RPCClient) Observe(operation string, err error, started time.Time) {
	s := status(err)
	rpcRequestsTotal.WithLabelValues(operation, m.chain, m.network, s).Inc()
	rpcRequestDuration.WithLabelValues(operation, m.chain, m.network, s).Observe(time.Since(started).Seconds())
}
