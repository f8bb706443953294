package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcClientRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "operations_total",
		Help:      "Count of sequencer RPC calls.",
	}, []string{"operation", "target", "status"})
	rpcClientRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of sequencer RPC calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "target", "status"})
)

// RPCClient tracks metrics for calls to a remote sequencer.
type RPCClient struct {
	target string
}

// NewRPCClient constructs a metrics collector for RPC calls to target.
func NewRPCClient(target string) *RPCClient {
	if target == "" {
		target = "unknown"
	}
	return &RPCClient{target: target}
}

// Observe records a single RPC call outcome and duration.
func (m RPCClient) Observe(operation string, err error, started time.Time) {
	rpcClientRequestsTotal.WithLabelValues(operation, m.target, status(err)).Inc()
	rpcClientRequestDuration.WithLabelValues(operation, m.target, status(err)).Observe(time.Since(started).Seconds())
}
