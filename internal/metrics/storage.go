package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storageRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "storage",
		Name:      "operations_total",
		Help:      "Count of storage backend operations.",
	}, []string{"operation", "backend", "status"})
	storageRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "storage",
		Name:      "operation_duration_seconds",
		Help:      "Duration of storage backend operations.",
		Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"operation", "backend", "status"})
)

// Storage tracks metrics for storage backend operations.
type Storage struct {
	backend string
}

// NewStorage constructs a Storage collector labelled with the backend kind.
func NewStorage(backend string) *Storage {
	if backend == "" {
		backend = "unknown"
	}
	return &Storage{backend: backend}
}

// Observe records duration and status of a storage operation.
func (m Storage) Observe(operation string, err error, started time.Time) {
	storageRequestsTotal.WithLabelValues(operation, m.backend, status(err)).Inc()
	storageRequestDuration.WithLabelValues(operation, m.backend, status(err)).Observe(time.Since(started).Seconds())
}
