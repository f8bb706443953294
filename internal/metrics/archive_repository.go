package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	archiveRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "archive_repository",
		Name:      "operations_total",
		Help:      "Count of archive repository operations.",
	}, []string{"operation", "status"})
	archiveRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "archive_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of archive repository operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"operation", "status"})
)

// ArchiveRepository tracks metrics for ClickHouse archive operations.
type ArchiveRepository struct{}

// NewArchiveRepository creates an ArchiveRepository metrics collector.
func NewArchiveRepository() *ArchiveRepository {
	return &ArchiveRepository{}
}

// Observe records duration and status of a repository operation.
func (m ArchiveRepository) Observe(operation string, err error, started time.Time) {
	archiveRepositoryRequestsTotal.WithLabelValues(operation, status(err)).Inc()
	archiveRepositoryRequestDuration.WithLabelValues(operation, status(err)).Observe(time.Since(started).Seconds())
}
