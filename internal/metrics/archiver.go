package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	archiverCatchUpTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "archiver",
		Name:      "catch_up_total",
		Help:      "Count of catch-up passes over sealed pre-block ranges.",
	}, []string{"status"})

	archiverCatchUpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "archiver",
		Name:      "catch_up_duration_seconds",
		Help:      "Duration of a catch-up pass.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	archiverCatchUpSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "archiver",
		Name:      "catch_up_pre_blocks",
		Help:      "Number of pre-blocks archived per catch-up pass.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
	})

	archiverFollowTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "archiver",
		Name:      "follow_total",
		Help:      "Count of streamed pre-block headers handled.",
	}, []string{"status"})

	archiverGapTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "archiver",
		Name:      "gap_total",
		Help:      "Count of id gaps reconciled by range query.",
	})

	archiverLastID = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "archiver",
		Name:      "last_id",
		Help:      "Id of the last pre-block handed to the archive writer.",
	})
)

// Archiver tracks metrics for the archive follower.
type Archiver struct{}

// NewArchiver constructs an Archiver collector.
func NewArchiver() *Archiver {
	return &Archiver{}
}

// ObserveCatchUp records a catch-up pass.
func (m Archiver) ObserveCatchUp(err error, preBlocks int, started time.Time) {
	archiverCatchUpTotal.WithLabelValues(status(err)).Inc()
	archiverCatchUpDuration.WithLabelValues(status(err)).Observe(time.Since(started).Seconds())
	archiverCatchUpSize.Observe(float64(preBlocks))
}

// ObserveFollow records handling of one streamed header.
func (m Archiver) ObserveFollow(err error, id uint64) {
	archiverFollowTotal.WithLabelValues(status(err)).Inc()
	if err == nil {
		archiverLastID.Set(float64(id))
	}
}

// ObserveGap records a reconciled id gap.
func (m Archiver) ObserveGap() {
	archiverGapTotal.Inc()
}
