// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dsn_sequencer"

var (
	engineSubmitTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "submit_total",
		Help:      "Count of submitted transactions.",
	}, []string{"author", "status"})

	engineSealTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "seal_total",
		Help:      "Count of seal attempts by trigger.",
	}, []string{"author", "trigger", "status"})

	engineEmptySealTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "empty_seal_total",
		Help:      "Count of sealed pre-blocks without transactions.",
	}, []string{"author", "trigger"})

	engineSealDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "seal_duration_seconds",
		Help:      "Duration of building and persisting a pre-block.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"author", "status"})

	engineSealSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "seal_transactions",
		Help:      "Number of transactions per sealed pre-block.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
	}, []string{"author"})

	engineSealBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "seal_bytes",
		Help:      "Payload bytes per sealed pre-block.",
		Buckets:   prometheus.ExponentialBuckets(64, 4, 12),
	}, []string{"author"})

	engineClearTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "queue_clear_total",
		Help:      "Count of explicit pending queue clears.",
	}, []string{"author"})

	engineClearedTransactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "queue_cleared_transactions_total",
		Help:      "Transactions discarded by queue clears and shutdown.",
	}, []string{"author", "reason"})

	engineQueueDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "queue_depth",
		Help:      "Pending transactions waiting to be sealed.",
	}, []string{"author"})

	engineHeadID = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "head_id",
		Help:      "Id of the last sealed pre-block.",
	}, []string{"author"})
)

// Engine tracks metrics for the protocol engine.
type Engine struct {
	author string
}

// NewEngine constructs an Engine collector labelled with the sequencer author id.
func NewEngine(author string) *Engine {
	if author == "" {
		author = "unknown"
	}
	return &Engine{author: author}
}

// ObserveSubmit records a submission outcome.
func (m Engine) ObserveSubmit(err error) {
	engineSubmitTotal.WithLabelValues(m.author, status(err)).Inc()
}

// ObserveSeal records a seal attempt.
func (m Engine) ObserveSeal(trigger string, err error, txs, bytes int, started time.Time) {
	engineSealTotal.WithLabelValues(m.author, trigger, status(err)).Inc()
	engineSealDuration.WithLabelValues(m.author, status(err)).Observe(time.Since(started).Seconds())
	if err != nil {
		return
	}
	if txs == 0 {
		engineEmptySealTotal.WithLabelValues(m.author, trigger).Inc()
	}
	engineSealSize.WithLabelValues(m.author).Observe(float64(txs))
	engineSealBytes.WithLabelValues(m.author).Observe(float64(bytes))
}

// ObserveClear records an explicit queue clear.
func (m Engine) ObserveClear(dropped int) {
	engineClearTotal.WithLabelValues(m.author).Inc()
	engineClearedTransactions.WithLabelValues(m.author, "clear").Add(float64(dropped))
}

// ObserveDrop records pending transactions dropped at shutdown.
func (m Engine) ObserveDrop(dropped int) {
	engineClearedTransactions.WithLabelValues(m.author, "shutdown").Add(float64(dropped))
}

// SetQueueDepth records the pending queue length.
func (m Engine) SetQueueDepth(n int) {
	engineQueueDepth.WithLabelValues(m.author).Set(float64(n))
}

// SetHead records the last sealed id.
func (m Engine) SetHead(id uint64) {
	engineHeadID.WithLabelValues(m.author).Set(float64(id))
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
