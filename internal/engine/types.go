package engine

import (
	"time"

	"github.com/goodnatureofminers/dsn-sequencer/internal/clock"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics receives engine events.
	Metrics interface {
		ObserveSubmit(err error)
		ObserveSeal(trigger string, err error, txs, bytes int, started time.Time)
		ObserveClear(dropped int)
		ObserveDrop(dropped int)
		SetQueueDepth(n int)
		SetHead(id uint64)
	}

	// Clock stamps sealed pre-blocks.
	Clock = clock.Clock
)

type nopMetrics struct{}

func (nopMetrics) ObserveSubmit(error)                            {}
func (nopMetrics) ObserveSeal(string, error, int, int, time.Time) {}
func (nopMetrics) ObserveClear(int)                               {}
func (nopMetrics) ObserveDrop(int)                                {}
func (nopMetrics) SetQueueDepth(int)                              {}
func (nopMetrics) SetHead(uint64)                                 {}
