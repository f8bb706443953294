package rpc

import (
	"context"
	"time"

	"github.com/goodnatureofminers/dsn-sequencer/internal/api"
	"github.com/goodnatureofminers/dsn-sequencer/internal/engine"
	"github.com/goodnatureofminers/dsn-sequencer/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Sequencer is the engine surface served over RPC.
	Sequencer interface {
		api.Transactions
		GetPreBlocksHead(ctx context.Context) (model.PreBlockHeader, error)
		GetPreBlocks(ctx context.Context, fromID, maxCount uint64) ([]model.PreBlock, error)
		ClearQueue(ctx context.Context) error
		Cursor(nextID uint64) Cursor
	}

	// Cursor yields sealed headers in id order.
	Cursor interface {
		NextPreBlock(ctx context.Context) (model.PreBlockHeader, error)
	}

	// Metrics observes client calls.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// FromEngine serves e.
func FromEngine(e *engine.Engine) Sequencer {
	return engineSequencer{Engine: e}
}

type engineSequencer struct {
	*engine.Engine
}

func (s engineSequencer) Cursor(nextID uint64) Cursor {
	return s.NewHandleFrom(nextID)
}

type nopMetrics struct{}

func (nopMetrics) Observe(string, error, time.Time) {}
