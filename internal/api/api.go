// Package api declares the capability contracts served by the sequencer.
//
// Every contract has three interchangeable implementations: a handle on a local
// engine, a loopback handle and a remote RPC proxy. Consumers depend only on the
// interfaces below.
package api

import (
	"context"

	"github.com/goodnatureofminers/dsn-sequencer/internal/model"
)

type (
	// Transactions accepts transactions for ordering.
	Transactions interface {
		SubmitTransaction(ctx context.Context, tx model.Transaction) error
	}

	// PreBlocks serves the ordering state.
	//
	// NextPreBlock advances a cursor private to the handle it is called on. Callers
	// that consume concurrently must use separate handles.
	PreBlocks interface {
		GetPreBlocksHead(ctx context.Context) (model.PreBlockHeader, error)
		GetPreBlocks(ctx context.Context, fromID, maxCount uint64) ([]model.PreBlock, error)
		NextPreBlock(ctx context.Context) (model.PreBlockHeader, error)
		ClearQueue(ctx context.Context) error
	}

	// Node combines both capabilities.
	Node interface {
		Transactions
		PreBlocks
	}
)
