package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/goodnatureofminers/dsn-sequencer/internal/api"
	"github.com/goodnatureofminers/dsn-sequencer/internal/broadcast"
	"github.com/goodnatureofminers/dsn-sequencer/internal/model"
)

var _ api.Node = (*Handle)(nil)

// Handle is a consumer view of an Engine with its own NextPreBlock cursor.
// Handles are cheap; create one per concurrent consumer.
type Handle struct {
	engine *Engine
	sub    *broadcast.Subscriber[model.PreBlockHeader]

	mu   sync.Mutex
	next uint64
}

// SubmitTransaction enqueues tx on the engine.
func (h *Handle) SubmitTransaction(ctx context.Context, tx model.Transaction) error {
	return h.engine.SubmitTransaction(ctx, tx)
}

// GetPreBlocksHead returns the last sealed header.
func (h *Handle) GetPreBlocksHead(ctx context.Context) (model.PreBlockHeader, error) {
	return h.engine.GetPreBlocksHead(ctx)
}

// GetPreBlocks returns a contiguous range of sealed pre-blocks.
func (h *Handle) GetPreBlocks(ctx context.Context, fromID, maxCount uint64) ([]model.PreBlock, error) {
	return h.engine.GetPreBlocks(ctx, fromID, maxCount)
}

// ClearQueue discards pending transactions on the engine.
func (h *Handle) ClearQueue(ctx context.Context) error {
	return h.engine.ClearQueue(ctx)
}

// NextPreBlock returns the header sealed right after the last one this handle
// returned, waiting for it when necessary. Headers the broadcast dropped are read
// back from storage, so the handle never skips an id.
func (h *Handle) NextPreBlock(ctx context.Context) (model.PreBlockHeader, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for {
		if h.engine.State() == StateStopped {
			return model.PreBlockHeader{}, api.Shutdown("engine stopped")
		}
		if head := h.engine.head.Load(); head != nil && head.ID >= h.next {
			header, err := h.engine.readHeader(ctx, h.next)
			if err != nil {
				return model.PreBlockHeader{}, err
			}
			h.next++
			return header, nil
		}

		header, err := h.sub.Recv(ctx)
		var lagged *broadcast.LaggedError
		switch {
		case err == nil:
		case errors.As(err, &lagged):
			continue
		case errors.Is(err, broadcast.ErrClosed):
			if head := h.engine.head.Load(); head != nil && head.ID >= h.next {
				continue
			}
			return model.PreBlockHeader{}, api.Shutdown("engine stopped")
		default:
			return model.PreBlockHeader{}, err
		}

		if header.ID != h.next {
			continue
		}
		h.next++
		return header, nil
	}
}
