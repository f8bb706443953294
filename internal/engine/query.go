package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/goodnatureofminers/dsn-sequencer/internal/api"
	"github.com/goodnatureofminers/dsn-sequencer/internal/encoding"
	"github.com/goodnatureofminers/dsn-sequencer/internal/model"
	"github.com/goodnatureofminers/dsn-sequencer/internal/storage"
)

// GetPreBlocksHead returns the header of the last sealed pre-block.
func (e *Engine) GetPreBlocksHead(ctx context.Context) (model.PreBlockHeader, error) {
	if err := e.readable(ctx); err != nil {
		return model.PreBlockHeader{}, err
	}

	head, err := e.loadHead()
	switch {
	case err == nil:
		return head, nil
	case errors.Is(err, storage.ErrNotFound):
		return model.PreBlockHeader{}, api.NotFoundf("missing head")
	default:
		return model.PreBlockHeader{}, api.Internal(err)
	}
}

// GetPreBlocks returns up to maxCount consecutive pre-blocks starting at fromID.
// The result stops at the head. Requesting past the head, or finding a hole in
// the sealed range, is a NotFound error naming the missing id.
func (e *Engine) GetPreBlocks(ctx context.Context, fromID, maxCount uint64) ([]model.PreBlock, error) {
	if err := e.readable(ctx); err != nil {
		return nil, err
	}
	if maxCount == 0 {
		return []model.PreBlock{}, nil
	}

	snap, err := e.backend.Snapshot(ScopeMeta, ScopePreBlocks)
	if err != nil {
		return nil, api.Internal(fmt.Errorf("open snapshot: %w", err))
	}
	defer snap.Release()

	raw, err := snap.Get(ScopeMeta, headKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil, api.NotFoundf("pre-block %d", fromID)
	case err != nil:
		return nil, api.Internal(fmt.Errorf("read head: %w", err))
	}
	head, err := encoding.DecodeHeader(raw)
	if err != nil {
		return nil, api.Internal(fmt.Errorf("decode head: %w", err))
	}
	if fromID > head.ID {
		return nil, api.NotFoundf("pre-block %d", fromID)
	}

	count := min(maxCount, head.ID-fromID+1)
	blocks := make([]model.PreBlock, 0, count)
	for i := uint64(0); i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		block, err := e.readPreBlock(snap, fromID+i)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func (e *Engine) readPreBlock(snap storage.Snapshot, id uint64) (model.PreBlock, error) {
	if block, ok := e.cache.Get(id); ok {
		return clonePreBlock(block), nil
	}

	raw, err := snap.Get(ScopePreBlocks, PreBlockKey(id))
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return model.PreBlock{}, api.NotFoundf("pre-block %d", id)
	case err != nil:
		return model.PreBlock{}, api.Internal(fmt.Errorf("read pre-block %d: %w", id, err))
	}
	block, err := encoding.DecodePreBlock(raw)
	if err != nil {
		return model.PreBlock{}, api.Internal(fmt.Errorf("decode pre-block %d: %w", id, err))
	}
	if block.Header.ID != id {
		return model.PreBlock{}, api.Internal(fmt.Errorf("pre-block stored under %d carries id %d", id, block.Header.ID))
	}
	e.cache.Add(id, block)
	return clonePreBlock(block), nil
}

func (e *Engine) readHeader(ctx context.Context, id uint64) (model.PreBlockHeader, error) {
	if err := e.readable(ctx); err != nil {
		return model.PreBlockHeader{}, err
	}
	snap, err := e.backend.Snapshot(ScopePreBlocks)
	if err != nil {
		return model.PreBlockHeader{}, api.Internal(fmt.Errorf("open snapshot: %w", err))
	}
	defer snap.Release()

	block, err := e.readPreBlock(snap, id)
	if err != nil {
		return model.PreBlockHeader{}, err
	}
	return block.Header, nil
}

func (e *Engine) readable(ctx context.Context) error {
	if e.State() == StateStopped {
		return api.Shutdown("engine stopped")
	}
	return ctx.Err()
}

func clonePreBlock(b model.PreBlock) model.PreBlock {
	b.Transactions = slices.Clone(b.Transactions)
	return b
}
