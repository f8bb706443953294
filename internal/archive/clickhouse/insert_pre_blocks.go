package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/dsn-sequencer/internal/model"
	"github.com/goodnatureofminers/dsn-sequencer/pkg/safe"
)

const insertPreBlocksQuery = `
INSERT INTO dsn_pre_blocks (
	id,
	author,
	sealed_at,
	tx_count,
	size
) VALUES`

// InsertPreBlocks stores one header row per pre-block.
func (r *Repository) InsertPreBlocks(ctx context.Context, blocks []model.PreBlock) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_pre_blocks", err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertPreBlocksQuery)
	if err != nil {
		return fmt.Errorf("prepare pre-blocks batch: %w", err)
	}

	for _, block := range blocks {
		var txCount uint32
		if txCount, err = safe.Uint32(len(block.Transactions)); err != nil {
			return fmt.Errorf("pre-block %d tx count: %w", block.Header.ID, err)
		}
		var size uint64
		if size, err = safe.Uint64(block.Size()); err != nil {
			return fmt.Errorf("pre-block %d size: %w", block.Header.ID, err)
		}
		if err = batch.Append(
			block.Header.ID,
			block.Header.Metadata.Author,
			block.Header.Metadata.Timestamp,
			txCount,
			size,
		); err != nil {
			return fmt.Errorf("append pre-block: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert pre-blocks: %w", err)
	}
	return nil
}
