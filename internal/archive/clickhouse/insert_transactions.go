package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/dsn-sequencer/internal/model"
	"github.com/goodnatureofminers/dsn-sequencer/pkg/safe"
)

const insertTransactionsQuery = `
INSERT INTO dsn_transactions (
	pre_block_id,
	idx,
	hash,
	data
) VALUES`

// InsertTransactions stores the transactions of every pre-block with their position.
func (r *Repository) InsertTransactions(ctx context.Context, blocks []model.PreBlock) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transactions", err, start)
	}()

	total := 0
	for _, block := range blocks {
		total += len(block.Transactions)
	}
	if total == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertTransactionsQuery)
	if err != nil {
		return fmt.Errorf("prepare transactions batch: %w", err)
	}

	for _, block := range blocks {
		for i, tx := range block.Transactions {
			var idx uint32
			if idx, err = safe.Uint32(i); err != nil {
				return fmt.Errorf("pre-block %d tx index: %w", block.Header.ID, err)
			}
			if err = batch.Append(
				block.Header.ID,
				idx,
				tx.Hash().String(),
				string(tx.Bytes()),
			); err != nil {
				return fmt.Errorf("append transaction: %w", err)
			}
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}
