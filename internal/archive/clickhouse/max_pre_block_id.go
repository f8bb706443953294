package clickhouse

import (
	"context"
	"fmt"
	"time"
)

const maxPreBlockIDQuery = `
SELECT count() AS rows, coalesce(max(id), toUInt64(0)) AS max_id
FROM dsn_pre_blocks`

// MaxPreBlockID returns the highest archived id. ok is false when the archive is empty.
func (r *Repository) MaxPreBlockID(ctx context.Context) (id uint64, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("max_pre_block_id", err, start)
	}()

	row := r.conn.QueryRow(ctx, maxPreBlockIDQuery)
	if err = row.Err(); err != nil {
		return 0, false, fmt.Errorf("query max pre-block id: %w", err)
	}

	var rows uint64
	if err = row.Scan(&rows, &id); err != nil {
		return 0, false, fmt.Errorf("scan max pre-block id: %w", err)
	}
	return id, rows > 0, nil
}
