package archiver

import (
	"context"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/dsn-sequencer/internal/model"
	"github.com/goodnatureofminers/dsn-sequencer/pkg/batcher"
)

type preBlockWriter struct {
	repo    Repository
	logger  *zap.Logger
	batcher *batcher.Batcher[model.PreBlock]
}

func newPreBlockWriter(repo Repository, cfg Config, logger *zap.Logger) *preBlockWriter {
	w := &preBlockWriter{
		repo:   repo,
		logger: logger,
	}
	w.batcher = batcher.New[model.PreBlock](
		logger.Named("batcher"),
		w.flush,
		batcher.Config{
			FlushSize:     cfg.FlushSize,
			FlushInterval: cfg.FlushInterval,
			RPS:           cfg.WriteRPS,
			MaxAttempts:   cfg.WriteAttempts,
			RetryDelay:    cfg.RetryDelay,
		},
	)
	return w
}

func (w *preBlockWriter) Start(ctx context.Context) {
	w.batcher.Start(ctx)
}

func (w *preBlockWriter) Stop() error {
	return w.batcher.Stop()
}

func (w *preBlockWriter) Write(ctx context.Context, block model.PreBlock) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.batcher.Add(ctx, block)
}

// Transactions are inserted before headers so an archived header implies its
// transactions are stored.
func (w *preBlockWriter) flush(ctx context.Context, blocks []model.PreBlock) error {
	if err := w.repo.InsertTransactions(ctx, blocks); err != nil {
		return err
	}
	if err := w.repo.InsertPreBlocks(ctx, blocks); err != nil {
		return err
	}
	w.logger.Debug("archived pre-blocks",
		zap.Uint64("first_id", blocks[0].Header.ID),
		zap.Uint64("last_id", blocks[len(blocks)-1].Header.ID),
	)
	return nil
}
