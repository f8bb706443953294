// Package archiver mirrors sealed pre-blocks into the ClickHouse archive.
//
// The service resumes from the highest archived id, catches up with concurrent
// range requests and then follows new headers, fetching the pre-blocks they name.
package archiver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/dsn-sequencer/internal/api"
	"github.com/goodnatureofminers/dsn-sequencer/internal/clock"
	"github.com/goodnatureofminers/dsn-sequencer/internal/model"
	"github.com/goodnatureofminers/dsn-sequencer/pkg/workerpool"
)

// ErrWriter marks archive write failures. They end Run; a restart resumes from
// the archive head.
var ErrWriter = errors.New("archive writer failed")

type Service struct {
	logger       *zap.Logger
	source       Source
	follow       FollowFunc
	repo         Repository
	writer       Writer
	metrics      Metrics
	sleep        func(context.Context, time.Duration) error
	retryDelay   time.Duration
	chunkSize    uint64
	workers      int
	windowChunks int
}

type chunk struct {
	from, count uint64
}

func NewService(
	source Source,
	follow FollowFunc,
	repo Repository,
	metrics Metrics,
	cfg Config,
	logger *zap.Logger,
) (*Service, error) {
	if metrics == nil {
		return nil, errors.New("archiver metrics is required")
	}
	cfg = cfg.withDefaults()

	return &Service{
		logger:       logger,
		source:       source,
		follow:       follow,
		repo:         repo,
		writer:       newPreBlockWriter(repo, cfg, logger.Named("writer")),
		metrics:      metrics,
		sleep:        clock.SleepWithContext,
		retryDelay:   cfg.RetryDelay,
		chunkSize:    cfg.ChunkSize,
		workers:      cfg.Workers,
		windowChunks: defaultWindowChunks,
	}, nil
}

// Run archives until ctx is cancelled or the writer fails.
func (s *Service) Run(ctx context.Context) error {
	wCtx, wCancel := context.WithCancel(ctx)
	s.writer.Start(wCtx)
	defer func() {
		wCancel()
		if err := s.writer.Stop(); err != nil {
			s.logger.Error("archive writer stopped with error", zap.Error(err))
		}
	}()

	next, err := s.resume(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("archiver started", zap.Uint64("next_id", next))

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		next, err = s.iterate(ctx, next)
		switch {
		case err == nil:
		case ctx.Err() != nil:
			return ctx.Err()
		case errors.Is(err, ErrWriter):
			return err
		default:
			s.logger.Warn("archive iteration failed, backing off",
				zap.Uint64("next_id", next),
				zap.Duration("sleep", s.retryDelay),
				zap.Error(err),
			)
			if sleepErr := s.sleep(ctx, s.retryDelay); sleepErr != nil {
				return sleepErr
			}
		}
	}
}

func (s *Service) resume(ctx context.Context) (uint64, error) {
	for {
		id, ok, err := s.repo.MaxPreBlockID(ctx)
		switch {
		case err == nil && ok:
			return id + 1, nil
		case err == nil:
			return model.OriginID, nil
		}

		s.logger.Warn("read archive head failed, backing off", zap.Error(err))
		if sleepErr := s.sleep(ctx, s.retryDelay); sleepErr != nil {
			return 0, sleepErr
		}
	}
}

func (s *Service) iterate(ctx context.Context, next uint64) (uint64, error) {
	next, err := s.catchUp(ctx, next)
	if err != nil {
		return next, err
	}
	return s.followFrom(ctx, next)
}

// catchUp archives every pre-block up to the current head, one window of chunks
// at a time. Chunks of a window are fetched concurrently and written in order.
func (s *Service) catchUp(ctx context.Context, next uint64) (_ uint64, err error) {
	started := time.Now()
	archived := 0
	defer func() {
		s.metrics.ObserveCatchUp(err, archived, started)
	}()

	head, err := s.source.GetPreBlocksHead(ctx)
	switch {
	case errors.Is(err, api.ErrNotFound):
		return next, nil
	case err != nil:
		return next, fmt.Errorf("get head: %w", err)
	}

	for next <= head.ID {
		chunks := s.window(next, head.ID)
		results := make([][]model.PreBlock, len(chunks))
		err = workerpool.Process(ctx, s.workers, chunks, func(ctx context.Context, i int, c chunk) error {
			blocks, err := s.source.GetPreBlocks(ctx, c.from, c.count)
			if err != nil {
				return fmt.Errorf("get pre-blocks from %d: %w", c.from, err)
			}
			if uint64(len(blocks)) != c.count {
				return fmt.Errorf("get pre-blocks from %d: got %d of %d", c.from, len(blocks), c.count)
			}
			results[i] = blocks
			return nil
		})
		if err != nil {
			return next, err
		}

		for _, blocks := range results {
			for _, block := range blocks {
				if next, err = s.write(ctx, next, block); err != nil {
					return next, err
				}
				archived++
			}
		}
	}

	if archived > 0 {
		s.logger.Info("caught up", zap.Uint64("next_id", next), zap.Int("pre_blocks", archived))
	}
	return next, nil
}

func (s *Service) window(next, head uint64) []chunk {
	chunks := make([]chunk, 0, s.windowChunks)
	for from := next; from <= head && len(chunks) < s.windowChunks; from += s.chunkSize {
		chunks = append(chunks, chunk{from: from, count: min(s.chunkSize, head-from+1)})
		if head-from < s.chunkSize {
			break
		}
	}
	return chunks
}

// followFrom archives pre-blocks as their headers are streamed. A header past the
// cursor is reconciled with a range request covering the gap.
func (s *Service) followFrom(ctx context.Context, next uint64) (uint64, error) {
	f := s.follow(next)
	defer f.Close()

	for {
		header, err := f.NextPreBlock(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return next, ctx.Err()
			}
			s.metrics.ObserveFollow(err, next)
			return next, fmt.Errorf("next pre-block: %w", err)
		}
		if header.ID < next {
			continue
		}
		if header.ID > next {
			s.metrics.ObserveGap()
			s.logger.Warn("pre-block gap, reconciling", zap.Uint64("from", next), zap.Uint64("to", header.ID))
		}

		blocks, err := s.source.GetPreBlocks(ctx, next, header.ID-next+1)
		if err != nil {
			s.metrics.ObserveFollow(err, header.ID)
			return next, fmt.Errorf("get pre-blocks from %d: %w", next, err)
		}
		for _, block := range blocks {
			if next, err = s.write(ctx, next, block); err != nil {
				s.metrics.ObserveFollow(err, header.ID)
				return next, err
			}
		}
		if next <= header.ID {
			err = fmt.Errorf("get pre-blocks: stopped at %d before %d", next, header.ID)
			s.metrics.ObserveFollow(err, header.ID)
			return next, err
		}
		s.metrics.ObserveFollow(nil, header.ID)
	}
}

// write hands block to the writer and returns the advanced cursor.
func (s *Service) write(ctx context.Context, next uint64, block model.PreBlock) (uint64, error) {
	if block.Header.ID != next {
		return next, fmt.Errorf("unexpected pre-block %d, want %d", block.Header.ID, next)
	}
	if err := s.writer.Write(ctx, block); err != nil {
		if ctx.Err() != nil {
			return next, ctx.Err()
		}
		return next, fmt.Errorf("%w: %w", ErrWriter, err)
	}
	return next + 1, nil
}
