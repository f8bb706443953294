// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// ErrStopped is returned by Add once Stop has been called.
var ErrStopped = errors.New("batcher: stopped")

// Config controls when batches are flushed.
type Config struct {
	FlushSize     int
	FlushInterval time.Duration
	// RPS caps flush attempts per second.
	RPS int
	// MaxAttempts bounds flush attempts per batch. Values below one mean a single attempt.
	MaxAttempts int
	RetryDelay  time.Duration
}

// Batcher buffers items and flushes them in order, by size or interval. A batch
// that cannot be flushed within MaxAttempts ends the loop; later items are refused.
type Batcher[T any] struct {
	flushCallback func(context.Context, []T) error
	cfg           Config
	itemsCh       chan T
	rl            ratelimit.Limiter
	logger        *zap.Logger

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	err      error
}

// New constructs a Batcher.
func New[T any](logger *zap.Logger, flushCallback func(context.Context, []T) error, cfg Config) *Batcher[T] {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Batcher[T]{
		logger:        logger,
		flushCallback: flushCallback,
		cfg:           cfg,
		itemsCh:       make(chan T, cfg.FlushSize*2),
		rl:            ratelimit.New(cfg.RPS),
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes what is buffered, waits for the loop and returns the flush error
// that ended it, if any.
func (b *Batcher[T]) Stop() error {
	b.stopOnce.Do(func() {
		close(b.stop)
	})
	b.wg.Wait()
	return b.err
}

// Done is closed when the flushing loop exits.
func (b *Batcher[T]) Done() <-chan struct{} {
	return b.done
}

// Err returns the flush error that ended the loop, once Done is closed.
func (b *Batcher[T]) Err() error {
	select {
	case <-b.done:
		return b.err
	default:
		return nil
	}
}

// Add queues an item for batching, respecting context cancellation.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return ErrStopped
	case <-b.done:
		return b.closedErr()
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.done:
		return b.closedErr()
	case b.itemsCh <- item:
		return nil
	}
}

func (b *Batcher[T]) closedErr() error {
	if b.err != nil {
		return b.err
	}
	return ErrStopped
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()
	defer close(b.done)

	ticker := time.NewTicker(b.cfg.FlushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.cfg.FlushSize)

	flush := func(ctx context.Context) bool {
		if len(buf) == 0 {
			return true
		}
		if err := b.flush(ctx, buf); err != nil {
			b.err = err
			return false
		}
		buf = buf[:0]
		return true
	}

	// Buffered items are flushed on exit even if ctx is already cancelled.
	final := func() {
		for {
			select {
			case item := <-b.itemsCh:
				buf = append(buf, item)
			default:
				flush(context.WithoutCancel(ctx))
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			final()
			return

		case <-b.stop:
			final()
			return

		case item := <-b.itemsCh:
			buf = append(buf, item)
			if len(buf) >= b.cfg.FlushSize && !flush(ctx) {
				return
			}

		case <-ticker.C:
			if !flush(ctx) {
				return
			}
		}
	}
}

func (b *Batcher[T]) flush(ctx context.Context, buf []T) error {
	for attempt := 1; ; attempt++ {
		b.rl.Take()
		err := b.flushCallback(ctx, buf)
		if err == nil {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
			return nil
		}
		if attempt >= b.cfg.MaxAttempts {
			b.logger.Error("batch not flushed", zap.Int("size", len(buf)), zap.Int("attempts", attempt), zap.Error(err))
			return fmt.Errorf("flush batch of %d: %w", len(buf), err)
		}
		b.logger.Warn("batch flush failed, retrying", zap.Int("attempt", attempt), zap.Error(err))

		timer := time.NewTimer(b.cfg.RetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("flush batch of %d: %w", len(buf), errors.Join(err, ctx.Err()))
		case <-timer.C:
		}
	}
}
