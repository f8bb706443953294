package batcher

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func testConfig(size int, interval time.Duration) Config {
	return Config{FlushSize: size, FlushInterval: interval, RPS: 1000}
}

func TestBatcher_FlushOnSize(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var flushed atomic.Int32
	var batches [][]int
	var mu sync.Mutex

	b := New(zap.NewNop(), func(_ context.Context, items []int) error {
		mu.Lock()
		defer mu.Unlock()
		flushed.Add(int32(len(items)))
		cp := make([]int, len(items))
		copy(cp, items)
		batches = append(batches, cp)
		return nil
	}, testConfig(3, time.Second))

	b.Start(ctx)
	defer b.Stop()

	for i := 0; i < 5; i++ {
		if err := b.Add(ctx, i); err != nil {
			t.Fatalf("Add error: %v", err)
		}
	}
	time.Sleep(100 * time.Millisecond)

	if flushed.Load() != 3 {
		t.Fatalf("expected first flush of 3 items, got %d", flushed.Load())
	}
	mu.Lock()
	if len(batches) != 1 || len(batches[0]) != 3 {
		t.Fatalf("unexpected batches: %+v", batches)
	}
	mu.Unlock()
}

func TestBatcher_FlushOnInterval(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var flushed atomic.Int32

	b := New(zap.NewNop(), func(_ context.Context, items []int) error {
		flushed.Add(int32(len(items)))
		return nil
	}, testConfig(5, 50*time.Millisecond))

	b.Start(ctx)
	defer b.Stop()

	if err := b.Add(ctx, 1); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	time.Sleep(120 * time.Millisecond)

	if flushed.Load() != 1 {
		t.Fatalf("expected flush after interval, got %d", flushed.Load())
	}
}

func TestBatcher_StopFlushesBuffered(t *testing.T) {
	t.Parallel()

	var flushed atomic.Int32
	b := New(zap.NewNop(), func(ctx context.Context, items []int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		flushed.Add(int32(len(items)))
		return nil
	}, testConfig(10, time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	b.Start(ctx)
	for i := 0; i < 4; i++ {
		if err := b.Add(ctx, i); err != nil {
			t.Fatalf("Add error: %v", err)
		}
	}
	cancel()

	if err := b.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if flushed.Load() != 4 {
		t.Fatalf("flushed %d items on stop, want 4", flushed.Load())
	}
	if err := b.Add(context.Background(), 1); !errors.Is(err, ErrStopped) {
		t.Fatalf("Add after Stop error = %v, want ErrStopped", err)
	}
}

func TestBatcher_RetriesFailedFlush(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	cfg := testConfig(1, time.Second)
	cfg.MaxAttempts = 3
	cfg.RetryDelay = time.Millisecond

	b := New(zap.NewNop(), func(_ context.Context, items []int) error {
		if calls.Add(1) == 1 {
			return errors.New("flush failed")
		}
		return nil
	}, cfg)

	b.Start(ctx)
	defer b.Stop()

	if err := b.Add(ctx, 1); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if calls.Load() != 2 {
		t.Fatalf("expected two flush attempts, got %d", calls.Load())
	}
	if err := b.Err(); err != nil {
		t.Fatalf("Err() = %v, want nil", err)
	}
}

func TestBatcher_ExhaustedAttemptsEndLoop(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flushErr := errors.New("flush failed")
	cfg := testConfig(1, time.Second)
	cfg.MaxAttempts = 2

	b := New(zap.NewNop(), func(context.Context, []int) error {
		return flushErr
	}, cfg)
	b.Start(ctx)

	if err := b.Add(ctx, 1); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	select {
	case <-b.Done():
	case <-time.After(time.Second):
		t.Fatal("batcher did not stop after exhausting attempts")
	}
	if err := b.Add(ctx, 2); !errors.Is(err, flushErr) {
		t.Fatalf("Add after failure error = %v, want %v", err, flushErr)
	}
	if err := b.Stop(); !errors.Is(err, flushErr) {
		t.Fatalf("Stop() error = %v, want %v", err, flushErr)
	}
}
