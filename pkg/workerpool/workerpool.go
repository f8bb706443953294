// Package workerpool provides bounded concurrent processing over a slice.
package workerpool

import (
	"context"
	"sync"
)

// Process calls process for every item on at most workers goroutines. process
// receives the item's index so callers can collect results in input order. The
// first error cancels the remaining work and is returned.
func Process[T any](
	ctx context.Context,
	workers int,
	items []T,
	process func(ctx context.Context, i int, item T) error,
) error {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	workers = min(max(workers, 1), len(items))
	next := make(chan int)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				if ctx.Err() != nil {
					continue
				}
				if err := process(ctx, i, items[i]); err != nil {
					cancel(err)
				}
			}
		}()
	}

feed:
	for i := range items {
		select {
		case <-ctx.Done():
			break feed
		case next <- i:
		}
	}
	close(next)
	wg.Wait()

	return context.Cause(ctx)
}
