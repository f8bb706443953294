// Package broadcast implements a bounded multi-subscriber broadcast with drop-oldest
// semantics.
//
// Every subscriber keeps its own cursor into a fixed size ring. Publishing never
// blocks; when a subscriber falls more than the ring capacity behind, the oldest
// entries it has not read are overwritten and its next Recv reports a LaggedError
// with the number of entries it missed. Consumers that need complete history must
// reconcile the gap from durable storage.
package broadcast

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrClosed is returned by Recv once the broadcaster is closed and drained.
var ErrClosed = errors.New("broadcast: closed")

// LaggedError reports entries overwritten before the subscriber read them.
type LaggedError struct {
	Missed uint64
}

func (e *LaggedError) Error() string {
	return fmt.Sprintf("broadcast: subscriber lagged, %d entries missed", e.Missed)
}

// Broadcaster fans published values out to subscribers.
type Broadcaster[T any] struct {
	mu     sync.Mutex
	ring   []T
	next   uint64
	notify chan struct{}
	closed bool
}

// New returns a Broadcaster retaining at most capacity undelivered values.
func New[T any](capacity int) *Broadcaster[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Broadcaster[T]{
		ring:   make([]T, capacity),
		notify: make(chan struct{}),
	}
}

// Publish appends v, overwriting the oldest retained value when the ring is full.
// Publishing after Close is a no-op.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.ring[b.next%uint64(len(b.ring))] = v
	b.next++
	close(b.notify)
	b.notify = make(chan struct{})
}

// Subscribe returns a subscriber that receives values published from now on.
func (b *Broadcaster[T]) Subscribe() *Subscriber[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return &Subscriber[T]{b: b, cursor: b.next}
}

// Close wakes all subscribers. Values already published can still be received.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.notify)
}

// Subscriber is a single consumer cursor. It must not be shared between goroutines.
type Subscriber[T any] struct {
	b      *Broadcaster[T]
	cursor uint64
}

// Recv returns the next value, waiting until one is published, ctx is done or the
// broadcaster is closed.
func (s *Subscriber[T]) Recv(ctx context.Context) (T, error) {
	var zero T
	for {
		v, ok, wait, err := s.poll()
		if err != nil || ok {
			return v, err
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-wait:
		}
	}
}

func (s *Subscriber[T]) poll() (v T, ok bool, wait <-chan struct{}, err error) {
	b := s.b
	b.mu.Lock()
	defer b.mu.Unlock()

	if s.cursor < b.next {
		capacity := uint64(len(b.ring))
		var oldest uint64
		if b.next > capacity {
			oldest = b.next - capacity
		}
		if s.cursor < oldest {
			missed := oldest - s.cursor
			s.cursor = oldest
			return v, false, nil, &LaggedError{Missed: missed}
		}
		v = b.ring[s.cursor%capacity]
		s.cursor++
		return v, true, nil, nil
	}
	if b.closed {
		return v, false, nil, ErrClosed
	}
	return v, false, b.notify, nil
}
