// Package shutdown provides a fan-out cancellation signal for long-running loops.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"

	"go.uber.org/zap"
)

// Coordinator fires a single cancellation signal observed by any number of receivers.
type Coordinator struct {
	once sync.Once
	done chan struct{}
}

// New returns a Coordinator that has not fired.
func New() *Coordinator {
	return &Coordinator{done: make(chan struct{})}
}

// Receiver observes a Coordinator.
type Receiver struct {
	done <-chan struct{}
}

// Subscribe returns a new receiver. Receivers created after Fire are already done.
func (c *Coordinator) Subscribe() Receiver {
	return Receiver{done: c.done}
}

// Fire signals every receiver. Calling it more than once, or with no receivers, is fine.
func (c *Coordinator) Fire() {
	c.once.Do(func() {
		close(c.done)
	})
}

// Fired reports whether Fire has been called.
func (c *Coordinator) Fired() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Context returns a child of parent that is cancelled when the coordinator fires.
func (c *Coordinator) Context(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	go func() {
		select {
		case <-c.done:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// FireOnSignal fires the coordinator when one of signals arrives or ctx is done.
// It returns immediately; the listener exits after firing.
func (c *Coordinator) FireOnSignal(ctx context.Context, logger *zap.Logger, signals ...os.Signal) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, signals...)
	go func() {
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			logger.Info("shutdown signal received", zap.String("signal", sig.String()))
		case <-ctx.Done():
		case <-c.done:
			return
		}
		c.Fire()
	}()
}

// Done returns a channel closed when the coordinator fires.
func (r Receiver) Done() <-chan struct{} {
	return r.done
}

// Fired reports whether the coordinator has fired.
func (r Receiver) Fired() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}
