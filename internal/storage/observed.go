package storage

import (
	"errors"
	"time"
)

type (
	// Metrics records storage operation outcomes.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Observed wraps a Backend with metrics instrumentation.
type Observed struct {
	backend Backend
	metrics Metrics
}

// NewObserved constructs an instrumented Backend.
func NewObserved(backend Backend, metrics Metrics) *Observed {
	return &Observed{backend: backend, metrics: metrics}
}

// Snapshot opens a snapshot on the wrapped backend.
func (o *Observed) Snapshot(scopes ...Scope) (snap Snapshot, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("snapshot", err, started)
	}()
	snap, err = o.backend.Snapshot(scopes...)
	if err != nil {
		return nil, err
	}
	return &observedSnapshot{snap: snap, metrics: o.metrics}, nil
}

// Write commits batch on the wrapped backend.
func (o *Observed) Write(batch *WriteBatch) (err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("write", err, started)
	}()
	return o.backend.Write(batch)
}

// Close closes the wrapped backend.
func (o *Observed) Close() error {
	return o.backend.Close()
}

type observedSnapshot struct {
	snap    Snapshot
	metrics Metrics
}

func (s *observedSnapshot) Get(scope Scope, key []byte) (value []byte, err error) {
	started := time.Now()
	defer func() {
		// missing keys are not failures
		if errors.Is(err, ErrNotFound) {
			s.metrics.Observe("get", nil, started)
			return
		}
		s.metrics.Observe("get", err, started)
	}()
	return s.snap.Get(scope, key)
}

func (s *observedSnapshot) Release() {
	s.snap.Release()
}
