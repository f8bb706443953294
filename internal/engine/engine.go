// Package engine implements the pre-block sequencing engine.
//
// A single run-loop goroutine owns the pending transaction queue, the next id and
// the storage writer. Submissions, seal and clear requests reach it by message
// passing; reads are served concurrently from storage snapshots.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/dsn-sequencer/internal/api"
	"github.com/goodnatureofminers/dsn-sequencer/internal/broadcast"
	"github.com/goodnatureofminers/dsn-sequencer/internal/clock"
	"github.com/goodnatureofminers/dsn-sequencer/internal/encoding"
	"github.com/goodnatureofminers/dsn-sequencer/internal/model"
	"github.com/goodnatureofminers/dsn-sequencer/internal/shutdown"
	"github.com/goodnatureofminers/dsn-sequencer/internal/storage"
)

// State is the engine lifecycle stage.
type State int32

const (
	// StateRunning accepts submissions and seals.
	StateRunning State = iota
	// StateDraining rejects submissions and seal requests. Reads are still served.
	StateDraining
	// StateStopped rejects every call.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Seal triggers.
const (
	TriggerSize      = "size"
	TriggerInterval  = "interval"
	TriggerHeartbeat = "heartbeat"
	TriggerExplicit  = "explicit"
)

type requestKind int

const (
	requestSeal requestKind = iota
	requestClear
)

type request struct {
	kind  requestKind
	reply chan response
}

type response struct {
	header  model.PreBlockHeader
	dropped int
	err     error
}

// Option customizes an Engine.
type Option func(*Engine)

// WithMetrics reports engine events to m.
func WithMetrics(m Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithClock stamps sealed pre-blocks with c.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// Engine sequences transactions into pre-blocks.
type Engine struct {
	cfg     Config
	backend storage.Backend
	logger  *zap.Logger
	stop    shutdown.Receiver
	metrics Metrics
	clock   Clock
	cache   *lru.Cache[uint64, model.PreBlock]
	feed    *broadcast.Broadcaster[model.PreBlockHeader]

	submitCh chan model.Transaction
	requests chan request
	state    atomic.Int32
	head     atomic.Pointer[model.PreBlockHeader]

	stopping  chan struct{}
	stopOnce  sync.Once
	loopDone  chan struct{}
	closeOnce sync.Once

	// Owned by the run loop.
	queue  []model.Transaction
	nextID uint64
}

// New loads the head from backend and starts the run loop. The loop drains when
// stop fires or Close is called.
func New(backend storage.Backend, stop shutdown.Receiver, logger *zap.Logger, cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	cfg = cfg.withDefaults()

	cache, err := lru.New[uint64, model.PreBlock](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create pre-block cache: %w", err)
	}

	e := &Engine{
		cfg:      cfg,
		backend:  backend,
		logger:   logger,
		stop:     stop,
		metrics:  nopMetrics{},
		clock:    clock.System{},
		cache:    cache,
		feed:     broadcast.New[model.PreBlockHeader](cfg.BroadcastCapacity),
		submitCh: make(chan model.Transaction, cfg.SubmitBuffer),
		requests: make(chan request),
		stopping: make(chan struct{}),
		loopDone: make(chan struct{}),
		nextID:   model.OriginID,
	}
	for _, opt := range opts {
		opt(e)
	}

	head, err := e.loadHead()
	switch {
	case err == nil:
		e.head.Store(&head)
		e.nextID = head.ID + 1
		e.metrics.SetHead(head.ID)
	case errors.Is(err, storage.ErrNotFound):
	default:
		return nil, fmt.Errorf("load head: %w", err)
	}

	e.logger.Info("engine started",
		zap.Uint64("author", cfg.Author),
		zap.Uint64("next_id", e.nextID),
		zap.Int("max_batch_size", cfg.MaxBatchSize),
		zap.Duration("seal_interval", cfg.SealInterval),
	)

	go e.watch(stop)
	go e.run()
	return e, nil
}

// State reports the lifecycle stage.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Done is closed once the run loop has exited.
func (e *Engine) Done() <-chan struct{} {
	return e.loopDone
}

// Close drains the engine and waits for the run loop. The backend is not closed.
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		e.beginDrain()
		<-e.loopDone
		e.state.Store(int32(StateStopped))
		e.logger.Info("engine stopped")
	})
	return nil
}

// NewHandle returns a handle whose cursor starts at the current head.
func (e *Engine) NewHandle() *Handle {
	sub := e.feed.Subscribe()
	next := model.OriginID
	if head := e.head.Load(); head != nil {
		next = head.ID + 1
	}
	return &Handle{engine: e, sub: sub, next: next}
}

// NewHandleFrom returns a handle whose first NextPreBlock returns the header with id nextID.
func (e *Engine) NewHandleFrom(nextID uint64) *Handle {
	return &Handle{engine: e, sub: e.feed.Subscribe(), next: nextID}
}

// SubmitTransaction enqueues tx for sealing.
func (e *Engine) SubmitTransaction(ctx context.Context, tx model.Transaction) (err error) {
	defer func() {
		e.metrics.ObserveSubmit(err)
	}()

	if !e.accepting() {
		return api.Shutdown("engine is not accepting transactions")
	}

	select {
	case e.submitCh <- tx:
		return nil
	case <-e.stopping:
		return api.Shutdown("engine is not accepting transactions")
	case <-e.stop.Done():
		return api.Shutdown("engine is not accepting transactions")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SealNextPreBlock seals whatever is pending, up to the batch size, and returns the
// header once it is committed. It seals a header-only pre-block when nothing is pending.
func (e *Engine) SealNextPreBlock(ctx context.Context) (model.PreBlockHeader, error) {
	resp, err := e.call(ctx, requestSeal)
	return resp.header, err
}

// ClearQueue discards every pending transaction.
func (e *Engine) ClearQueue(ctx context.Context) error {
	_, err := e.call(ctx, requestClear)
	return err
}

func (e *Engine) call(ctx context.Context, kind requestKind) (response, error) {
	if !e.accepting() {
		return response{}, api.Shutdown("engine is draining")
	}

	req := request{kind: kind, reply: make(chan response, 1)}
	select {
	case e.requests <- req:
	case <-e.stopping:
		return response{}, api.Shutdown("engine is draining")
	case <-e.stop.Done():
		return response{}, api.Shutdown("engine is draining")
	case <-ctx.Done():
		return response{}, ctx.Err()
	}

	// Accepted requests are always answered, even when the engine starts draining
	// while a write is in flight.
	select {
	case resp := <-req.reply:
		return resp, resp.err
	case <-ctx.Done():
		return response{}, ctx.Err()
	}
}

// accepting reports whether writes may still be handed to the run loop. The
// shutdown signal is checked directly since the loop observes it asynchronously.
func (e *Engine) accepting() bool {
	if e.State() != StateRunning || e.stop.Fired() {
		return false
	}
	select {
	case <-e.stopping:
		return false
	default:
		return true
	}
}

func (e *Engine) watch(stop shutdown.Receiver) {
	select {
	case <-stop.Done():
		e.logger.Info("shutdown observed, draining engine")
		e.beginDrain()
	case <-e.stopping:
	}
}

func (e *Engine) beginDrain() {
	e.stopOnce.Do(func() {
		e.state.CompareAndSwap(int32(StateRunning), int32(StateDraining))
		close(e.stopping)
	})
}

func (e *Engine) loadHead() (model.PreBlockHeader, error) {
	snap, err := e.backend.Snapshot(ScopeMeta)
	if err != nil {
		return model.PreBlockHeader{}, err
	}
	defer snap.Release()

	raw, err := snap.Get(ScopeMeta, headKey)
	if err != nil {
		return model.PreBlockHeader{}, err
	}
	head, err := encoding.DecodeHeader(raw)
	if err != nil {
		return model.PreBlockHeader{}, fmt.Errorf("decode head: %w", err)
	}
	return head, nil
}
