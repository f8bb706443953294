// Package loopback runs an engine in-process over an embedded backend, with no
// network hop and explicit sealing by default.
package loopback

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/dsn-sequencer/internal/api"
	"github.com/goodnatureofminers/dsn-sequencer/internal/engine"
	"github.com/goodnatureofminers/dsn-sequencer/internal/model"
	"github.com/goodnatureofminers/dsn-sequencer/internal/shutdown"
	"github.com/goodnatureofminers/dsn-sequencer/internal/storage"
	"github.com/goodnatureofminers/dsn-sequencer/internal/storage/memory"
)

// Options configures a Sequencer.
type Options struct {
	// Backend defaults to a fresh in-memory database owned by the Sequencer.
	Backend storage.Backend
	// Engine is passed to the engine as is. SealInterval defaults to zero.
	Engine engine.Config
	// EngineOptions are forwarded to engine.New.
	EngineOptions []engine.Option
}

// Sequencer is a self-contained engine with its own shutdown coordinator.
type Sequencer struct {
	engine      *engine.Engine
	coord       *shutdown.Coordinator
	backend     storage.Backend
	ownsBackend bool
}

// New starts a loopback sequencer.
func New(logger *zap.Logger, opts Options) (*Sequencer, error) {
	backend, owns := opts.Backend, false
	if backend == nil {
		backend, owns = memory.New(), true
	}

	coord := shutdown.New()
	e, err := engine.New(backend, coord.Subscribe(), logger.Named("loopback"), opts.Engine, opts.EngineOptions...)
	if err != nil {
		if owns {
			err = errors.Join(err, backend.Close())
		}
		return nil, fmt.Errorf("start loopback engine: %w", err)
	}
	return &Sequencer{engine: e, coord: coord, backend: backend, ownsBackend: owns}, nil
}

// NewHandle returns an independent consumer handle.
func (s *Sequencer) NewHandle() api.Node {
	return s.engine.NewHandle()
}

// Seal seals the pending queue, even when it is empty.
func (s *Sequencer) Seal(ctx context.Context) (model.PreBlockHeader, error) {
	return s.engine.SealNextPreBlock(ctx)
}

// Shutdown starts draining without releasing resources.
func (s *Sequencer) Shutdown() {
	s.coord.Fire()
}

// Close stops the engine and closes the backend when the Sequencer created it.
func (s *Sequencer) Close() error {
	s.coord.Fire()
	err := s.engine.Close()
	if s.ownsBackend {
		err = errors.Join(err, s.backend.Close())
	}
	return err
}
