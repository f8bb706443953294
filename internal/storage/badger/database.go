// Package badger implements storage.Backend on top of Badger.
package badger

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goodnatureofminers/dsn-sequencer/internal/storage"
	"go.uber.org/zap"
)

const gcInterval = time.Hour

// Database wraps a Badger instance. Snapshots are read-only Badger transactions,
// batches are applied in a single update transaction.
type Database struct {
	badger *badger.DB
	logger *zap.Logger

	mu    sync.RWMutex
	ready bool
	stop  chan struct{}
	wg    sync.WaitGroup
}

var _ storage.Backend = (*Database)(nil)

// Option configures the Badger options used by Open.
type Option func(badger.Options) badger.Options

// WithoutSync disables fsync on commit. Intended for tests.
func WithoutSync() Option {
	return func(o badger.Options) badger.Options {
		return o.WithSyncWrites(false)
	}
}

// Open opens or creates a Badger database in dir. An empty dir opens an in-memory instance.
// Commits are synced to disk unless WithoutSync is given.
func Open(dir string, logger *zap.Logger, options ...Option) (*Database, error) {
	opts := badger.DefaultOptions(dir).
		WithLogger(zapLogger{logger: logger.Sugar()}).
		WithSyncWrites(true)
	for _, option := range options {
		opts = option(opts)
	}
	if dir == "" {
		opts = opts.WithInMemory(true)
	} else if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create %q: %w", dir, err)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger %q: %w", dir, err)
	}

	d := &Database{
		badger: db,
		logger: logger,
		ready:  true,
		stop:   make(chan struct{}),
	}
	if dir != "" {
		d.wg.Add(1)
		go d.gc()
	}
	return d, nil
}

// Snapshot begins a read-only Badger transaction.
func (d *Database) Snapshot(scopes ...storage.Scope) (storage.Snapshot, error) {
	set, err := storage.NewScopeSet(scopes)
	if err != nil {
		return nil, err
	}

	l, err := d.lock(false)
	if err != nil {
		return nil, err
	}
	defer l.Unlock()

	return &snapshot{txn: d.badger.NewTransaction(false), scopes: set}, nil
}

// Write applies batch inside one update transaction. Batches larger than a Badger
// transaction fail with badger.ErrTxnTooBig and leave nothing behind.
func (d *Database) Write(batch *storage.WriteBatch) error {
	if err := batch.Validate(); err != nil {
		return err
	}

	l, err := d.lock(false)
	if err != nil {
		return err
	}
	defer l.Unlock()

	err = d.badger.Update(func(txn *badger.Txn) error {
		for _, op := range batch.Operations() {
			key := prefixKey(op.Scope, op.Key)
			var err error
			if op.Remove {
				err = txn.Delete(key)
			} else {
				err = txn.Set(key, op.Value)
			}
			if err != nil {
				return fmt.Errorf("%s/%x: %w", op.Scope, op.Key, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("badger write: %w", err)
	}
	return nil
}

// Close stops the value log GC and closes Badger.
func (d *Database) Close() error {
	l, err := d.lock(true)
	if err != nil {
		return err
	}
	defer l.Unlock()

	d.ready = false
	close(d.stop)
	d.wg.Wait()
	return d.badger.Close()
}

func (d *Database) gc() {
	defer d.wg.Done()

	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
		}

		// Run GC if 50% space could be reclaimed
		err := d.badger.RunValueLogGC(0.5)
		if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
			d.logger.Error("badger value log gc failed", zap.Error(err))
		}
	}
}

// lock guards against use after Close. Closing takes the write side.
func (d *Database) lock(closing bool) (sync.Locker, error) {
	var l sync.Locker = &d.mu
	if !closing {
		l = d.mu.RLocker()
	}

	l.Lock()
	if !d.ready {
		l.Unlock()
		return nil, storage.ErrClosed
	}
	return l, nil
}

type snapshot struct {
	txn    *badger.Txn
	scopes storage.ScopeSet
}

func (s *snapshot) Get(scope storage.Scope, key []byte) ([]byte, error) {
	if err := s.scopes.Check(scope); err != nil {
		return nil, err
	}
	item, err := s.txn.Get(prefixKey(scope, key))
	switch {
	case err == nil:
	case errors.Is(err, badger.ErrKeyNotFound):
		return nil, storage.ErrNotFound
	case errors.Is(err, badger.ErrDBClosed):
		return nil, storage.ErrClosed
	default:
		return nil, fmt.Errorf("badger get %s/%x: %w", scope, key, err)
	}

	v, err := item.ValueCopy(nil)
	if err != nil {
		return nil, fmt.Errorf("badger value %s/%x: %w", scope, key, err)
	}
	return v, nil
}

func (s *snapshot) Release() {
	s.txn.Discard()
}

func prefixKey(scope storage.Scope, key []byte) []byte {
	prefixed := make([]byte, 0, 1+len(scope)+len(key))
	prefixed = append(prefixed, byte(len(scope)))
	prefixed = append(prefixed, scope...)
	return append(prefixed, key...)
}
