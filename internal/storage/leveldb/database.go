// Package leveldb implements storage.Backend on top of goleveldb.
package leveldb

import (
	"errors"
	"fmt"
	"os"

	"github.com/goodnatureofminers/dsn-sequencer/internal/storage"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
)

// Database stores every scope in one leveldb keyspace; keys are prefixed with the
// length-prefixed scope name.
type Database struct {
	db   *leveldb.DB
	sync bool
}

var _ storage.Backend = (*Database)(nil)

// Option configures a Database.
type Option func(*Database)

// WithoutSync disables fsync on commit. Intended for tests.
func WithoutSync() Option {
	return func(d *Database) {
		d.sync = false
	}
}

// OpenFile opens or creates a database in dir.
func OpenFile(dir string, opts ...Option) (*Database, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create %q: %w", dir, err)
	}

	db, err := leveldb.OpenFile(dir, &ldb_opt.Options{
		ErrorIfMissing: false,
	})
	if err != nil {
		return nil, fmt.Errorf("open leveldb %q: %w", dir, err)
	}

	d := &Database{db: db, sync: true}
	for _, o := range opts {
		o(d)
	}
	return d, nil
}

// Snapshot opens a leveldb snapshot restricted to scopes.
func (d *Database) Snapshot(scopes ...storage.Scope) (storage.Snapshot, error) {
	set, err := storage.NewScopeSet(scopes)
	if err != nil {
		return nil, err
	}
	snap, err := d.db.GetSnapshot()
	if err != nil {
		return nil, mapError(err)
	}
	return &snapshot{snap: snap, scopes: set}, nil
}

// Write commits batch as a single leveldb batch.
func (d *Database) Write(batch *storage.WriteBatch) error {
	if err := batch.Validate(); err != nil {
		return err
	}

	b := new(leveldb.Batch)
	for _, op := range batch.Operations() {
		if op.Remove {
			b.Delete(prefixKey(op.Scope, op.Key))
		} else {
			b.Put(prefixKey(op.Scope, op.Key), op.Value)
		}
	}
	if err := d.db.Write(b, &ldb_opt.WriteOptions{Sync: d.sync}); err != nil {
		return fmt.Errorf("leveldb write: %w", mapError(err))
	}
	return nil
}

// Close closes the underlying database.
func (d *Database) Close() error {
	return d.db.Close()
}

type snapshot struct {
	snap   *leveldb.Snapshot
	scopes storage.ScopeSet
}

func (s *snapshot) Get(scope storage.Scope, key []byte) ([]byte, error) {
	if err := s.scopes.Check(scope); err != nil {
		return nil, err
	}
	v, err := s.snap.Get(prefixKey(scope, key), nil)
	switch {
	case err == nil:
		cp := make([]byte, len(v))
		copy(cp, v)
		return cp, nil
	case errors.Is(err, leveldb.ErrNotFound):
		return nil, storage.ErrNotFound
	default:
		return nil, fmt.Errorf("leveldb get %s/%x: %w", scope, key, mapError(err))
	}
}

func (s *snapshot) Release() {
	s.snap.Release()
}

// prefixKey prepends the one byte scope length and the scope name.
func prefixKey(scope storage.Scope, key []byte) []byte {
	prefixed := make([]byte, 0, 1+len(scope)+len(key))
	prefixed = append(prefixed, byte(len(scope)))
	prefixed = append(prefixed, scope...)
	return append(prefixed, key...)
}

func mapError(err error) error {
	if errors.Is(err, leveldb.ErrClosed) {
		return storage.ErrClosed
	}
	return err
}
