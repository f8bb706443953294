// Package bolt implements storage.Backend on top of bbolt, one bucket per scope.
package bolt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goodnatureofminers/dsn-sequencer/internal/storage"
	bolt "go.etcd.io/bbolt"
)

// Database wraps a bbolt file.
type Database struct {
	bolt *bolt.DB
}

var _ storage.Backend = (*Database)(nil)

// Open opens or creates the bbolt file at path.
func Open(path string) (*Database, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create %q: %w", filepath.Dir(path), err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %q: %w", path, err)
	}
	return &Database{bolt: db}, nil
}

// Snapshot begins a read-only bbolt transaction. Release must be called promptly;
// bbolt cannot grow its memory map while read transactions are open.
func (d *Database) Snapshot(scopes ...storage.Scope) (storage.Snapshot, error) {
	set, err := storage.NewScopeSet(scopes)
	if err != nil {
		return nil, err
	}
	tx, err := d.bolt.Begin(false)
	if err != nil {
		return nil, mapError(err)
	}
	return &snapshot{tx: tx, scopes: set}, nil
}

// Write applies batch inside one bbolt update transaction.
func (d *Database) Write(batch *storage.WriteBatch) error {
	if err := batch.Validate(); err != nil {
		return err
	}

	err := d.bolt.Update(func(tx *bolt.Tx) error {
		for _, op := range batch.Operations() {
			b, err := tx.CreateBucketIfNotExists([]byte(op.Scope))
			if err != nil {
				return fmt.Errorf("bucket %s: %w", op.Scope, err)
			}
			if op.Remove {
				err = b.Delete(op.Key)
			} else {
				err = b.Put(op.Key, op.Value)
			}
			if err != nil {
				return fmt.Errorf("%s/%x: %w", op.Scope, op.Key, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("bolt write: %w", mapError(err))
	}
	return nil
}

// Close closes the bbolt file.
func (d *Database) Close() error {
	return d.bolt.Close()
}

type snapshot struct {
	tx     *bolt.Tx
	scopes storage.ScopeSet
}

func (s *snapshot) Get(scope storage.Scope, key []byte) ([]byte, error) {
	if err := s.scopes.Check(scope); err != nil {
		return nil, err
	}
	b := s.tx.Bucket([]byte(scope))
	if b == nil {
		return nil, storage.ErrNotFound
	}
	v := b.Get(key)
	if v == nil {
		return nil, storage.ErrNotFound
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

func (s *snapshot) Release() {
	_ = s.tx.Rollback()
}

func mapError(err error) error {
	if errors.Is(err, bolt.ErrDatabaseNotOpen) {
		return storage.ErrClosed
	}
	return err
}
