// Package memory implements an in-process storage.Backend with multi-version reads.
package memory

import (
	"sync"

	"github.com/goodnatureofminers/dsn-sequencer/internal/storage"
)

type version struct {
	seq     uint64
	value   []byte
	removed bool
}

// Database keeps every committed value tagged with the commit sequence that wrote it.
// A snapshot pins the sequence current at creation and ignores later versions.
type Database struct {
	mu      sync.RWMutex
	seq     uint64
	entries map[storage.Scope]map[string][]version
	pinned  map[uint64]int
	closed  bool
}

var _ storage.Backend = (*Database)(nil)

// New returns an empty Database.
func New() *Database {
	return &Database{
		entries: make(map[storage.Scope]map[string][]version),
		pinned:  make(map[uint64]int),
	}
}

// Snapshot pins the current commit sequence for the given scopes.
func (d *Database) Snapshot(scopes ...storage.Scope) (storage.Snapshot, error) {
	set, err := storage.NewScopeSet(scopes)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, storage.ErrClosed
	}
	d.pinned[d.seq]++
	return &snapshot{db: d, seq: d.seq, scopes: set}, nil
}

// Write applies every operation of batch under a single new commit sequence.
func (d *Database) Write(batch *storage.WriteBatch) error {
	if err := batch.Validate(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return storage.ErrClosed
	}

	d.seq++
	oldest := d.oldestPinned()
	for _, op := range batch.Operations() {
		scope, ok := d.entries[op.Scope]
		if !ok {
			scope = make(map[string][]version)
			d.entries[op.Scope] = scope
		}
		key := string(op.Key)
		history := append(scope[key], version{seq: d.seq, value: op.Value, removed: op.Remove})
		scope[key] = compact(history, oldest)
	}
	return nil
}

// Close drops all data. Open snapshots keep failing afterwards.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.entries = nil
	return nil
}

func (d *Database) get(seq uint64, scope storage.Scope, key []byte) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return nil, storage.ErrClosed
	}

	history := d.entries[scope][string(key)]
	for i := len(history) - 1; i >= 0; i-- {
		v := history[i]
		if v.seq > seq {
			continue
		}
		if v.removed {
			return nil, storage.ErrNotFound
		}
		cp := make([]byte, len(v.value))
		copy(cp, v.value)
		return cp, nil
	}
	return nil, storage.ErrNotFound
}

func (d *Database) release(seq uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pinned[seq] <= 1 {
		delete(d.pinned, seq)
		return
	}
	d.pinned[seq]--
}

func (d *Database) oldestPinned() uint64 {
	oldest := d.seq
	for seq := range d.pinned {
		if seq < oldest {
			oldest = seq
		}
	}
	return oldest
}

// compact drops versions no snapshot can observe: everything older than the newest
// version visible at oldest.
func compact(history []version, oldest uint64) []version {
	keep := 0
	for i, v := range history {
		if v.seq <= oldest {
			keep = i
		}
	}
	if keep == 0 {
		return history
	}
	return append(history[:0], history[keep:]...)
}

type snapshot struct {
	db     *Database
	seq    uint64
	scopes storage.ScopeSet
	once   sync.Once
}

func (s *snapshot) Get(scope storage.Scope, key []byte) ([]byte, error) {
	if err := s.scopes.Check(scope); err != nil {
		return nil, err
	}
	return s.db.get(s.seq, scope, key)
}

func (s *snapshot) Release() {
	s.once.Do(func() {
		s.db.release(s.seq)
	})
}
