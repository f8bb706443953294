// Package storage defines the scoped key/value contract used by the sequencer.
//
// A Backend hands out isolated read snapshots and applies write batches atomically.
// Exactly one writer is expected to call Write; any number of readers may hold
// snapshots concurrently.
package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Snapshot.Get when the key does not exist.
	ErrNotFound = errors.New("storage: key not found")
	// ErrScopeNotInSnapshot is returned when reading a scope the snapshot was not opened for.
	ErrScopeNotInSnapshot = errors.New("storage: scope not in snapshot")
	// ErrInvalidBatch is returned by Write for batches with malformed operations.
	ErrInvalidBatch = errors.New("storage: invalid batch")
	// ErrClosed is returned by backends that have been closed.
	ErrClosed = errors.New("storage: backend closed")
)

// Scope names an isolated key space.
type Scope string

// MaxScopeLength bounds scope names so they fit a one byte length prefix.
const MaxScopeLength = 255

// Validate checks that the scope name can be stored by every backend.
func (s Scope) Validate() error {
	if s == "" || len(s) > MaxScopeLength {
		return fmt.Errorf("invalid scope %q", string(s))
	}
	return nil
}

type (
	// Snapshot is a read-only point-in-time view over a set of scopes.
	Snapshot interface {
		Get(scope Scope, key []byte) ([]byte, error)
		Release()
	}

	// Backend is a scoped key/value store with snapshot reads and atomic batch writes.
	Backend interface {
		Snapshot(scopes ...Scope) (Snapshot, error)
		Write(batch *WriteBatch) error
		Close() error
	}
)

// ScopeSet restricts snapshot reads to the scopes it was opened for.
type ScopeSet map[Scope]struct{}

// NewScopeSet validates scopes and returns them as a set.
func NewScopeSet(scopes []Scope) (ScopeSet, error) {
	set := make(ScopeSet, len(scopes))
	for _, scope := range scopes {
		if err := scope.Validate(); err != nil {
			return nil, err
		}
		set[scope] = struct{}{}
	}
	return set, nil
}

// Check returns ErrScopeNotInSnapshot for scopes outside the set.
func (s ScopeSet) Check(scope Scope) error {
	if _, ok := s[scope]; !ok {
		return fmt.Errorf("%w: %s", ErrScopeNotInSnapshot, scope)
	}
	return nil
}
