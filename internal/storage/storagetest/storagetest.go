// Package storagetest provides a conformance suite every storage.Backend must pass.
package storagetest

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/goodnatureofminers/dsn-sequencer/internal/storage"
	"github.com/stretchr/testify/require"
)

// Opener returns a fresh, empty backend. The suite closes it.
type Opener = func(t testing.TB) storage.Backend

const (
	scopeA storage.Scope = "alpha"
	scopeB storage.Scope = "beta"
)

// Run executes the conformance suite against backends produced by open.
func Run(t *testing.T, open Opener) {
	t.Run("ReadWrite", func(t *testing.T) { TestReadWrite(t, open) })
	t.Run("ScopesAreIsolated", func(t *testing.T) { TestScopesAreIsolated(t, open) })
	t.Run("SnapshotIsolation", func(t *testing.T) { TestSnapshotIsolation(t, open) })
	t.Run("SnapshotScopeRestriction", func(t *testing.T) { TestSnapshotScopeRestriction(t, open) })
	t.Run("InvalidBatchIsNotApplied", func(t *testing.T) { TestInvalidBatchIsNotApplied(t, open) })
	t.Run("ConcurrentReadersSeeWholeBatches", func(t *testing.T) { TestConcurrentReadersSeeWholeBatches(t, open) })
}

func openBackend(t testing.TB, open Opener) storage.Backend {
	t.Helper()

	backend := open(t)
	t.Cleanup(func() {
		require.NoError(t, backend.Close())
	})
	return backend
}

func get(t testing.TB, backend storage.Backend, scope storage.Scope, key string) ([]byte, error) {
	t.Helper()

	snap, err := backend.Snapshot(scope)
	require.NoError(t, err)
	defer snap.Release()
	return snap.Get(scope, []byte(key))
}

// TestReadWrite checks insert, overwrite and remove.
func TestReadWrite(t *testing.T, open Opener) {
	backend := openBackend(t, open)

	_, err := get(t, backend, scopeA, "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)

	const n = 500
	batch := storage.NewBatch()
	for i := 0; i < n; i++ {
		batch.Insert(scopeA, []byte(fmt.Sprintf("key-%d", i)), []byte(fmt.Sprintf("value-%d", i)))
	}
	require.NoError(t, backend.Write(batch))

	snap, err := backend.Snapshot(scopeA)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		v, err := snap.Get(scopeA, []byte(fmt.Sprintf("key-%d", i)))
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("value-%d", i), string(v))
	}
	snap.Release()

	require.NoError(t, backend.Write(storage.NewBatch().
		Insert(scopeA, []byte("key-1"), []byte("changed")).
		Remove(scopeA, []byte("key-2"))))

	v, err := get(t, backend, scopeA, "key-1")
	require.NoError(t, err)
	require.Equal(t, "changed", string(v))

	_, err = get(t, backend, scopeA, "key-2")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestScopesAreIsolated checks that equal keys in different scopes do not collide.
func TestScopesAreIsolated(t *testing.T, open Opener) {
	backend := openBackend(t, open)

	require.NoError(t, backend.Write(storage.NewBatch().
		Insert(scopeA, []byte("k"), []byte("a")).
		Insert(scopeB, []byte("k"), []byte("b"))))

	snap, err := backend.Snapshot(scopeA, scopeB)
	require.NoError(t, err)
	defer snap.Release()

	a, err := snap.Get(scopeA, []byte("k"))
	require.NoError(t, err)
	require.Equal(t, "a", string(a))

	b, err := snap.Get(scopeB, []byte("k"))
	require.NoError(t, err)
	require.Equal(t, "b", string(b))
}

// TestSnapshotIsolation checks that a snapshot is unaffected by later commits.
func TestSnapshotIsolation(t *testing.T, open Opener) {
	backend := openBackend(t, open)

	require.NoError(t, backend.Write(storage.NewBatch().Insert(scopeA, []byte("k"), []byte("before"))))

	snap, err := backend.Snapshot(scopeA)
	require.NoError(t, err)
	defer snap.Release()

	require.NoError(t, backend.Write(storage.NewBatch().
		Insert(scopeA, []byte("k"), []byte("after")).
		Insert(scopeA, []byte("new"), []byte("value"))))

	v, err := snap.Get(scopeA, []byte("k"))
	require.NoError(t, err)
	require.Equal(t, "before", string(v))

	_, err = snap.Get(scopeA, []byte("new"))
	require.ErrorIs(t, err, storage.ErrNotFound)

	v, err = get(t, backend, scopeA, "k")
	require.NoError(t, err)
	require.Equal(t, "after", string(v))
}

// TestSnapshotScopeRestriction checks reads outside the opened scopes fail.
func TestSnapshotScopeRestriction(t *testing.T, open Opener) {
	backend := openBackend(t, open)

	require.NoError(t, backend.Write(storage.NewBatch().Insert(scopeB, []byte("k"), []byte("v"))))

	snap, err := backend.Snapshot(scopeA)
	require.NoError(t, err)
	defer snap.Release()

	_, err = snap.Get(scopeB, []byte("k"))
	require.ErrorIs(t, err, storage.ErrScopeNotInSnapshot)

	_, err = backend.Snapshot("")
	require.Error(t, err)
}

// TestInvalidBatchIsNotApplied checks a rejected batch leaves no partial writes.
func TestInvalidBatchIsNotApplied(t *testing.T, open Opener) {
	backend := openBackend(t, open)

	batch := storage.NewBatch().
		Insert(scopeA, []byte("first"), []byte("v")).
		Insert(scopeA, nil, []byte("no key")).
		Insert(scopeA, []byte("last"), []byte("v"))

	err := backend.Write(batch)
	require.ErrorIs(t, err, storage.ErrInvalidBatch)

	for _, key := range []string{"first", "last"} {
		_, err := get(t, backend, scopeA, key)
		require.Truef(t, errors.Is(err, storage.ErrNotFound), "%s should not exist, got %v", key, err)
	}
}

// TestConcurrentReadersSeeWholeBatches writes pairs of keys in one batch while readers
// verify that both keys always carry the same generation.
func TestConcurrentReadersSeeWholeBatches(t *testing.T, open Opener) {
	backend := openBackend(t, open)

	const generations = 200
	encode := func(i uint64) []byte {
		return binary.BigEndian.AppendUint64(nil, i)
	}
	require.NoError(t, backend.Write(storage.NewBatch().
		Insert(scopeA, []byte("left"), encode(0)).
		Insert(scopeB, []byte("right"), encode(0))))

	done := make(chan struct{})
	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				if err := checkPair(backend); err != nil {
					errs <- err
					return
				}
			}
		}()
	}

	for i := uint64(1); i <= generations; i++ {
		require.NoError(t, backend.Write(storage.NewBatch().
			Insert(scopeA, []byte("left"), encode(i)).
			Insert(scopeB, []byte("right"), encode(i))))
	}
	close(done)
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func checkPair(backend storage.Backend) error {
	snap, err := backend.Snapshot(scopeA, scopeB)
	if err != nil {
		return err
	}
	defer snap.Release()

	left, err := snap.Get(scopeA, []byte("left"))
	if err != nil {
		return err
	}
	right, err := snap.Get(scopeB, []byte("right"))
	if err != nil {
		return err
	}
	if string(left) != string(right) {
		return fmt.Errorf("torn read: left=%x right=%x", left, right)
	}
	return nil
}
