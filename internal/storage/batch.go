package storage

import "fmt"

// Operation is a single insert or remove inside a WriteBatch.
type Operation struct {
	Scope  Scope
	Key    []byte
	Value  []byte
	Remove bool
}

// WriteBatch accumulates operations that a Backend applies atomically.
// It has no effect until passed to Backend.Write.
type WriteBatch struct {
	ops []Operation
	err error
}

// NewBatch returns an empty WriteBatch.
func NewBatch() *WriteBatch {
	return &WriteBatch{}
}

// Insert records a put of value under key in scope. Key and value are copied.
func (b *WriteBatch) Insert(scope Scope, key, value []byte) *WriteBatch {
	b.add(Operation{Scope: scope, Key: clone(key), Value: clone(value)})
	return b
}

// Remove records a delete of key in scope.
func (b *WriteBatch) Remove(scope Scope, key []byte) *WriteBatch {
	b.add(Operation{Scope: scope, Key: clone(key), Remove: true})
	return b
}

// Len returns the number of recorded operations.
func (b *WriteBatch) Len() int {
	return len(b.ops)
}

// Operations returns the recorded operations in insertion order.
func (b *WriteBatch) Operations() []Operation {
	return b.ops
}

// Validate reports the first malformed operation recorded in the batch.
func (b *WriteBatch) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil batch", ErrInvalidBatch)
	}
	return b.err
}

func (b *WriteBatch) add(op Operation) {
	if b.err == nil {
		if err := op.Scope.Validate(); err != nil {
			b.err = fmt.Errorf("%w: operation %d: %v", ErrInvalidBatch, len(b.ops), err)
		} else if len(op.Key) == 0 {
			b.err = fmt.Errorf("%w: operation %d: empty key", ErrInvalidBatch, len(b.ops))
		}
	}
	b.ops = append(b.ops, op)
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}
