// Package model defines domain models for pre-block sequencing.
package model

import (
	"bytes"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Transaction is an opaque payload submitted for ordering.
type Transaction struct {
	data []byte
}

// NewTransaction copies data into a new Transaction.
func NewTransaction(data []byte) Transaction {
	cp := make([]byte, len(data))
	copy(cp, data)
	return Transaction{data: cp}
}

// Bytes returns a copy of the payload.
func (t Transaction) Bytes() []byte {
	cp := make([]byte, len(t.data))
	copy(cp, t.data)
	return cp
}

// Size returns the payload length in bytes.
func (t Transaction) Size() int {
	return len(t.data)
}

// Hash returns the double-SHA256 digest of the payload.
func (t Transaction) Hash() chainhash.Hash {
	return chainhash.DoubleHashH(t.data)
}

// Equal reports whether both transactions carry the same payload.
func (t Transaction) Equal(other Transaction) bool {
	return bytes.Equal(t.data, other.data)
}
