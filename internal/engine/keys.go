package engine

import (
	"encoding/binary"

	"github.com/goodnatureofminers/dsn-sequencer/internal/storage"
)

const (
	// ScopePreBlocks maps big-endian ids to encoded pre-blocks.
	ScopePreBlocks storage.Scope = "pre_blocks"
	// ScopeMeta holds the head pointer.
	ScopeMeta storage.Scope = "meta"
)

var headKey = []byte("head")

// PreBlockKey returns the storage key of the pre-block with the given id.
func PreBlockKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}
