package model

import "time"

// OriginID is the id of the first sealed pre-block.
const OriginID uint64 = 0

// PreBlockMetadata carries sealing details. Storage and transport treat it as an opaque blob.
type PreBlockMetadata struct {
	Author    uint64
	Timestamp time.Time
}

// Equal compares metadata at the precision it is encoded with.
func (m PreBlockMetadata) Equal(other PreBlockMetadata) bool {
	return m.Author == other.Author && m.Timestamp.UnixMilli() == other.Timestamp.UnixMilli()
}

// PreBlockHeader identifies a sealed pre-block.
type PreBlockHeader struct {
	ID       uint64
	Metadata PreBlockMetadata
}

// Equal reports whether both headers describe the same pre-block.
func (h PreBlockHeader) Equal(other PreBlockHeader) bool {
	return h.ID == other.ID && h.Metadata.Equal(other.Metadata)
}

// PreBlock is a sealed batch of transactions in submission order.
type PreBlock struct {
	Header       PreBlockHeader
	Transactions []Transaction
}

// Size returns the sum of the transaction payload sizes.
func (b PreBlock) Size() int {
	total := 0
	for _, tx := range b.Transactions {
		total += tx.Size()
	}
	return total
}

// Equal compares headers and transactions field by field.
func (b PreBlock) Equal(other PreBlock) bool {
	if !b.Header.Equal(other.Header) || len(b.Transactions) != len(other.Transactions) {
		return false
	}
	for i := range b.Transactions {
		if !b.Transactions[i].Equal(other.Transactions[i]) {
			return false
		}
	}
	return true
}
