package rpc

import (
	"fmt"

	"github.com/goodnatureofminers/dsn-sequencer/internal/encoding"
	"github.com/goodnatureofminers/dsn-sequencer/internal/model"
	"github.com/goodnatureofminers/dsn-sequencer/pkg/sequencerv1"
)

// TransactionToWire converts a transaction to its wire form.
func TransactionToWire(tx model.Transaction) *sequencerv1.Transaction {
	return &sequencerv1.Transaction{Data: tx.Bytes()}
}

// TransactionFromWire converts a wire transaction. A missing message is an empty payload.
func TransactionFromWire(tx *sequencerv1.Transaction) model.Transaction {
	if tx == nil {
		return model.NewTransaction(nil)
	}
	return model.NewTransaction(tx.Data)
}

// HeaderToWire converts a header, encoding its metadata as an opaque blob.
func HeaderToWire(h model.PreBlockHeader) (*sequencerv1.PreBlockHeader, error) {
	metadata, err := encoding.EncodeMetadata(h.Metadata)
	if err != nil {
		return nil, fmt.Errorf("header %d: %w", h.ID, err)
	}
	return &sequencerv1.PreBlockHeader{ID: h.ID, Metadata: metadata}, nil
}

// HeaderFromWire converts a wire header.
func HeaderFromWire(h *sequencerv1.PreBlockHeader) (model.PreBlockHeader, error) {
	if h == nil {
		return model.PreBlockHeader{}, fmt.Errorf("%w: missing header", encoding.ErrEncoding)
	}
	metadata, err := encoding.DecodeMetadata(h.Metadata)
	if err != nil {
		return model.PreBlockHeader{}, fmt.Errorf("header %d: %w", h.ID, err)
	}
	return model.PreBlockHeader{ID: h.ID, Metadata: metadata}, nil
}

// PreBlockToWire converts a pre-block.
func PreBlockToWire(p model.PreBlock) (*sequencerv1.PreBlock, error) {
	header, err := HeaderToWire(p.Header)
	if err != nil {
		return nil, err
	}
	txs := make([]*sequencerv1.Transaction, 0, len(p.Transactions))
	for _, tx := range p.Transactions {
		txs = append(txs, TransactionToWire(tx))
	}
	return &sequencerv1.PreBlock{Header: header, Transactions: txs}, nil
}

// PreBlockFromWire converts a wire pre-block.
func PreBlockFromWire(p *sequencerv1.PreBlock) (model.PreBlock, error) {
	if p == nil {
		return model.PreBlock{}, fmt.Errorf("%w: missing pre-block", encoding.ErrEncoding)
	}
	header, err := HeaderFromWire(p.Header)
	if err != nil {
		return model.PreBlock{}, err
	}
	txs := make([]model.Transaction, 0, len(p.Transactions))
	for _, tx := range p.Transactions {
		txs = append(txs, TransactionFromWire(tx))
	}
	return model.PreBlock{Header: header, Transactions: txs}, nil
}
