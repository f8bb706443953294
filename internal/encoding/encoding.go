// Package encoding implements the canonical binary encoding of pre-block values.
//
// Values are written in protobuf wire format with fields in ascending order and no
// unknown fields, so equal values always produce identical bytes.
package encoding

import (
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/dsn-sequencer/internal/model"
	"google.golang.org/protobuf/encoding/protowire"
)

// ErrEncoding reports a value that cannot be encoded or decoded.
var ErrEncoding = errors.New("encoding error")

const (
	metadataAuthor    protowire.Number = 1
	metadataTimestamp protowire.Number = 2

	headerID       protowire.Number = 1
	headerMetadata protowire.Number = 2

	preBlockHeader       protowire.Number = 1
	preBlockTransactions protowire.Number = 2
)

// EncodeMetadata returns the canonical encoding of m. A zero Timestamp is
// omitted and decodes back to the zero time.
func EncodeMetadata(m model.PreBlockMetadata) ([]byte, error) {
	var b []byte
	b = protowire.AppendTag(b, metadataAuthor, protowire.VarintType)
	b = protowire.AppendVarint(b, m.Author)
	if !m.Timestamp.IsZero() {
		b = protowire.AppendTag(b, metadataTimestamp, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(m.Timestamp.UnixMilli()))
	}
	return b, nil
}

// DecodeMetadata parses a blob produced by EncodeMetadata.
func DecodeMetadata(b []byte) (model.PreBlockMetadata, error) {
	var m model.PreBlockMetadata
	var sawAuthor bool
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, value []byte) (int, error) {
		switch {
		case num == metadataAuthor && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(value)
			m.Author = v
			sawAuthor = true
			return n, nil
		case num == metadataTimestamp && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(value)
			m.Timestamp = time.UnixMilli(protowire.DecodeZigZag(v)).UTC()
			return n, nil
		default:
			return skip(num, typ, value)
		}
	})
	if err != nil {
		return model.PreBlockMetadata{}, fmt.Errorf("decode metadata: %w", err)
	}
	if !sawAuthor {
		return model.PreBlockMetadata{}, fmt.Errorf("decode metadata: %w: missing author", ErrEncoding)
	}
	return m, nil
}

// EncodeHeader returns the canonical encoding of h.
func EncodeHeader(h model.PreBlockHeader) ([]byte, error) {
	meta, err := EncodeMetadata(h.Metadata)
	if err != nil {
		return nil, err
	}
	var b []byte
	b = protowire.AppendTag(b, headerID, protowire.VarintType)
	b = protowire.AppendVarint(b, h.ID)
	b = protowire.AppendTag(b, headerMetadata, protowire.BytesType)
	b = protowire.AppendBytes(b, meta)
	return b, nil
}

// DecodeHeader parses a blob produced by EncodeHeader.
func DecodeHeader(b []byte) (model.PreBlockHeader, error) {
	var h model.PreBlockHeader
	var meta []byte
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, value []byte) (int, error) {
		switch {
		case num == headerID && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(value)
			h.ID = v
			return n, nil
		case num == headerMetadata && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(value)
			meta = v
			return n, nil
		default:
			return skip(num, typ, value)
		}
	})
	if err != nil {
		return model.PreBlockHeader{}, fmt.Errorf("decode header: %w", err)
	}
	if h.Metadata, err = DecodeMetadata(meta); err != nil {
		return model.PreBlockHeader{}, fmt.Errorf("decode header %d: %w", h.ID, err)
	}
	return h, nil
}

// EncodePreBlock returns the canonical encoding of p.
func EncodePreBlock(p model.PreBlock) ([]byte, error) {
	header, err := EncodeHeader(p.Header)
	if err != nil {
		return nil, err
	}
	b := make([]byte, 0, len(header)+p.Size()+4*len(p.Transactions)+8)
	b = protowire.AppendTag(b, preBlockHeader, protowire.BytesType)
	b = protowire.AppendBytes(b, header)
	for _, tx := range p.Transactions {
		b = protowire.AppendTag(b, preBlockTransactions, protowire.BytesType)
		b = protowire.AppendBytes(b, tx.Bytes())
	}
	return b, nil
}

// DecodePreBlock parses a blob produced by EncodePreBlock.
func DecodePreBlock(b []byte) (model.PreBlock, error) {
	var p model.PreBlock
	var header []byte
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, value []byte) (int, error) {
		switch {
		case num == preBlockHeader && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(value)
			header = v
			return n, nil
		case num == preBlockTransactions && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(value)
			if n >= 0 {
				p.Transactions = append(p.Transactions, model.NewTransaction(v))
			}
			return n, nil
		default:
			return skip(num, typ, value)
		}
	})
	if err != nil {
		return model.PreBlock{}, fmt.Errorf("decode pre-block: %w", err)
	}
	if p.Header, err = DecodeHeader(header); err != nil {
		return model.PreBlock{}, fmt.Errorf("decode pre-block: %w", err)
	}
	return p, nil
}

type fieldFunc func(num protowire.Number, typ protowire.Type, value []byte) (int, error)

func forEachField(b []byte, fn fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrEncoding, protowire.ParseError(n))
		}
		b = b[n:]
		m, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if m < 0 {
			return fmt.Errorf("%w: field %d: %v", ErrEncoding, num, protowire.ParseError(m))
		}
		b = b[m:]
	}
	return nil
}

func skip(num protowire.Number, typ protowire.Type, value []byte) (int, error) {
	return protowire.ConsumeFieldValue(num, typ, value), nil
}
