// Package sequencerv1 is the wire schema of the dsn.sequencer.v1 gRPC service.
//
// Messages follow api/sequencer/v1/sequencer.proto field for field and are
// written with the protobuf wire format directly. Go clients use the codec
// registered under the "sequencer" content subtype; servers force that codec, so
// clients generated from the .proto file work with the default proto subtype.
package sequencerv1

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrMalformed is returned when a message cannot be decoded.
var ErrMalformed = errors.New("sequencerv1: malformed message")

// Message is implemented by every wire type of the service.
type Message interface {
	AppendWire(b []byte) []byte
	UnmarshalWire(b []byte) error
}

// Transaction carries an opaque payload.
type Transaction struct {
	Data []byte
}

func (m *Transaction) AppendWire(b []byte) []byte {
	return appendBytes(b, 1, m.Data)
}

func (m *Transaction) UnmarshalWire(b []byte) error {
	*m = Transaction{}
	return consume(b, func(num protowire.Number, typ protowire.Type, v []byte) int {
		if num == 1 && typ == protowire.BytesType {
			data, n := protowire.ConsumeBytes(v)
			m.Data = append([]byte{}, data...)
			return n
		}
		return protowire.ConsumeFieldValue(num, typ, v)
	})
}

// PreBlockHeader identifies a sealed pre-block. Metadata is an opaque blob.
type PreBlockHeader struct {
	ID       uint64
	Metadata []byte
}

func (m *PreBlockHeader) AppendWire(b []byte) []byte {
	b = appendUint(b, 1, m.ID)
	return appendBytes(b, 2, m.Metadata)
}

func (m *PreBlockHeader) UnmarshalWire(b []byte) error {
	*m = PreBlockHeader{}
	return consume(b, func(num protowire.Number, typ protowire.Type, v []byte) int {
		switch {
		case num == 1 && typ == protowire.VarintType:
			id, n := protowire.ConsumeVarint(v)
			m.ID = id
			return n
		case num == 2 && typ == protowire.BytesType:
			data, n := protowire.ConsumeBytes(v)
			m.Metadata = append([]byte{}, data...)
			return n
		}
		return protowire.ConsumeFieldValue(num, typ, v)
	})
}

// PreBlock is a sealed batch.
type PreBlock struct {
	Header       *PreBlockHeader
	Transactions []*Transaction
}

func (m *PreBlock) AppendWire(b []byte) []byte {
	if m.Header != nil {
		b = appendMessage(b, 1, m.Header)
	}
	for _, tx := range m.Transactions {
		b = appendMessage(b, 2, tx)
	}
	return b
}

func (m *PreBlock) UnmarshalWire(b []byte) error {
	*m = PreBlock{}
	return consumeMessages(b, func(num protowire.Number) Message {
		switch num {
		case 1:
			m.Header = &PreBlockHeader{}
			return m.Header
		case 2:
			tx := &Transaction{}
			m.Transactions = append(m.Transactions, tx)
			return tx
		}
		return nil
	})
}

type SubmitTransactionRequest struct {
	Transaction *Transaction
}

func (m *SubmitTransactionRequest) AppendWire(b []byte) []byte {
	if m.Transaction != nil {
		b = appendMessage(b, 1, m.Transaction)
	}
	return b
}

func (m *SubmitTransactionRequest) UnmarshalWire(b []byte) error {
	*m = SubmitTransactionRequest{}
	return consumeMessages(b, func(num protowire.Number) Message {
		if num == 1 {
			m.Transaction = &Transaction{}
			return m.Transaction
		}
		return nil
	})
}

type SubmitTransactionResponse struct{}

func (m *SubmitTransactionResponse) AppendWire(b []byte) []byte { return b }
func (m *SubmitTransactionResponse) UnmarshalWire(b []byte) error {
	return consume(b, protowire.ConsumeFieldValue)
}

type GetPreBlocksHeadRequest struct{}

func (m *GetPreBlocksHeadRequest) AppendWire(b []byte) []byte { return b }
func (m *GetPreBlocksHeadRequest) UnmarshalWire(b []byte) error {
	return consume(b, protowire.ConsumeFieldValue)
}

type GetPreBlocksHeadResponse struct {
	Header *PreBlockHeader
}

func (m *GetPreBlocksHeadResponse) AppendWire(b []byte) []byte {
	if m.Header != nil {
		b = appendMessage(b, 1, m.Header)
	}
	return b
}

func (m *GetPreBlocksHeadResponse) UnmarshalWire(b []byte) error {
	*m = GetPreBlocksHeadResponse{}
	return consumeMessages(b, func(num protowire.Number) Message {
		if num == 1 {
			m.Header = &PreBlockHeader{}
			return m.Header
		}
		return nil
	})
}

type GetPreBlocksRequest struct {
	FromID   uint64
	MaxCount uint64
}

func (m *GetPreBlocksRequest) AppendWire(b []byte) []byte {
	b = appendUint(b, 1, m.FromID)
	return appendUint(b, 2, m.MaxCount)
}

func (m *GetPreBlocksRequest) UnmarshalWire(b []byte) error {
	*m = GetPreBlocksRequest{}
	return consume(b, func(num protowire.Number, typ protowire.Type, v []byte) int {
		if typ == protowire.VarintType && (num == 1 || num == 2) {
			x, n := protowire.ConsumeVarint(v)
			if num == 1 {
				m.FromID = x
			} else {
				m.MaxCount = x
			}
			return n
		}
		return protowire.ConsumeFieldValue(num, typ, v)
	})
}

type GetPreBlocksResponse struct {
	PreBlocks []*PreBlock
}

func (m *GetPreBlocksResponse) AppendWire(b []byte) []byte {
	for _, p := range m.PreBlocks {
		b = appendMessage(b, 1, p)
	}
	return b
}

func (m *GetPreBlocksResponse) UnmarshalWire(b []byte) error {
	*m = GetPreBlocksResponse{}
	return consumeMessages(b, func(num protowire.Number) Message {
		if num == 1 {
			p := &PreBlock{}
			m.PreBlocks = append(m.PreBlocks, p)
			return p
		}
		return nil
	})
}

type ClearQueueRequest struct{}

func (m *ClearQueueRequest) AppendWire(b []byte) []byte { return b }
func (m *ClearQueueRequest) UnmarshalWire(b []byte) error {
	return consume(b, protowire.ConsumeFieldValue)
}

type ClearQueueResponse struct{}

func (m *ClearQueueResponse) AppendWire(b []byte) []byte { return b }
func (m *ClearQueueResponse) UnmarshalWire(b []byte) error {
	return consume(b, protowire.ConsumeFieldValue)
}

// SubscribePreBlocksRequest opens a header stream. The first streamed header has
// id NextID.
type SubscribePreBlocksRequest struct {
	NextID uint64
}

func (m *SubscribePreBlocksRequest) AppendWire(b []byte) []byte {
	return appendUint(b, 1, m.NextID)
}

func (m *SubscribePreBlocksRequest) UnmarshalWire(b []byte) error {
	*m = SubscribePreBlocksRequest{}
	return consume(b, func(num protowire.Number, typ protowire.Type, v []byte) int {
		if num == 1 && typ == protowire.VarintType {
			x, n := protowire.ConsumeVarint(v)
			m.NextID = x
			return n
		}
		return protowire.ConsumeFieldValue(num, typ, v)
	})
}

// Zero values are omitted, as proto3 does for scalars.
func appendUint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendMessage(b []byte, num protowire.Number, m Message) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.AppendWire(nil))
}

func consume(b []byte, field func(num protowire.Number, typ protowire.Type, v []byte) int) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]
		m := field(num, typ, b)
		if m < 0 {
			return fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(m))
		}
		b = b[m:]
	}
	return nil
}

// consumeMessages decodes embedded message fields into the targets returned by
// target. Fields without a target are skipped.
func consumeMessages(b []byte, target func(num protowire.Number) Message) error {
	var inner error
	err := consume(b, func(num protowire.Number, typ protowire.Type, v []byte) int {
		if typ != protowire.BytesType {
			return protowire.ConsumeFieldValue(num, typ, v)
		}
		m := target(num)
		if m == nil {
			return protowire.ConsumeFieldValue(num, typ, v)
		}
		data, n := protowire.ConsumeBytes(v)
		if n < 0 {
			return n
		}
		if err := m.UnmarshalWire(data); err != nil {
			inner = err
			return -1
		}
		return n
	})
	if inner != nil {
		return inner
	}
	return err
}
