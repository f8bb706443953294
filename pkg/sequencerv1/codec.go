package sequencerv1

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype the service is served under.
const CodecName = "sequencer"

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec marshals Message values with the protobuf wire format.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("sequencerv1: cannot marshal %T", v)
	}
	return m.AppendWire(nil), nil
}

func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("sequencerv1: cannot unmarshal into %T", v)
	}
	return m.UnmarshalWire(data)
}

func (Codec) Name() string {
	return CodecName
}
