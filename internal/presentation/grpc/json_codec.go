package grpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the content subtype TradeInService clients dial with
// ("application/grpc+json"). Messages are the JSON-tagged DTOs, so a payload
// on the wire matches the REST body for the same operation.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(dtoCodec{})
}

type dtoCodec struct{}

func (dtoCodec) Marshal(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return b, nil
}

func (dtoCodec) Unmarshal(data []byte, v interface{}) error {
	if len(data) == 0 {
		// Empty frames are valid for requests with no fields set.
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}
	return nil
}

func (dtoCodec) Name() string {
	return CodecName
}
