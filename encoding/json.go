package encoding

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/arloliu/serbench/record"
)

// JSONEncoder encodes a record set as a JSON array.
//
// It uses sonic's standard-library compatible configuration, so output matches what
// encoding/json would produce for the same value (sorted map keys, HTML escaping).
type JSONEncoder struct {
	api sonic.API
}

var _ Encoder = (*JSONEncoder)(nil)

// NewJSONEncoder creates a JSON encoder.
func NewJSONEncoder() *JSONEncoder {
	return &JSONEncoder{api: sonic.ConfigStd}
}

// Encode implements Encoder.
func (e *JSONEncoder) Encode(set record.Set) ([]byte, error) {
	if len(set) == 0 {
		return nil, nil
	}

	data, err := e.api.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("json encode %d records: %w", len(set), err)
	}

	return data, nil
}

// JSONDecoder decodes payloads produced by JSONEncoder.
type JSONDecoder struct {
	api sonic.API
}

var _ Decoder = (*JSONDecoder)(nil)

// NewJSONDecoder creates a JSON decoder.
func NewJSONDecoder() *JSONDecoder {
	return &JSONDecoder{api: sonic.ConfigStd}
}

// Decode implements Decoder. A zero-length payload decodes to an empty set.
func (d *JSONDecoder) Decode(data []byte) (record.Set, error) {
	if len(data) == 0 {
		return record.Set{}, nil
	}

	var set record.Set
	if err := d.api.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return set, nil
}
