package encoding

import (
	"fmt"

	"github.com/arloliu/serbench/format"
	"github.com/arloliu/serbench/record"
)

// Encoder converts a record set to bytes.
//
// The returned slice is newly allocated and owned by the caller. An empty set yields a
// zero-length result and no error.
type Encoder interface {
	Encode(set record.Set) ([]byte, error)
}

// Decoder reverses an Encoder.
type Decoder interface {
	Decode(data []byte) (record.Set, error)
}

// CreateEncoder is a factory function that creates an Encoder for the given encoding type.
func CreateEncoder(encodingType format.EncodingType) (Encoder, error) {
	switch encodingType {
	case format.TypeText:
		return NewJSONEncoder(), nil
	case format.TypeBinary:
		return NewBinaryEncoder(), nil
	default:
		return nil, fmt.Errorf("%w: %s", format.ErrUnknownEncoding, encodingType)
	}
}

// CreateDecoder is a factory function that creates a Decoder for the given encoding type.
func CreateDecoder(encodingType format.EncodingType) (Decoder, error) {
	switch encodingType {
	case format.TypeText:
		return NewJSONDecoder(), nil
	case format.TypeBinary:
		return NewBinaryDecoder(), nil
	default:
		return nil, fmt.Errorf("%w: %s", format.ErrUnknownEncoding, encodingType)
	}
}
