package compress

import (
	"fmt"

	"github.com/arloliu/serbench/format"
)

// Compressor converts a byte sequence into a complete, self-framed compressed payload.
//
// Implementations must:
//   - return a zero-length result and no error for zero-length input
//   - produce identical output for identical input
//   - be safe for concurrent use
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
//   - Internal encoders and buffers may be reused through pools
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
//
// It returns an error if the data is corrupted or was produced by a different algorithm.
// Zero-length input yields a zero-length result.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// Named pairs a codec with the compression type it is reported under.
type Named struct {
	Type  format.CompressionType
	Codec Codec
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (Gzip, Brotli, Zstd, LZ4 or S2)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Compressor instance for the specified type
//   - error: wraps format.ErrUnknownCompression for an invalid type
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionGzip:
		return NewGzipCompressor(), nil
	case format.CompressionBrotli:
		return NewBrotliCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %w: %s", target, format.ErrUnknownCompression, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionGzip:   NewGzipCompressor(),
	format.CompressionBrotli: NewBrotliCompressor(),
	format.CompressionZstd:   NewZstdCompressor(),
	format.CompressionLZ4:    NewLZ4Compressor(),
	format.CompressionS2:     NewS2Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %w: %s", format.ErrUnknownCompression, compressionType)
}

// DefaultTypes is the compression suite measured when none is configured: one streaming
// general-purpose codec, one high-ratio large-window codec and one balanced codec.
var DefaultTypes = []format.CompressionType{
	format.CompressionGzip,
	format.CompressionBrotli,
	format.CompressionZstd,
}

// Suite returns the built-in codecs for the given types, in order.
func Suite(types ...format.CompressionType) ([]Named, error) {
	suite := make([]Named, 0, len(types))
	for _, t := range types {
		codec, err := GetCodec(t)
		if err != nil {
			return nil, err
		}
		suite = append(suite, Named{Type: t, Codec: codec})
	}

	return suite, nil
}

// DefaultSuite returns the gzip, brotli and zstd codecs.
func DefaultSuite() []Named {
	suite, _ := Suite(DefaultTypes...)
	return suite
}
