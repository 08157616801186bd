package format

import (
	"errors"
	"fmt"
	"strings"
)

type (
	EncodingType    uint8
	CompressionType uint8
)

const (
	TypeText   EncodingType = 0x1 // TypeText represents the self-describing JSON encoding.
	TypeBinary EncodingType = 0x2 // TypeBinary represents the compact schema-aware binary encoding.

	CompressionGzip   CompressionType = 0x1 // CompressionGzip represents gzip (DEFLATE + CRC32) compression.
	CompressionBrotli CompressionType = 0x2 // CompressionBrotli represents high-quality, large-window Brotli compression.
	CompressionZstd   CompressionType = 0x3 // CompressionZstd represents Zstandard compression.
	CompressionLZ4    CompressionType = 0x4 // CompressionLZ4 represents LZ4 frame compression.
	CompressionS2     CompressionType = 0x5 // CompressionS2 represents S2 compression.
)

// Content types reported for each encoding.
const (
	ContentTypeText   = "application/json"
	ContentTypeBinary = "application/octet-stream"
)

var (
	// ErrUnknownEncoding is returned when an encoding name or value is not recognized.
	ErrUnknownEncoding = errors.New("unknown encoding")
	// ErrUnknownCompression is returned when a compression name or value is not recognized.
	ErrUnknownCompression = errors.New("unknown compression")
)

// Encodings lists every supported encoding in dispatch order.
var Encodings = []EncodingType{TypeText, TypeBinary}

// Compressions lists every supported compression in dispatch order.
var Compressions = []CompressionType{
	CompressionGzip,
	CompressionBrotli,
	CompressionZstd,
	CompressionLZ4,
	CompressionS2,
}

func (e EncodingType) String() string {
	switch e {
	case TypeText:
		return "Text"
	case TypeBinary:
		return "Binary"
	default:
		return "Unknown"
	}
}

// ContentType returns the media type of payloads produced by the encoding.
func (e EncodingType) ContentType() string {
	switch e {
	case TypeText:
		return ContentTypeText
	case TypeBinary:
		return ContentTypeBinary
	default:
		return ContentTypeBinary
	}
}

// IsValid reports whether e is a member of the closed encoding set.
func (e EncodingType) IsValid() bool {
	return e == TypeText || e == TypeBinary
}

// ParseEncoding maps a request token to an EncodingType.
// "json" is accepted as an alias of "text".
func ParseEncoding(name string) (EncodingType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text", "json":
		return TypeText, nil
	case "binary", "bin":
		return TypeBinary, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionGzip:
		return "Gzip"
	case CompressionBrotli:
		return "Brotli"
	case CompressionZstd:
		return "Zstd"
	case CompressionLZ4:
		return "LZ4"
	case CompressionS2:
		return "S2"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is a member of the closed compression set.
func (c CompressionType) IsValid() bool {
	return c >= CompressionGzip && c <= CompressionS2
}

// ParseCompression maps a configuration name to a CompressionType.
func ParseCompression(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gzip", "gz":
		return CompressionGzip, nil
	case "brotli", "br":
		return CompressionBrotli, nil
	case "zstd", "zstandard":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	case "s2":
		return CompressionS2, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
}

// ParseCompressions parses a list of compression names, rejecting duplicates.
func ParseCompressions(names []string) ([]CompressionType, error) {
	out := make([]CompressionType, 0, len(names))
	seen := make(map[CompressionType]struct{}, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		c, err := ParseCompression(name)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("duplicate compression: %s", c)
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}

	return out, nil
}
