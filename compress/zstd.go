package compress

// ZstdLevel is the Zstandard level used by both builds, matching zstd.SpeedDefault.
const ZstdLevel = 3

// ZstdCompressor is the balanced codec: Zstandard at its default level with no further
// tuning.
//
// The pure Go implementation from klauspost/compress is used by default. Building with
// the gozstd tag switches to the cgo binding of the reference C library.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
