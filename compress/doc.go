// Package compress provides compression and decompression codecs for encoded catalog payloads.
//
// Compression is measured after encoding: the pipeline compresses each encoded payload with
// every codec in its suite and reports time and size, while the uncompressed payload is what
// the caller receives.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Codecs are selected by format.CompressionType through CreateCodec or GetCodec. The set is
// closed; there is no registry.
//
// # Supported Algorithms
//
// **Gzip** (format.CompressionGzip)
//
//	codec := compress.NewGzipCompressor()
//	compressed, _ := codec.Compress(data)
//
// Single gzip member at gzip.DefaultCompression with a CRC32 trailer. The general-purpose
// streaming codec.
//
// **Brotli** (format.CompressionBrotli)
//
//	codec := compress.NewBrotliCompressor()
//
// Quality BrotliQuality with a 2^BrotliWindowBits byte window. The high-ratio codec; the
// slowest of the default suite by a wide margin.
//
// **Zstandard** (format.CompressionZstd)
//
//	codec := compress.NewZstdCompressor()
//
// Level ZstdLevel, single-threaded so output is deterministic, frame checksum on. The pure Go
// implementation is used unless the module is built with the gozstd tag, which switches to
// the cgo binding of the reference C library.
//
// **LZ4** (format.CompressionLZ4) and **S2** (format.CompressionS2)
//
// Fast codecs outside the default suite. LZ4 writes a frame with a content checksum; S2 writes
// a block with its own length header.
//
// # Default Suite
//
// DefaultSuite returns gzip, brotli and zstd in that order. Suite builds any other ordered
// selection:
//
//	suite, err := compress.Suite(format.CompressionZstd, format.CompressionLZ4)
//
// # Invariants
//
//   - Empty input compresses and decompresses to empty output.
//   - Output is a pure function of the input: the same bytes always compress to the same bytes.
//   - All codecs are safe for concurrent use. Stateful encoders are pooled.
//
// # Examples
//
// See examples/compress_demo for a size comparison across algorithms and encodings.
package compress
