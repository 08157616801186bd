package compress

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/andybalholm/brotli"

	"github.com/arloliu/serbench/internal/pool"
)

const (
	// BrotliQuality is one step below brotli.BestCompression.
	BrotliQuality = 10
	// BrotliWindowBits is the base-2 log of the sliding window (16MiB).
	BrotliWindowBits = 24
)

var brotliWriterPool = sync.Pool{
	New: func() any {
		return brotli.NewWriterOptions(nil, brotli.WriterOptions{
			Quality: BrotliQuality,
			LGWin:   BrotliWindowBits,
		})
	},
}

// BrotliCompressor is the high-ratio codec: near-maximum quality with a large window,
// trading compression speed for size.
type BrotliCompressor struct{}

var _ Codec = (*BrotliCompressor)(nil)

// NewBrotliCompressor creates a new Brotli compressor.
func NewBrotliCompressor() BrotliCompressor {
	return BrotliCompressor{}
}

// Compress compresses the input data using Brotli.
func (c BrotliCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bb := pool.GetCompressBuffer()
	defer pool.PutCompressBuffer(bb)

	w, _ := brotliWriterPool.Get().(*brotli.Writer)
	defer brotliWriterPool.Put(w)
	w.Reset(bb)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("brotli compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("brotli compression failed: %w", err)
	}

	return bb.Clone(), nil
}

// Decompress decompresses Brotli data. A stream that ends before its last meta-block
// fails with io.ErrUnexpectedEOF.
func (c BrotliCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return readAll(brotli.NewReader(bytes.NewReader(data)), len(data), "brotli")
}
