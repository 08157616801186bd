package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/arloliu/serbench/internal/pool"
)

// gzipWriterPool pools gzip writers; Reset rebinds them to a new destination.
var gzipWriterPool = sync.Pool{
	New: func() any {
		w, err := gzip.NewWriterLevel(nil, gzip.DefaultCompression)
		if err != nil {
			panic(fmt.Sprintf("failed to create gzip writer for pool: %v", err))
		}

		return w
	},
}

// GzipCompressor produces single-member gzip streams (DEFLATE with a CRC32 trailer) at
// the default compression level.
//
// The header carries no name, comment or modification time, so output depends only on
// the input.
type GzipCompressor struct{}

var _ Codec = (*GzipCompressor)(nil)

// NewGzipCompressor creates a new gzip compressor.
func NewGzipCompressor() GzipCompressor {
	return GzipCompressor{}
}

// Compress compresses the input data using gzip.
func (c GzipCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bb := pool.GetCompressBuffer()
	defer pool.PutCompressBuffer(bb)

	w, _ := gzipWriterPool.Get().(*gzip.Writer)
	defer gzipWriterPool.Put(w)
	w.Reset(bb)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}

	return bb.Clone(), nil
}

// Decompress decompresses gzip data.
func (c GzipCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip decompression failed: %w", err)
	}
	defer r.Close()

	return readAll(r, len(data), "gzip")
}

// readAll drains a decompressing reader into a pooled buffer and returns a copy.
func readAll(r io.Reader, sizeHint int, algorithm string) ([]byte, error) {
	bb := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(bb)

	bb.Grow(sizeHint * 4)
	if _, err := io.Copy(bb, r); err != nil {
		return nil, fmt.Errorf("%s decompression failed: %w", algorithm, err)
	}

	return bb.Clone(), nil
}
