package compress

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/serbench/internal/pool"
)

// lz4WriterPool pools frame writers. Reset keeps the options applied at creation.
var lz4WriterPool = sync.Pool{
	New: func() any {
		w := lz4.NewWriter(nil)
		if err := w.Apply(
			lz4.BlockSizeOption(lz4.Block256Kb),
			lz4.BlockChecksumOption(false),
			lz4.ChecksumOption(true),
			lz4.ConcurrencyOption(1),
		); err != nil {
			panic(fmt.Sprintf("failed to configure lz4 writer for pool: %v", err))
		}

		return w
	},
}

// LZ4Compressor produces LZ4 frames with a content checksum.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data into a single LZ4 frame.
//
// Returns:
//   - []byte: Compressed data (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bb := pool.GetCompressBuffer()
	defer pool.PutCompressBuffer(bb)

	w, _ := lz4WriterPool.Get().(*lz4.Writer)
	defer lz4WriterPool.Put(w)
	w.Reset(bb)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return bb.Clone(), nil
}

// Decompress decompresses an LZ4 frame, verifying its content checksum.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return readAll(lz4.NewReader(bytes.NewReader(data)), len(data), "lz4")
}
