package pool

import (
	"io"
	"sync"
)

// Default sizes of pooled buffers. A 1000-record binary payload is a few hundred KiB
// and the JSON rendition roughly twice that; compressed outputs are much smaller.
const (
	EncodeBufferDefaultSize    = 1024 * 512      // 512KiB
	EncodeBufferMaxThreshold   = 1024 * 1024 * 4 // 4MiB
	CompressBufferDefaultSize  = 1024 * 64       // 64KiB
	CompressBufferMaxThreshold = 1024 * 1024 * 2 // 2MiB

	smallBufferGrowthIncrement = 1024 * 16 // 16KiB
	largeBufferGrowthThreshold = 4 * smallBufferGrowthIncrement
)

// ByteBuffer is an append-only byte slice that can be recycled through a ByteBufferPool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice. It is only valid until the buffer is reset
// or returned to its pool.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Clone returns a copy of the buffer contents that outlives the buffer.
// An empty buffer yields nil.
func (bb *ByteBuffer) Clone() []byte {
	if len(bb.B) == 0 {
		return nil
	}
	out := make([]byte, len(bb.B))
	copy(out, bb.B)

	return out
}

// Reset empties the buffer but keeps its capacity.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer can hold requiredBytes more bytes without reallocating.
//
// Small buffers grow in 16KiB steps, larger ones by 25% of their capacity, and never by
// less than requiredBytes.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := smallBufferGrowthIncrement
	if cap(bb.B) > largeBufferGrowthThreshold {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write implements io.Writer. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo implements io.WriterTo.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool recycles ByteBuffers. Buffers that grew beyond maxThreshold are
// dropped on Put instead of being retained.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose fresh buffers have defaultSize capacity.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	encodeDefaultPool   = NewByteBufferPool(EncodeBufferDefaultSize, EncodeBufferMaxThreshold)
	compressDefaultPool = NewByteBufferPool(CompressBufferDefaultSize, CompressBufferMaxThreshold)
)

// GetEncodeBuffer retrieves a buffer sized for an encoded record set.
func GetEncodeBuffer() *ByteBuffer {
	return encodeDefaultPool.Get()
}

// PutEncodeBuffer returns a buffer obtained from GetEncodeBuffer.
func PutEncodeBuffer(bb *ByteBuffer) {
	encodeDefaultPool.Put(bb)
}

// GetCompressBuffer retrieves a buffer sized for compressed output.
func GetCompressBuffer() *ByteBuffer {
	return compressDefaultPool.Get()
}

// PutCompressBuffer returns a buffer obtained from GetCompressBuffer.
func PutCompressBuffer(bb *ByteBuffer) {
	compressDefaultPool.Put(bb)
}
