package pool

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "new buffer should have zero length")
	assert.Equal(t, 1024, bb.Cap(), "new buffer should have specified capacity")
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(64)

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	bb.MustWrite([]byte(" world"))
	assert.Equal(t, []byte("hello world"), bb.Bytes())

	capBefore := bb.Cap()
	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, capBefore, bb.Cap(), "Reset should preserve capacity")
}

func TestByteBuffer_Clone(t *testing.T) {
	bb := NewByteBuffer(64)
	require.Nil(t, bb.Clone(), "empty buffer clones to nil")

	bb.MustWrite([]byte("payload"))
	out := bb.Clone()
	require.Equal(t, []byte("payload"), out)

	bb.Reset()
	bb.MustWrite([]byte("XXXXXXX"))
	require.Equal(t, []byte("payload"), out, "clone must not alias the buffer")
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(64)
	bb.MustWrite([]byte("test data"))

	var buf bytes.Buffer
	n, err := bb.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
	assert.Equal(t, "test data", buf.String())

	_, err = bb.WriteTo(&errorWriter{err: io.ErrShortWrite})
	require.ErrorIs(t, err, io.ErrShortWrite)
}

// =============================================================================
// ByteBuffer Grow Tests
// =============================================================================

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(smallBufferGrowthIncrement)
		bb.Grow(100)
		assert.Equal(t, smallBufferGrowthIncrement, bb.Cap())
	})

	t.Run("small buffer grows by increment", func(t *testing.T) {
		bb := NewByteBuffer(1024)
		bb.MustWrite(make([]byte, 1024))
		bb.Grow(1)
		assert.Equal(t, 1024+smallBufferGrowthIncrement, bb.Cap())
		assert.Equal(t, 1024, bb.Len(), "length should not change")
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := largeBufferGrowthThreshold * 2
		bb := NewByteBuffer(size)
		bb.MustWrite(make([]byte, size))
		bb.Grow(1)
		assert.Equal(t, size+size/4, bb.Cap())
	})

	t.Run("huge request", func(t *testing.T) {
		bb := NewByteBuffer(16)
		bb.MustWrite([]byte("keep me"))
		bb.Grow(1 << 20)
		assert.GreaterOrEqual(t, bb.Cap(), 7+(1<<20))
		assert.Equal(t, []byte("keep me"), bb.Bytes(), "data should be preserved after growth")
	})
}

// =============================================================================
// Pool Tests
// =============================================================================

func TestEncodeAndCompressPools(t *testing.T) {
	enc := GetEncodeBuffer()
	require.NotNil(t, enc)
	assert.Equal(t, 0, enc.Len())
	assert.GreaterOrEqual(t, enc.Cap(), EncodeBufferDefaultSize)
	enc.MustWrite([]byte("data"))
	PutEncodeBuffer(enc)
	assert.Equal(t, 0, enc.Len(), "Put should reset the buffer")

	cmp := GetCompressBuffer()
	require.NotNil(t, cmp)
	assert.GreaterOrEqual(t, cmp.Cap(), CompressBufferDefaultSize)
	PutCompressBuffer(cmp)

	assert.NotPanics(t, func() {
		PutEncodeBuffer(nil)
		PutCompressBuffer(nil)
	})
}

func TestPool_DropsOversizedBuffers(t *testing.T) {
	p := NewByteBufferPool(8, 16)

	big := NewByteBuffer(64)
	big.MustWrite([]byte("oversized"))
	p.Put(big)
	assert.Equal(t, 9, big.Len(), "oversized buffer is not reset or retained")

	got := p.Get()
	assert.Equal(t, 8, got.Cap())
}

func TestPool_ConcurrentAccess(t *testing.T) {
	const numGoroutines = 32
	const numIterations = 200

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for range numGoroutines {
		go func() {
			defer wg.Done()
			for range numIterations {
				bb := GetCompressBuffer()
				bb.MustWrite([]byte("data"))
				assert.Equal(t, 4, bb.Len())
				PutCompressBuffer(bb)
			}
		}()
	}

	wg.Wait()
}

type errorWriter struct {
	err error
}

func (w *errorWriter) Write([]byte) (int, error) {
	return 0, w.err
}
