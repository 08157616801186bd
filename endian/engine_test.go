package endian

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngines(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())
}

func TestFloat64_RoundTrip(t *testing.T) {
	values := []float64{0, 1, -1, 3.14159, 9.999999999, math.MaxFloat64, math.SmallestNonzeroFloat64, math.Inf(-1)}

	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		var buf []byte
		for _, v := range values {
			buf = AppendFloat64(engine, buf, v)
		}
		require.Len(t, buf, 8*len(values))

		for i, want := range values {
			require.Equal(t, want, Float64(engine, buf[i*8:]))
		}
	}
}

func TestFloat64_ByteOrder(t *testing.T) {
	le := AppendFloat64(GetLittleEndianEngine(), nil, 1.0)
	be := AppendFloat64(GetBigEndianEngine(), nil, 1.0)

	// 1.0 is 0x3FF0000000000000
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xF0, 0x3F}, le)
	require.Equal(t, []byte{0x3F, 0xF0, 0, 0, 0, 0, 0, 0}, be)
}

func TestFloat64_ShortBuffer(t *testing.T) {
	require.Panics(t, func() {
		Float64(GetLittleEndianEngine(), []byte{1, 2, 3})
	})
}
