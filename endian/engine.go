// Package endian provides the byte order used by the binary record encoding.
//
// EndianEngine merges binary.ByteOrder and binary.AppendByteOrder so the encoder can
// append fixed-width fields straight into its buffer and the decoder can read them back
// through the same value:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = endian.AppendFloat64(engine, buf, rec.Price)
//	price := endian.Float64(engine, buf[off:])
//
// The binary encoder defaults to little-endian. Encoder and decoder must be built with
// the same engine.
package endian

import (
	"encoding/binary"
	"math"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// AppendFloat64 appends the IEEE 754 bits of v to buf.
func AppendFloat64(engine EndianEngine, buf []byte, v float64) []byte {
	return engine.AppendUint64(buf, math.Float64bits(v))
}

// Float64 reads an IEEE 754 value from the first 8 bytes of buf.
// It panics if buf is shorter than 8 bytes, like binary.ByteOrder.Uint64.
func Float64(engine EndianEngine, buf []byte) float64 {
	return math.Float64frombits(engine.Uint64(buf))
}
