package encoding

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/arloliu/serbench/endian"
	"github.com/arloliu/serbench/internal/pool"
	"github.com/arloliu/serbench/record"
)

// ErrMalformed is returned when a payload cannot be decoded.
var ErrMalformed = errors.New("malformed payload")

const (
	uuidSize  = 16
	floatSize = 8

	maxVarintLen = 10

	// minRecordSize is the smallest possible encoded record: fixed-width fields, both
	// enum bytes and one byte for each of the five length prefixes and three varints.
	minRecordSize = uuidSize + 6*floatSize + 2 + 5 + 3

	// estimatedRecordSize is used to pre-grow the encode buffer.
	estimatedRecordSize = 320
)

// BinaryEncoder encodes a record set in the compact binary layout described in the
// package documentation.
type BinaryEncoder struct {
	engine endian.EndianEngine
}

var _ Encoder = (*BinaryEncoder)(nil)

// NewBinaryEncoder creates a binary encoder using little-endian fixed-width fields.
func NewBinaryEncoder() *BinaryEncoder {
	return NewBinaryEncoderWithEngine(endian.GetLittleEndianEngine())
}

// NewBinaryEncoderWithEngine creates a binary encoder using the given byte order.
func NewBinaryEncoderWithEngine(engine endian.EndianEngine) *BinaryEncoder {
	return &BinaryEncoder{engine: engine}
}

// Encode implements Encoder.
func (e *BinaryEncoder) Encode(set record.Set) ([]byte, error) {
	if len(set) == 0 {
		return nil, nil
	}

	bb := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(bb)

	bb.Grow(maxVarintLen + len(set)*estimatedRecordSize)
	bb.B = protowire.AppendVarint(bb.B, uint64(len(set)))
	for i := range set {
		var err error
		if bb.B, err = e.appendRecord(bb.B, &set[i]); err != nil {
			return nil, fmt.Errorf("binary encode record %d: %w", i, err)
		}
	}

	return bb.Clone(), nil
}

func (e *BinaryEncoder) appendRecord(buf []byte, rec *record.Record) ([]byte, error) {
	if !rec.Category.IsValid() {
		return buf, fmt.Errorf("invalid category %d", uint8(rec.Category))
	}
	if !rec.Currency.IsValid() {
		return buf, fmt.Errorf("invalid currency %d", uint8(rec.Currency))
	}

	buf = append(buf, rec.ID[:]...)
	buf = protowire.AppendString(buf, rec.Name)
	buf = protowire.AppendString(buf, rec.Brand)
	buf = protowire.AppendString(buf, rec.SKU)
	buf = protowire.AppendString(buf, rec.Description)
	buf = endian.AppendFloat64(e.engine, buf, rec.Price)
	buf = endian.AppendFloat64(e.engine, buf, rec.Weight)
	buf = endian.AppendFloat64(e.engine, buf, rec.Dimensions.Length)
	buf = endian.AppendFloat64(e.engine, buf, rec.Dimensions.Width)
	buf = endian.AppendFloat64(e.engine, buf, rec.Dimensions.Height)
	buf = endian.AppendFloat64(e.engine, buf, rec.Rating)
	buf = protowire.AppendVarint(buf, uint64(rec.StockQuantity))
	buf = append(buf, byte(rec.Category))
	buf = protowire.AppendVarint(buf, protowire.EncodeZigZag(rec.CreatedAt.UnixNano()))
	buf = protowire.AppendVarint(buf, protowire.EncodeZigZag(rec.UpdatedAt.UnixNano()))
	buf = append(buf, byte(rec.Currency))
	buf = protowire.AppendString(buf, rec.Manufacturer)

	return buf, nil
}

// BinaryDecoder decodes payloads produced by BinaryEncoder.
type BinaryDecoder struct {
	engine endian.EndianEngine
}

var _ Decoder = (*BinaryDecoder)(nil)

// NewBinaryDecoder creates a decoder for little-endian payloads.
func NewBinaryDecoder() *BinaryDecoder {
	return NewBinaryDecoderWithEngine(endian.GetLittleEndianEngine())
}

// NewBinaryDecoderWithEngine creates a decoder for payloads written with the given byte order.
func NewBinaryDecoderWithEngine(engine endian.EndianEngine) *BinaryDecoder {
	return &BinaryDecoder{engine: engine}
}

// Decode implements Decoder. A zero-length payload decodes to an empty set.
// Truncated input, trailing bytes and out-of-range enum values return ErrMalformed.
func (d *BinaryDecoder) Decode(data []byte) (record.Set, error) {
	if len(data) == 0 {
		return record.Set{}, nil
	}

	r := reader{data: data, engine: d.engine}
	count := r.uvarint()
	if r.err != nil {
		return nil, r.err
	}
	if count == 0 || count > uint64(len(data)/minRecordSize) {
		return nil, fmt.Errorf("%w: record count %d does not fit %d bytes", ErrMalformed, count, len(data))
	}

	set := make(record.Set, count)
	for i := range set {
		r.record(&set[i])
		if r.err != nil {
			return nil, fmt.Errorf("record %d: %w", i, r.err)
		}
	}
	if r.off != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformed, len(data)-r.off)
	}

	return set, nil
}

// reader walks a binary payload. The first failure is kept in err and turns every later
// read into a no-op.
type reader struct {
	data   []byte
	off    int
	engine endian.EndianEngine
	err    error
}

func (r *reader) fail(what string) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: bad %s at offset %d", ErrMalformed, what, r.off)
	}
}

func (r *reader) uvarint() uint64 {
	if r.err != nil {
		return 0
	}
	v, n := protowire.ConsumeVarint(r.data[r.off:])
	if n < 0 {
		r.fail("varint")
		return 0
	}
	r.off += n

	return v
}

func (r *reader) varint() int64 {
	return protowire.DecodeZigZag(r.uvarint())
}

func (r *reader) str(field string) string {
	if r.err != nil {
		return ""
	}
	v, n := protowire.ConsumeString(r.data[r.off:])
	if n < 0 {
		r.fail(field)
		return ""
	}
	r.off += n

	return v
}

func (r *reader) fixed(n int, field string) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.data)-r.off < n {
		r.fail(field)
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n

	return b
}

func (r *reader) f64(field string) float64 {
	b := r.fixed(floatSize, field)
	if b == nil {
		return 0
	}

	return endian.Float64(r.engine, b)
}

func (r *reader) record(rec *record.Record) {
	if b := r.fixed(uuidSize, "id"); b != nil {
		rec.ID = uuid.UUID(b)
	}
	rec.Name = r.str("name")
	rec.Brand = r.str("brand")
	rec.SKU = r.str("sku")
	rec.Description = r.str("description")
	rec.Price = r.f64("price")
	rec.Weight = r.f64("weight")
	rec.Dimensions = record.NewDimensions(
		r.f64("length"),
		r.f64("width"),
		r.f64("height"),
	)
	rec.Rating = r.f64("rating")

	stock := r.uvarint()
	if stock > uint64(^uint32(0)) {
		r.fail("stock")
	}
	rec.StockQuantity = uint32(stock) //nolint:gosec

	if b := r.fixed(1, "category"); b != nil {
		rec.Category = record.Category(b[0])
		if !rec.Category.IsValid() {
			r.fail("category")
		}
	}
	rec.CreatedAt = time.Unix(0, r.varint()).UTC()
	rec.UpdatedAt = time.Unix(0, r.varint()).UTC()
	if b := r.fixed(1, "currency"); b != nil {
		rec.Currency = record.Currency(b[0])
		if !rec.Currency.IsValid() {
			r.fail("currency")
		}
	}
	rec.Manufacturer = r.str("manufacturer")
}
