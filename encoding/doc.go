// Package encoding converts a record.Set into a byte payload.
//
// Two encoders are provided, selected through format.EncodingType:
//
//   - JSONEncoder (format.TypeText): a self-describing JSON array. Field names are kept,
//     enums are written as their names and timestamps as RFC 3339.
//   - BinaryEncoder (format.TypeBinary): a compact schema-aware layout with no field names.
//
// # Binary Layout
//
// A non-empty set is written as uvarint(count) followed by the records back to back:
//
//	id            16 bytes, raw UUID
//	name          uvarint length + bytes
//	brand         uvarint length + bytes
//	sku           uvarint length + bytes
//	description   uvarint length + bytes
//	price         8 bytes, IEEE 754
//	weight        8 bytes, IEEE 754
//	length        8 bytes, IEEE 754
//	width         8 bytes, IEEE 754
//	height        8 bytes, IEEE 754
//	rating        8 bytes, IEEE 754
//	stock         uvarint
//	category      1 byte
//	created_at    zigzag varint, unix nanoseconds
//	updated_at    zigzag varint, unix nanoseconds
//	currency      1 byte
//	manufacturer  uvarint length + bytes
//
// Fixed-width values use the endian engine the encoder was built with (little-endian by
// default). BinaryDecoder reverses the layout and is used to verify that payloads are
// self-consistent.
//
// An empty set encodes to a zero-length payload under both encoders.
//
// # Thread Safety
//
// Encoders hold no per-call state and are safe for concurrent use. They never modify the
// record set they are given.
package encoding
