// Package record defines the synthetic catalog entry used by the serialization benchmark.
//
// A Record carries identity, free text, monetary and physical measurements, two closed
// enumerations (Category and Currency) and two timestamps. The same in-memory value is
// consumed by both the text and the binary encoders in the encoding package, so the
// exported fields double as the serialization schema:
//
//   - JSON field names are fixed by struct tags (snake_case).
//   - Category and Currency implement encoding.TextMarshaler and serialize as their names.
//   - The binary encoder reads the same fields positionally.
//
// A Set is a plain slice. Once generated it is treated as read-only: the benchmark shares
// it by reference between concurrent requests and no code path mutates it.
package record
