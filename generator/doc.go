// Package generator produces the synthetic record set measured by the benchmark.
//
// Generate returns exactly RecordCount records. Every numeric and timestamp field is
// an independent uniform draw from its bounded domain:
//
//	weight, length, width, height   [1.0, 10.0)
//	rating                          [1.0, 5.0)
//	stock quantity                  [1, 100)
//	sku                             "SKU" + [10000, 99999)
//	category, currency              uniform over the closed enumeration
//
// Names, brands, manufacturers and descriptions come from gofakeit's word corpora.
// Identifiers are version 4 UUIDs drawn from the same random source.
//
// By default the random source is seeded from crypto/rand, so two calls yield different
// sets. WithSeed makes the generated values reproducible (timestamps still come from
// the clock; use WithClock to pin them).
package generator
