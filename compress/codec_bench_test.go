package compress

import (
	"fmt"
	"testing"
)

// BenchmarkAllCodecs_Compress benchmarks compression of catalog-like text for all codecs
func BenchmarkAllCodecs_Compress(b *testing.B) {
	for _, records := range []int{10, 100, 1000} {
		data := catalogText(records)

		for codecName, codec := range getAllCodecs() {
			b.Run(fmt.Sprintf("%s/%d_records", codecName, records), func(b *testing.B) {
				compressed, err := codec.Compress(data)
				if err != nil {
					b.Fatal(err)
				}

				b.ReportAllocs()
				b.SetBytes(int64(len(data)))
				b.ResetTimer()

				for b.Loop() {
					if _, err := codec.Compress(data); err != nil {
						b.Fatal(err)
					}
				}

				b.ReportMetric(float64(len(compressed))/float64(len(data))*100, "%ratio")
			})
		}
	}
}

// BenchmarkAllCodecs_Decompress benchmarks decompression for all codecs
func BenchmarkAllCodecs_Decompress(b *testing.B) {
	data := catalogText(1000)

	for codecName, codec := range getAllCodecs() {
		b.Run(codecName, func(b *testing.B) {
			compressed, err := codec.Compress(data)
			if err != nil {
				b.Fatal(err)
			}

			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			b.ResetTimer()

			for b.Loop() {
				if _, err := codec.Decompress(compressed); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkAllCodecs_Parallel benchmarks concurrent compression, the way the measurement
// pipeline runs its suite.
func BenchmarkAllCodecs_Parallel(b *testing.B) {
	data := catalogText(1000)

	for codecName, codec := range getAllCodecs() {
		b.Run(codecName, func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					if _, err := codec.Compress(data); err != nil {
						b.Error(err)
						return
					}
				}
			})
		})
	}
}
