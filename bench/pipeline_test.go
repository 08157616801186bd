package bench

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/serbench/compress"
	"github.com/arloliu/serbench/encoding"
	"github.com/arloliu/serbench/format"
	"github.com/arloliu/serbench/generator"
	"github.com/arloliu/serbench/record"
)

type recorder struct {
	mu      sync.Mutex
	samples []Sample
}

func (r *recorder) Record(s Sample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, s)
}

func (r *recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Sample(nil), r.samples...)
}

type failingCodec struct {
	compress.Codec
	err     error
	explode bool
}

func (c failingCodec) Compress([]byte) ([]byte, error) {
	if c.explode {
		panic("codec exploded")
	}

	return nil, c.err
}

type failingEncoder struct{}

func (failingEncoder) Encode(record.Set) ([]byte, error) {
	return nil, errors.New("invariant violated")
}

type panickingEncoder struct{}

func (panickingEncoder) Encode(record.Set) ([]byte, error) {
	panic("encoder exploded")
}

var (
	sharedSetOnce sync.Once
	sharedSet     record.Set
)

func testSet(t *testing.T) record.Set {
	t.Helper()

	sharedSetOnce.Do(func() {
		set, err := generator.Generate(generator.WithSeed(7))
		require.NoError(t, err)
		sharedSet = set
	})
	require.Len(t, sharedSet, generator.RecordCount)

	return sharedSet
}

func TestNewPipeline_Defaults(t *testing.T) {
	p, err := NewPipeline(testSet(t))
	require.NoError(t, err)

	require.Equal(t, generator.RecordCount, p.Len())
	require.Equal(t, compress.DefaultTypes, p.Suite())
	require.True(t, p.parallel)
}

func TestNewPipeline_InvalidOptions(t *testing.T) {
	_, err := NewPipeline(nil, WithClock(nil))
	require.Error(t, err)

	_, err = NewPipeline(nil, WithCompressors(compress.Named{Type: format.CompressionGzip}))
	require.Error(t, err)

	_, err = NewPipeline(nil, WithEncoder(format.EncodingType(9), encoding.NewJSONEncoder()))
	require.ErrorIs(t, err, format.ErrUnknownEncoding)

	_, err = NewPipeline(nil, WithEncoder(format.TypeText, nil))
	require.Error(t, err)
}

func TestRun_TextAndBinary(t *testing.T) {
	set := testSet(t)

	for _, parallel := range []bool{true, false} {
		rec := &recorder{}
		p, err := NewPipeline(set, WithSink(rec), WithParallel(parallel))
		require.NoError(t, err)

		text, err := p.Run(format.TypeText)
		require.NoError(t, err)
		require.Equal(t, format.ContentTypeText, text.ContentType)
		require.Equal(t, format.TypeText, text.Encoding)
		require.NotEmpty(t, text.Payload)

		bin, err := p.Run(format.TypeBinary)
		require.NoError(t, err)
		require.Equal(t, format.ContentTypeBinary, bin.ContentType)
		require.Less(t, len(bin.Payload), len(text.Payload))

		samples := rec.Samples()
		require.Len(t, samples, 8, "1 encode + 3 compression samples per run")

		for run, res := range []Result{text, bin} {
			got := samples[run*4 : run*4+4]
			require.Equal(t, res.Samples, got)

			require.Equal(t, StageEncode, got[0].Stage)
			require.Equal(t, res.Encoding, got[0].Encoding)
			require.Equal(t, len(res.Payload), got[0].OutputSize)
			require.Equal(t, len(set), got[0].Records)
			require.Equal(t, len(res.Payload), res.EncodeSample().OutputSize)

			for i, ct := range compress.DefaultTypes {
				s := got[1+i]
				require.Equal(t, StageCompress, s.Stage)
				require.Equal(t, ct, s.Compression)
				require.Equal(t, res.Encoding, s.Encoding)
				require.True(t, s.OK(), s.Err)
				require.Equal(t, len(res.Payload), s.InputSize)
				require.Positive(t, s.OutputSize)
				require.Less(t, s.OutputSize, s.InputSize)
				require.GreaterOrEqual(t, s.Duration, time.Duration(0))
			}
		}
	}
}

func TestRun_PayloadIsUncompressedEncoding(t *testing.T) {
	set := testSet(t)
	p, err := NewPipeline(set)
	require.NoError(t, err)

	res, err := p.Run(format.TypeBinary)
	require.NoError(t, err)

	want, err := encoding.NewBinaryEncoder().Encode(set)
	require.NoError(t, err)
	require.Equal(t, want, res.Payload)
}

func TestRun_DeterministicSizes(t *testing.T) {
	p, err := NewPipeline(testSet(t))
	require.NoError(t, err)

	first, err := p.Run(format.TypeText)
	require.NoError(t, err)
	second, err := p.Run(format.TypeText)
	require.NoError(t, err)

	require.Equal(t, first.Payload, second.Payload)
	for i := range first.Samples {
		require.Equal(t, first.Samples[i].OutputSize, second.Samples[i].OutputSize)
	}
}

func TestRun_EmptySet(t *testing.T) {
	for _, set := range []record.Set{nil, {}} {
		rec := &recorder{}
		p, err := NewPipeline(set, WithSink(rec))
		require.NoError(t, err)

		for _, encType := range format.Encodings {
			res, err := p.Run(encType)
			require.NoError(t, err)
			require.Empty(t, res.Payload)
			require.Len(t, res.Samples, 4)

			for _, s := range res.Samples {
				require.True(t, s.OK())
				require.Zero(t, s.OutputSize)
				require.Zero(t, s.InputSize)
				require.Zero(t, s.Ratio())
			}
		}
		require.Len(t, rec.Samples(), 8)
	}
}

func TestRun_CompressorFailure(t *testing.T) {
	tests := []struct {
		name  string
		codec failingCodec
	}{
		{"error", failingCodec{err: errors.New("out of memory")}},
		{"panic", failingCodec{explode: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			suite := compress.DefaultSuite()
			suite[1].Codec = tt.codec

			p, err := NewPipeline(testSet(t), WithSink(rec), WithCompressors(suite...))
			require.NoError(t, err)

			res, err := p.Run(format.TypeText)
			require.NoError(t, err)
			require.NotEmpty(t, res.Payload)

			samples := rec.Samples()
			require.Len(t, samples, 4)
			require.True(t, samples[0].OK())

			var ok, unavailable int
			for _, s := range samples[1:] {
				if s.OK() {
					ok++
					continue
				}
				unavailable++
				require.Equal(t, StatusUnavailable, s.Status)
				require.Equal(t, format.CompressionBrotli, s.Compression)
				require.Error(t, s.Err)
				require.Zero(t, s.OutputSize)
			}
			require.Equal(t, 2, ok)
			require.Equal(t, 1, unavailable)
		})
	}
}

func TestRun_EncoderFailure(t *testing.T) {
	tests := []struct {
		name    string
		encoder encoding.Encoder
	}{
		{"error", failingEncoder{}},
		{"panic", panickingEncoder{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			p, err := NewPipeline(testSet(t), WithSink(rec), WithEncoder(format.TypeBinary, tt.encoder))
			require.NoError(t, err)

			res, err := p.Run(format.TypeBinary)
			require.ErrorIs(t, err, ErrEncode)
			require.Nil(t, res.Payload)

			samples := rec.Samples()
			require.Len(t, samples, 1)
			require.Equal(t, StageEncode, samples[0].Stage)
			require.Equal(t, StatusUnavailable, samples[0].Status)

			require.Equal(t, samples, res.Samples)
			require.Equal(t, format.TypeBinary, res.Encoding)
			require.False(t, res.EncodeSample().OK())

			// the other encoding is unaffected
			_, err = p.Run(format.TypeText)
			require.NoError(t, err)
		})
	}
}

func TestRun_UnknownEncoding(t *testing.T) {
	p, err := NewPipeline(testSet(t))
	require.NoError(t, err)

	_, err = p.Run(format.EncodingType(0))
	require.ErrorIs(t, err, format.ErrUnknownEncoding)
	require.NotErrorIs(t, err, ErrEncode)
}

func TestRun_ClockGoingBackwards(t *testing.T) {
	var ticks atomic.Int64
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		// every call is one second earlier than the previous one
		return base.Add(-time.Duration(ticks.Add(1)) * time.Second)
	}

	p, err := NewPipeline(testSet(t), WithClock(clock))
	require.NoError(t, err)

	res, err := p.Run(format.TypeBinary)
	require.NoError(t, err)
	for _, s := range res.Samples {
		require.Zero(t, s.Duration)
	}
}

func TestRun_EmptySuite(t *testing.T) {
	rec := &recorder{}
	p, err := NewPipeline(testSet(t), WithSink(rec), WithCompressors())
	require.NoError(t, err)
	require.Empty(t, p.Suite())

	res, err := p.Run(format.TypeText)
	require.NoError(t, err)
	require.Len(t, res.Samples, 1)
	require.Len(t, rec.Samples(), 1)
}

func TestRun_Concurrent(t *testing.T) {
	set := testSet(t)
	snapshot := set.Clone()

	p, err := NewPipeline(set, WithSink(NopSink))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := p.Run(format.Encodings[i%len(format.Encodings)])
			assert.NoError(t, err)
			assert.NotEmpty(t, res.Payload)
		}()
	}
	wg.Wait()

	require.Equal(t, snapshot, set)
}

func TestSample(t *testing.T) {
	s := Sample{
		Stage:       StageCompress,
		Encoding:    format.TypeBinary,
		Compression: format.CompressionZstd,
		InputSize:   1000,
		OutputSize:  250,
	}
	assert.Equal(t, "binary/zstd", s.Name())
	assert.InDelta(t, 0.25, s.Ratio(), 1e-9)
	assert.InDelta(t, 75.0, s.SpaceSavings(), 1e-9)
	assert.True(t, s.OK())

	s = Sample{Stage: StageEncode, Encoding: format.TypeText}
	assert.Equal(t, "text", s.Name())
	assert.Zero(t, s.Ratio())
	assert.Zero(t, s.SpaceSavings())

	assert.Equal(t, "encode", StageEncode.String())
	assert.Equal(t, "compress", StageCompress.String())
	assert.Equal(t, "unknown", Stage(0).String())
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "unavailable", StatusUnavailable.String())
}

func TestSinkFunc(t *testing.T) {
	var got []Sample
	sink := SinkFunc(func(s Sample) { got = append(got, s) })

	p, err := NewPipeline(record.Set{}, WithSink(sink), WithParallel(false))
	require.NoError(t, err)
	_, err = p.Run(format.TypeText)
	require.NoError(t, err)
	require.Len(t, got, 4)

	p, err = NewPipeline(record.Set{}, WithSink(nil))
	require.NoError(t, err)
	_, err = p.Run(format.TypeText)
	require.NoError(t, err)
}

func BenchmarkPipeline_Run(b *testing.B) {
	set, err := generator.Generate(generator.WithSeed(7))
	require.NoError(b, err)

	for _, parallel := range []bool{false, true} {
		p, err := NewPipeline(set, WithParallel(parallel))
		require.NoError(b, err)

		for _, encType := range format.Encodings {
			name := encType.String()
			if parallel {
				name += "/parallel"
			}
			b.Run(name, func(b *testing.B) {
				b.ReportAllocs()
				for b.Loop() {
					if _, err := p.Run(encType); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
