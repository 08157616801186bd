package bench

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/arloliu/serbench/compress"
	"github.com/arloliu/serbench/encoding"
	"github.com/arloliu/serbench/format"
	"github.com/arloliu/serbench/internal/options"
	"github.com/arloliu/serbench/record"
)

// ErrEncode wraps every encoder failure returned by Run.
var ErrEncode = errors.New("encode failed")

// Result is the outcome of one pipeline run.
type Result struct {
	// Payload is the encoded, uncompressed record set.
	Payload     []byte
	ContentType string
	Encoding    format.EncodingType
	// Samples holds the encode sample followed by one sample per codec in suite order.
	Samples []Sample
}

// EncodeSample returns the sample of the encode stage.
func (r Result) EncodeSample() Sample {
	for _, s := range r.Samples {
		if s.Stage == StageEncode {
			return s
		}
	}

	return Sample{}
}

// Pipeline measures encoders and codecs against a fixed record set.
//
// A Pipeline is safe for concurrent use; Run only reads the record set.
type Pipeline struct {
	set      record.Set
	encoders map[format.EncodingType]encoding.Encoder
	suite    []compress.Named
	sink     Sink
	parallel bool
	clock    func() time.Time
}

// Option configures a Pipeline.
type Option = options.Option[*Pipeline]

// WithCompressors replaces the compression suite. An empty suite disables compression
// measurements.
func WithCompressors(suite ...compress.Named) Option {
	return options.New(func(p *Pipeline) error {
		for _, n := range suite {
			if n.Codec == nil {
				return fmt.Errorf("bench: nil codec for %s", n.Type)
			}
		}
		p.suite = append([]compress.Named(nil), suite...)

		return nil
	})
}

// WithSink sets the sink receiving samples. A nil sink discards them.
func WithSink(sink Sink) Option {
	return options.NoError(func(p *Pipeline) {
		if sink == nil {
			sink = NopSink
		}
		p.sink = sink
	})
}

// WithParallel controls whether the codecs of the suite run concurrently. The default is
// concurrent.
func WithParallel(parallel bool) Option {
	return options.NoError(func(p *Pipeline) {
		p.parallel = parallel
	})
}

// WithClock overrides the clock used for stage timing. The default, time.Now, carries a
// monotonic reading. The clock is called from concurrent goroutines.
func WithClock(clock func() time.Time) Option {
	return options.New(func(p *Pipeline) error {
		if clock == nil {
			return fmt.Errorf("bench: nil clock")
		}
		p.clock = clock

		return nil
	})
}

// WithEncoder replaces the encoder used for an encoding type.
func WithEncoder(encodingType format.EncodingType, encoder encoding.Encoder) Option {
	return options.New(func(p *Pipeline) error {
		if !encodingType.IsValid() {
			return fmt.Errorf("bench: %w: %s", format.ErrUnknownEncoding, encodingType)
		}
		if encoder == nil {
			return fmt.Errorf("bench: nil encoder for %s", encodingType)
		}
		p.encoders[encodingType] = encoder

		return nil
	})
}

// NewPipeline creates a pipeline over set. The set is shared, not copied, and must not be
// modified afterwards.
func NewPipeline(set record.Set, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		set:      set,
		encoders: make(map[format.EncodingType]encoding.Encoder, len(format.Encodings)),
		suite:    compress.DefaultSuite(),
		sink:     NopSink,
		parallel: true,
		clock:    time.Now,
	}

	for _, encType := range format.Encodings {
		enc, err := encoding.CreateEncoder(encType)
		if err != nil {
			return nil, err
		}
		p.encoders[encType] = enc
	}

	if err := options.Apply(p, opts...); err != nil {
		return nil, err
	}

	return p, nil
}

// Len returns the number of records the pipeline measures.
func (p *Pipeline) Len() int {
	return p.set.Len()
}

// Suite returns the compression types measured by Run, in order.
func (p *Pipeline) Suite() []format.CompressionType {
	types := make([]format.CompressionType, len(p.suite))
	for i, n := range p.suite {
		types[i] = n.Type
	}

	return types
}

// Run executes one pass for the given encoding.
//
// On success the result carries the encoded payload and all samples, which have already
// been delivered to the sink. If encoding fails the error wraps ErrEncode and no payload
// is returned; the failed encode sample is delivered and is the only entry of
// Result.Samples.
func (p *Pipeline) Run(encodingType format.EncodingType) (Result, error) {
	encoder, ok := p.encoders[encodingType]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", format.ErrUnknownEncoding, encodingType)
	}

	payload, encodeSample := p.encode(encodingType, encoder)
	if !encodeSample.OK() {
		p.sink.Record(encodeSample)
		failed := Result{Encoding: encodingType, Samples: []Sample{encodeSample}}

		return failed, fmt.Errorf("%w: %s: %w", ErrEncode, encodingType, encodeSample.Err)
	}

	samples := make([]Sample, 0, 1+len(p.suite))
	samples = append(samples, encodeSample)
	samples = append(samples, p.compressAll(encodingType, payload)...)

	for _, s := range samples {
		p.sink.Record(s)
	}

	return Result{
		Payload:     payload,
		ContentType: encodingType.ContentType(),
		Encoding:    encodingType,
		Samples:     samples,
	}, nil
}

func (p *Pipeline) encode(encodingType format.EncodingType, encoder encoding.Encoder) (payload []byte, sample Sample) {
	sample = Sample{
		Stage:    StageEncode,
		Encoding: encodingType,
		Records:  p.set.Len(),
	}

	start := p.clock()
	defer func() {
		if r := recover(); r != nil {
			payload = nil
			sample.Status = StatusUnavailable
			sample.Err = fmt.Errorf("encoder panic: %v", r)
		}
		sample.Duration = p.since(start)
	}()

	data, err := encoder.Encode(p.set)
	if err != nil {
		sample.Status = StatusUnavailable
		sample.Err = err

		return nil, sample
	}
	sample.OutputSize = len(data)

	return data, sample
}

func (p *Pipeline) compressAll(encodingType format.EncodingType, payload []byte) []Sample {
	samples := make([]Sample, len(p.suite))
	if !p.parallel || len(p.suite) < 2 {
		for i, n := range p.suite {
			samples[i] = p.compress(encodingType, n, payload)
		}

		return samples
	}

	var wg sync.WaitGroup
	wg.Add(len(p.suite))
	for i, n := range p.suite {
		go func() {
			defer wg.Done()
			samples[i] = p.compress(encodingType, n, payload)
		}()
	}
	wg.Wait()

	return samples
}

// compress measures one codec. Errors and panics become an unavailable sample.
func (p *Pipeline) compress(encodingType format.EncodingType, n compress.Named, payload []byte) (sample Sample) {
	sample = Sample{
		Stage:       StageCompress,
		Encoding:    encodingType,
		Compression: n.Type,
		InputSize:   len(payload),
	}

	start := p.clock()
	defer func() {
		if r := recover(); r != nil {
			sample.OutputSize = 0
			sample.Status = StatusUnavailable
			sample.Err = fmt.Errorf("%s compressor panic: %v", n.Type, r)
		}
		sample.Duration = p.since(start)
	}()

	out, err := n.Codec.Compress(payload)
	if err != nil {
		sample.Status = StatusUnavailable
		sample.Err = fmt.Errorf("%s: %w", n.Type, err)

		return sample
	}
	sample.OutputSize = len(out)

	return sample
}

func (p *Pipeline) since(start time.Time) time.Duration {
	d := p.clock().Sub(start)
	if d < 0 {
		return 0
	}

	return d
}
