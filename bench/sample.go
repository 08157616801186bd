package bench

import (
	"strings"
	"time"

	"github.com/arloliu/serbench/format"
)

// Stage identifies the pipeline step a Sample measures.
type Stage uint8

const (
	StageEncode   Stage = 0x1 // StageEncode measures encoding the record set.
	StageCompress Stage = 0x2 // StageCompress measures compressing the encoded payload.
)

func (s Stage) String() string {
	switch s {
	case StageEncode:
		return "encode"
	case StageCompress:
		return "compress"
	default:
		return "unknown"
	}
}

// Status tells whether a measurement completed.
type Status uint8

const (
	StatusOK          Status = 0x0 // StatusOK marks a completed measurement.
	StatusUnavailable Status = 0x1 // StatusUnavailable marks a stage that failed; Err holds the cause.
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Sample is one timing and size observation for one pipeline stage.
//
// InputSize and OutputSize are byte lengths. The encode stage consumes records rather
// than bytes, so its InputSize is zero and Records holds the record count.
type Sample struct {
	Stage       Stage
	Encoding    format.EncodingType
	Compression format.CompressionType // zero for StageEncode
	Duration    time.Duration
	Records     int
	InputSize   int
	OutputSize  int
	Status      Status
	Err         error
}

// OK reports whether the stage completed.
func (s Sample) OK() bool {
	return s.Status == StatusOK
}

// Name labels the sample as "<encoding>" or "<encoding>/<compression>", lowercased.
func (s Sample) Name() string {
	name := strings.ToLower(s.Encoding.String())
	if s.Stage == StageCompress {
		name += "/" + strings.ToLower(s.Compression.String())
	}

	return name
}

// Ratio returns OutputSize / InputSize, or 0 when there was no input.
//
// Values less than 1.0 indicate that the stage shrank its input.
func (s Sample) Ratio() float64 {
	if s.InputSize == 0 {
		return 0.0
	}

	return float64(s.OutputSize) / float64(s.InputSize)
}

// SpaceSavings returns the space saved by the stage as a percentage.
func (s Sample) SpaceSavings() float64 {
	if s.InputSize == 0 {
		return 0.0
	}

	return (1.0 - s.Ratio()) * 100.0
}

// Sink receives measurement samples.
//
// Record is called from the goroutine running the pipeline. Implementations that do I/O
// must not block it; see the observe package for a buffered sink.
type Sink interface {
	Record(sample Sample)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(sample Sample)

// Record implements Sink.
func (f SinkFunc) Record(sample Sample) {
	f(sample)
}

type nopSink struct{}

func (nopSink) Record(Sample) {}

// NopSink discards every sample.
var NopSink Sink = nopSink{}
