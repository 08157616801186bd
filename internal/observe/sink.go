package observe

import (
	"sync"

	"go.uber.org/zap"

	"github.com/arloliu/serbench/bench"
)

// LogSink writes one log entry per sample: debug for completed stages, warn for
// unavailable ones.
type LogSink struct {
	logger *zap.Logger
}

var _ bench.Sink = (*LogSink)(nil)

// NewLogSink creates a sink logging to logger.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger.Named("measure")}
}

// Record implements bench.Sink.
func (s *LogSink) Record(sample bench.Sample) {
	fields := []zap.Field{
		zap.String("stage", sample.Stage.String()),
		zap.String("name", sample.Name()),
		zap.Duration("duration", sample.Duration),
		zap.Int("input_bytes", sample.InputSize),
		zap.Int("output_bytes", sample.OutputSize),
	}
	if sample.Stage == bench.StageEncode {
		fields = append(fields, zap.Int("records", sample.Records))
	}

	if !sample.OK() {
		s.logger.Warn("measurement unavailable", append(fields, zap.Error(sample.Err))...)
		return
	}

	if sample.Stage == bench.StageCompress {
		fields = append(fields, zap.Float64("ratio", sample.Ratio()))
	}
	s.logger.Debug("measurement", fields...)
}

// MultiSink fans every sample out to each of its sinks in order.
type MultiSink []bench.Sink

var _ bench.Sink = MultiSink(nil)

// Record implements bench.Sink.
func (m MultiSink) Record(sample bench.Sample) {
	for _, s := range m {
		s.Record(sample)
	}
}

// Recorder keeps every sample in memory. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	samples []bench.Sample
}

var _ bench.Sink = (*Recorder)(nil)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record implements bench.Sink.
func (r *Recorder) Record(sample bench.Sample) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.samples = append(r.samples, sample)
}

// Samples returns a copy of the recorded samples in arrival order.
func (r *Recorder) Samples() []bench.Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]bench.Sample(nil), r.samples...)
}

// Len returns the number of recorded samples.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.samples)
}

// Reset discards all recorded samples.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.samples = nil
}
