package observe

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/arloliu/serbench/bench"
)

const namespace = "serbench"

// Metrics holds the Prometheus collectors fed by MetricsSink and the HTTP layer.
type Metrics struct {
	stageDuration   *prometheus.HistogramVec
	stageOutput     *prometheus.GaugeVec
	stageRatio      *prometheus.GaugeVec
	stageFailures   *prometheus.CounterVec
	samplesDropped  prometheus.Counter
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg. Tests pass a fresh
// prometheus.NewRegistry(); the server uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	stageLabels := []string{"stage", "encoding", "compression"}

	return &Metrics{
		stageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Time spent in a pipeline stage",
				Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			stageLabels,
		),
		stageOutput: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "stage_output_bytes",
				Help:      "Output size of the most recent run of a pipeline stage",
			},
			stageLabels,
		),
		stageRatio: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "compression_ratio",
				Help:      "Compressed size divided by encoded size for the most recent run",
			},
			[]string{"encoding", "compression"},
		),
		stageFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stage_unavailable_total",
				Help:      "Number of pipeline stages that failed to produce a measurement",
			},
			stageLabels,
		),
		samplesDropped: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "samples_dropped_total",
				Help:      "Number of samples dropped because the sink buffer was full",
			},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"route"},
		),
	}
}

// SampleDropped counts one sample lost by an AsyncSink.
func (m *Metrics) SampleDropped() {
	m.samplesDropped.Inc()
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route, status string, seconds float64) {
	m.requestsTotal.WithLabelValues(route, status).Inc()
	m.requestDuration.WithLabelValues(route).Observe(seconds)
}

// MetricsSink exports samples as Prometheus metrics.
type MetricsSink struct {
	m *Metrics
}

var _ bench.Sink = (*MetricsSink)(nil)

// NewMetricsSink creates a sink feeding m.
func NewMetricsSink(m *Metrics) *MetricsSink {
	return &MetricsSink{m: m}
}

// Record implements bench.Sink.
func (s *MetricsSink) Record(sample bench.Sample) {
	encoding, compression := labels(sample)
	stage := sample.Stage.String()

	if !sample.OK() {
		s.m.stageFailures.WithLabelValues(stage, encoding, compression).Inc()
		return
	}

	s.m.stageDuration.WithLabelValues(stage, encoding, compression).Observe(sample.Duration.Seconds())
	s.m.stageOutput.WithLabelValues(stage, encoding, compression).Set(float64(sample.OutputSize))
	if sample.Stage == bench.StageCompress {
		s.m.stageRatio.WithLabelValues(encoding, compression).Set(sample.Ratio())
	}
}

func labels(sample bench.Sample) (encoding, compression string) {
	encoding = strings.ToLower(sample.Encoding.String())
	compression = "none"
	if sample.Stage == bench.StageCompress {
		compression = strings.ToLower(sample.Compression.String())
	}

	return encoding, compression
}
