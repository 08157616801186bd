// Package observe provides the measurement sinks used by the server.
//
// The production chain is
//
//	AsyncSink -> MultiSink{LogSink, MetricsSink}
//
// AsyncSink decouples the request path from logging and metrics: Record never blocks,
// and samples are dropped and counted when its buffer is full.
package observe
