package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/serbench/bench"
	"github.com/arloliu/serbench/compress"
	"github.com/arloliu/serbench/generator"
	"github.com/arloliu/serbench/internal/config"
	"github.com/arloliu/serbench/internal/observe"
	"github.com/arloliu/serbench/internal/server"
	"github.com/arloliu/serbench/record"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the encoded catalog over HTTP",
		Long: `Start an HTTP server that encodes the catalog on every request to /json, /text,
/binary or /encode/{encoding}, compresses the payload with each configured compressor
and reports every measurement to the log and to Prometheus.`,
		Args: cobra.NoArgs,
		RunE: a.runServe,
	}

	cmd.Flags().String("addr", ":3000", "listen address")
	cmd.Flags().Bool("rate-limit", false, "enable the per-process request rate limiter")
	a.bind(cmd, "server.addr", "addr")
	a.bind(cmd, "rate_limit.enabled", "rate-limit")

	return cmd
}

func (a *app) runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := a.load(nil)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	set, err := generator.Generate(generator.WithSeed(cfg.Generator.Seed))
	if err != nil {
		logger.Error("failed to generate catalog", zap.Error(err))
		return err
	}

	var metrics *observe.Metrics
	sinks := observe.MultiSink{observe.NewLogSink(logger)}
	var onDrop func()
	if cfg.Metrics.Enabled {
		metrics = observe.NewMetrics(prometheus.DefaultRegisterer)
		sinks = append(sinks, observe.NewMetricsSink(metrics))
		onDrop = metrics.SampleDropped
	}
	sink := observe.NewAsyncSink(sinks, cfg.Bench.SinkBuffer, onDrop)
	defer func() { _ = sink.Close() }()

	pipeline, err := newPipeline(cfg, set, sink)
	if err != nil {
		return err
	}

	srvCfg := server.Config{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Metrics:      metrics,
	}
	if cfg.Metrics.Enabled {
		srvCfg.MetricsPath = cfg.Metrics.Path
		srvCfg.Gatherer = prometheus.DefaultGatherer
	}
	if cfg.RateLimit.Enabled {
		srvCfg.RateLimitRPS = cfg.RateLimit.RPS
		srvCfg.RateLimitBurst = cfg.RateLimit.Burst
	}
	srv := server.New(srvCfg, pipeline, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("catalog ready",
			zap.Int("records", pipeline.Len()),
			zap.Strings("compressors", cfg.Bench.Compressors),
		)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}
	logger.Info("server exited", zap.Uint64("samples_dropped", sink.Dropped()))

	return nil
}

// newPipeline builds the measurement pipeline for the configured compressor suite.
func newPipeline(cfg *config.Config, set record.Set, sink bench.Sink) (*bench.Pipeline, error) {
	types, err := cfg.CompressionTypes()
	if err != nil {
		return nil, err
	}

	suite, err := compress.Suite(types...)
	if err != nil {
		return nil, err
	}

	return bench.NewPipeline(set,
		bench.WithCompressors(suite...),
		bench.WithSink(sink),
		bench.WithParallel(cfg.Bench.Parallel),
	)
}
