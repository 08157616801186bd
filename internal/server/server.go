// Package server exposes the measurement pipeline over HTTP.
//
// Every encode request re-runs the pipeline against the shared record set and returns
// the encoded, uncompressed payload. Measurements go to the pipeline's sink, never into
// the response.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/arloliu/serbench/bench"
	"github.com/arloliu/serbench/internal/observe"
)

// Config holds HTTP server settings.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Metrics enables request instrumentation. Nil disables it.
	Metrics *observe.Metrics
	// MetricsPath serves Gatherer in Prometheus text format. Empty disables the endpoint.
	MetricsPath string
	Gatherer    prometheus.Gatherer

	// RateLimitRPS enables the rate limiter when positive.
	RateLimitRPS   float64
	RateLimitBurst int
}

// Server represents the HTTP server.
type Server struct {
	router     *mux.Router
	handler    http.Handler
	httpServer *http.Server
	pipeline   *bench.Pipeline
	logger     *zap.Logger
	cfg        Config
}

// New creates a server dispatching to pipeline and sets up its routes.
func New(cfg Config, pipeline *bench.Pipeline, logger *zap.Logger) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		pipeline: pipeline,
		logger:   logger,
		cfg:      cfg,
	}
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	middlewareChain := []func(http.Handler) http.Handler{
		RequestID,
		Logging(s.logger),
		Recovery(s.logger),
	}

	if s.cfg.RateLimitRPS > 0 {
		rateLimiter := NewRateLimiter(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst, s.logger)
		middlewareChain = append(middlewareChain, rateLimiter.Limit)
	}

	if s.cfg.Metrics != nil {
		s.router.Use(Instrument(s.cfg.Metrics))
	}

	// Encode endpoints
	s.router.HandleFunc("/json", s.handleEncode).Methods(http.MethodGet, http.MethodHead)
	s.router.HandleFunc("/text", s.handleEncode).Methods(http.MethodGet, http.MethodHead)
	s.router.HandleFunc("/binary", s.handleEncode).Methods(http.MethodGet, http.MethodHead)
	s.router.HandleFunc("/encode/{encoding}", s.handleEncode).Methods(http.MethodGet, http.MethodHead)

	// Health check endpoint
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	if s.cfg.MetricsPath != "" {
		gatherer := s.cfg.Gatherer
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		s.router.Handle(s.cfg.MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, errCodeNotFound)
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, errCodeMethodNotAllowed)
	})

	s.handler = Chain(middlewareChain...)(s.router)
}

// Handler returns the http.Handler for the server, middleware included.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.cfg.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Serve serves on an existing listener until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("starting HTTP server", zap.String("addr", ln.Addr().String()))

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
