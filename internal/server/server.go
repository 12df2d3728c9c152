// Package server exposes the predictor over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rgehrsitz/hcpredict/internal/advice"
	"github.com/rgehrsitz/hcpredict/internal/calculation"
	"github.com/rgehrsitz/hcpredict/internal/config"
	"go.uber.org/zap"
)

// Options configures a Server
type Options struct {
	Engine      *calculation.PredictionEngine
	Normalizer  *config.Normalizer
	Recommender advice.Recommender // nil disables recommendations
	Logger      *zap.Logger
	Settings    config.ServerSettings
}

// Server serves the prediction API
type Server struct {
	engine      *calculation.PredictionEngine
	normalizer  *config.Normalizer
	parser      *config.InputParser
	recommender advice.Recommender
	logger      *zap.Logger
	settings    config.ServerSettings
	metrics     *metrics
	router      chi.Router
}

// New builds a server and its routes
func New(opts Options) (*Server, error) {
	if opts.Engine == nil {
		return nil, fmt.Errorf("prediction engine is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	normalizer := opts.Normalizer
	if normalizer == nil {
		normalizer = config.NewNormalizer(logger.Sugar())
	}

	s := &Server{
		engine:      opts.Engine,
		normalizer:  normalizer,
		parser:      config.NewInputParser(),
		recommender: opts.Recommender,
		logger:      logger,
		settings:    opts.Settings,
		metrics:     newMetrics(),
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.middleware)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics.handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(rateLimiter(s.settings.RateLimit, s.settings.Burst, s.metrics.rateLimited.Inc))
		r.Use(middleware.Timeout(30 * time.Second))

		r.Post("/predictions", s.handlePredict)
		r.Post("/reports", s.handleReport)
		r.Get("/reference", s.handleReference)
	})

	return r
}

// ServeHTTP makes Server an http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on the configured address until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.settings.Addr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", s.settings.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
