// Package api exposes the query service over REST. It carries the gin server,
// the response envelope, and the HTTP client the CLI uses to reach a running
// server.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerOptions configures the REST server.
type ServerOptions struct {
	ListenAddress string
	Debug         bool
}

// Server is the REST server for the offshore leaks query service.
type Server struct {
	engine *gin.Engine
	http   *http.Server
	logger *slog.Logger
}

// NewServer builds the gin engine, registers middleware and routes, and
// returns a server ready to Start.
func NewServer(opts ServerOptions, handlers *Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(RequestLogger(logger))
	engine.Use(RequestMetrics())

	engine.GET("/health", handlers.handleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/v1")
	handlers.RegisterRoutes(v1)

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:              opts.ListenAddress,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Engine exposes the underlying gin engine for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start serves HTTP until Shutdown is called. It blocks; run it in a
// goroutine. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.http.Shutdown(ctx)
}
