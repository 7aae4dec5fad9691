package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/markramm/offshoreleaks-data-packages/internal/api"
	"github.com/markramm/offshoreleaks-data-packages/internal/config"
	"github.com/markramm/offshoreleaks-data-packages/internal/graph"
	"github.com/markramm/offshoreleaks-data-packages/internal/observability"
	"github.com/markramm/offshoreleaks-data-packages/internal/resilience"
	"github.com/markramm/offshoreleaks-data-packages/internal/service"
	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the REST API server. Connects to Neo4j, exposes the query
endpoints under /v1 plus /health and /metrics, and shuts down gracefully
on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger := observability.NewLogger(os.Stderr, level, cfg.Logging.Format)

	manager := resilience.NewManager(logger)

	db, err := graph.NewNeo4jClient(graph.Config{
		URI:                   cfg.Neo4j.URI,
		Username:              cfg.Neo4j.Username,
		Password:              cfg.Neo4j.Password,
		Database:              cfg.Neo4j.Database,
		MaxConnectionPoolSize: cfg.Neo4j.MaxConnectionPoolSize,
		ConnectionTimeout:     cfg.Neo4j.ConnectionTimeout,
		QueryTimeout:          cfg.Server.QueryTimeout,
	}, manager, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := db.Connect(ctx); err != nil {
		return err
	}

	svc := service.New(db, service.Options{
		QueryTimeout: cfg.Server.QueryTimeout,
		DefaultLimit: cfg.Server.DefaultLimit,
		MaxLimit:     cfg.Server.MaxLimit,
	}, logger)

	checker := resilience.NewHealthChecker(logger)
	checker.Register("neo4j", db)
	checker.Record("server", types.Healthy("server running"))

	handlers := api.NewHandlers(svc, manager, checker, logger)
	server := api.NewServer(api.ServerOptions{
		ListenAddress: cfg.Server.ListenAddress,
		Debug:         cfg.Server.Debug,
	}, handlers, logger)

	shutdown := resilience.NewGracefulShutdown(logger)
	shutdown.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown(ctx)
	})
	shutdown.Register("neo4j", func(ctx context.Context) error {
		return db.Close(ctx)
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdown.Shutdown(cfg.Server.ShutdownTimeout)
		return <-errCh
	case err := <-errCh:
		// Server stopped on its own, still close the database.
		shutdown.Shutdown(cfg.Server.ShutdownTimeout)
		return err
	}
}
