package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/markramm/offshoreleaks-data-packages/internal/api"
)

// Global flags shared by all commands.
var (
	configFile    string
	serverURL     string
	clientTimeout time.Duration
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "offshoreleaks",
	Short: "Query server and CLI for the offshore leaks graph database",
	Long: `offshoreleaks serves and queries a Neo4j graph of offshore entities,
officers, and intermediaries from the ICIJ offshore leaks datasets.

'offshoreleaks serve' starts the REST API server. The query commands
(search, connections, paths, analyze, stats, health, export) talk to a
running server over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with signal handling.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"path to config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServerURL(),
		"base URL of a running offshoreleaks server")
	rootCmd.PersistentFlags().DurationVar(&clientTimeout, "timeout", 60*time.Second,
		"HTTP client timeout for query commands")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
}

func defaultServerURL() string {
	if url := os.Getenv("OFFSHORELEAKS_SERVER"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

// newClient builds the HTTP client the query commands share.
func newClient() *api.Client {
	return api.NewClient(serverURL, clientTimeout)
}
