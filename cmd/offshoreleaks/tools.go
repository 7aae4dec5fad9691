package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markramm/offshoreleaks-data-packages/internal/config"
	"github.com/markramm/offshoreleaks-data-packages/internal/graph"
	"github.com/markramm/offshoreleaks-data-packages/internal/observability"
	"github.com/markramm/offshoreleaks-data-packages/internal/resilience"
	"github.com/markramm/offshoreleaks-data-packages/internal/service"
	"github.com/markramm/offshoreleaks-data-packages/internal/tool"
	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

var toolArgsJSON string

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Tool surface for agent and assistant integrations",
	Long: `List and invoke the named tools that expose the query operations to
agent hosts. 'tools call' connects directly to the configured Neo4j
database rather than going through a running server.`,
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Listing only reads names and schemas; tool bodies are never
		// invoked, so no database connection is needed.
		registry := tool.NewServiceRegistry(nil)

		if jsonOutput {
			type toolInfo struct {
				Name        string         `json:"name"`
				Description string         `json:"description"`
				InputSchema map[string]any `json:"input_schema"`
			}
			infos := make([]toolInfo, 0)
			for _, t := range registry.List() {
				infos = append(infos, toolInfo{t.Name(), t.Description(), t.InputSchema()})
			}
			return printJSON(cmd, infos)
		}

		for _, t := range registry.List() {
			cmd.Printf("%-28s %s\n", t.Name(), t.Description())
		}
		return nil
	},
}

var toolsCallCmd = &cobra.Command{
	Use:   "call <tool-name>",
	Short: "Invoke one tool against the configured database",
	Args:  cobra.ExactArgs(1),
	Example: `  offshoreleaks tools call search_entities --args '{"name": "mossack"}'
  offshoreleaks tools call get_database_info`,
	RunE: func(cmd *cobra.Command, args []string) error {
		toolArgs, err := parseToolArgs(toolArgsJSON)
		if err != nil {
			return err
		}

		svc, cleanup, err := connectService(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		out, err := tool.NewServiceRegistry(svc).Call(cmd.Context(), args[0], toolArgs)
		if err != nil {
			return err
		}
		cmd.Println(out)
		return nil
	},
}

// parseToolArgs decodes the --args flag. An empty flag means no arguments.
func parseToolArgs(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, types.NewValidationError("tool arguments must be a JSON object: " + err.Error())
	}
	return args, nil
}

// connectService opens the configured Neo4j database and builds the query
// service over it. The returned cleanup closes the connection.
func connectService(ctx context.Context) (*service.Service, func(), error) {
	cfg, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return nil, nil, err
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
		return nil, nil, err
	}
	if err := db.Connect(ctx); err != nil {
		return nil, nil, err
	}

	svc := service.New(db, service.Options{
		QueryTimeout: cfg.Server.QueryTimeout,
		DefaultLimit: cfg.Server.DefaultLimit,
		MaxLimit:     cfg.Server.MaxLimit,
	}, logger)

	cleanup := func() {
		if err := db.Close(context.Background()); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}
	return svc, cleanup, nil
}

func init() {
	toolsCallCmd.Flags().StringVar(&toolArgsJSON, "args", "",
		"tool arguments as a JSON object")

	toolsCmd.AddCommand(toolsListCmd, toolsCallCmd)
	rootCmd.AddCommand(toolsCmd)
}
