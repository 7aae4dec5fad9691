package graph

import (
	"context"
	"time"

	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

// Client provides an interface for graph database operations.
// Implementations must be thread-safe for concurrent access.
type Client interface {
	// Connect establishes a connection to the graph database.
	Connect(ctx context.Context) error

	// Close releases all resources and closes the database connection.
	// Callers must not invoke other methods after Close completes.
	Close(ctx context.Context) error

	// Health returns the current health status of the database connection.
	Health(ctx context.Context) types.HealthStatus

	// Query executes a Cypher query with the given parameters. A zero timeout
	// uses the configured default query timeout.
	Query(ctx context.Context, cypher string, params map[string]any, timeout time.Duration) (QueryResult, error)

	// IsConnected reports local connection state without performing I/O.
	IsConnected() bool
}

// QueryResult represents the result of a Cypher query execution.
type QueryResult struct {
	// Records contains the result rows as maps of column name to value,
	// in query order.
	Records []map[string]any

	// Columns contains the names of the columns in the result set.
	Columns []string

	// Summary contains metadata about the query execution.
	Summary QuerySummary

	// ElapsedMS is the wall-clock query time in milliseconds.
	ElapsedMS int64
}

// QuerySummary provides the structural breakdown of a query execution when
// the underlying engine provides one; zero-valued otherwise.
type QuerySummary struct {
	NodesCreated         int `json:"nodes_created"`
	NodesDeleted         int `json:"nodes_deleted"`
	RelationshipsCreated int `json:"relationships_created"`
	RelationshipsDeleted int `json:"relationships_deleted"`
	PropertiesSet        int `json:"properties_set"`
}

// Config contains configuration options for graph database clients.
type Config struct {
	// URI is the connection URI, e.g. "bolt://host:7687" or "neo4j+s://host".
	URI string

	// Username for authentication.
	Username string

	// Password for authentication.
	Password string

	// Database name to connect to. Empty string uses the default database.
	Database string

	// MaxConnectionPoolSize limits the number of connections in the pool.
	// Zero or negative values use the driver default.
	MaxConnectionPoolSize int

	// ConnectionTimeout is the maximum time to wait for a connection.
	ConnectionTimeout time.Duration

	// QueryTimeout is the default per-query timeout applied when the caller
	// passes a zero timeout to Query.
	QueryTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults for local development.
func DefaultConfig() Config {
	return Config{
		URI:                   "bolt://localhost:7687",
		Username:              "neo4j",
		Password:              "password",
		Database:              "neo4j",
		MaxConnectionPoolSize: 50,
		ConnectionTimeout:     30 * time.Second,
		QueryTimeout:          30 * time.Second,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.URI == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "URI cannot be empty")
	}
	if c.Username == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "Username cannot be empty")
	}
	if c.Password == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "Password cannot be empty")
	}
	if c.ConnectionTimeout <= 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "ConnectionTimeout must be positive")
	}
	if c.QueryTimeout <= 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "QueryTimeout must be positive")
	}
	return nil
}
