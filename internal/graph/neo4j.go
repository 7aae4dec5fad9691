package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/markramm/offshoreleaks-data-packages/internal/resilience"
	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

// Neo4jClient implements Client for Neo4j graph databases. Every public
// method routes through the resilience manager: connect and health checks
// behind the database circuit breaker, query execution behind the query
// engine breaker.
type Neo4jClient struct {
	config     Config
	resilience *resilience.Manager
	logger     *slog.Logger

	mu        sync.RWMutex
	driver    neo4j.DriverWithContext
	connected bool
}

// NewNeo4jClient creates a new Neo4j client. The client must be connected via
// Connect() before use.
func NewNeo4jClient(config Config, manager *resilience.Manager, logger *slog.Logger) (*Neo4jClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, types.NewError(types.CONFIG_VALIDATION_FAILED, "resilience manager is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Neo4jClient{
		config:     config,
		resilience: manager,
		logger:     logger.With("component", "graph"),
	}, nil
}

// Connect establishes a connection to the Neo4j database. Connection failures
// are tagged retryable so the manager's retry loop attempts reconnection per
// the database_connection policy.
func (c *Neo4jClient) Connect(ctx context.Context) error {
	return c.resilience.Execute(ctx, types.KindDatabaseConnection, resilience.BreakerDatabase,
		func(ctx context.Context) error {
			auth := neo4j.BasicAuth(c.config.Username, c.config.Password, "")

			driver, err := neo4j.NewDriverWithContext(c.config.URI, auth, func(cfg *neo4j.Config) {
				if c.config.MaxConnectionPoolSize > 0 {
					cfg.MaxConnectionPoolSize = c.config.MaxConnectionPoolSize
				}
				cfg.ConnectionAcquisitionTimeout = c.config.ConnectionTimeout
			})
			if err != nil {
				return types.WrapRetryable(types.DB_CONNECTION_FAILED, types.KindDatabaseConnection,
					"failed to create driver", err)
			}

			verifyCtx, cancel := context.WithTimeout(ctx, c.config.ConnectionTimeout)
			defer cancel()

			if err := driver.VerifyConnectivity(verifyCtx); err != nil {
				_ = driver.Close(ctx)
				return types.WrapRetryable(types.DB_CONNECTION_FAILED, types.KindDatabaseConnection,
					"connectivity verification failed", err)
			}

			c.mu.Lock()
			c.driver = driver
			c.connected = true
			c.mu.Unlock()

			c.logger.Info("connected to Neo4j", "uri", c.config.URI, "database", c.config.Database)
			return nil
		})
}

// Close releases all resources and closes the database connection.
func (c *Neo4jClient) Close(ctx context.Context) error {
	c.mu.Lock()
	driver := c.driver
	c.driver = nil
	c.connected = false
	c.mu.Unlock()

	if driver == nil {
		return nil
	}

	if err := driver.Close(ctx); err != nil {
		return types.WrapError(types.DB_CONNECTION_CLOSED, "failed to close driver", err)
	}

	c.logger.Info("disconnected from Neo4j")
	return nil
}

// Health returns the current health status of the Neo4j connection.
func (c *Neo4jClient) Health(ctx context.Context) types.HealthStatus {
	c.mu.RLock()
	driver := c.driver
	c.mu.RUnlock()

	if driver == nil {
		return types.Unhealthy("driver not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := driver.VerifyConnectivity(healthCtx); err != nil {
		return types.Unhealthy(fmt.Sprintf("connectivity check failed: %v", err))
	}

	return types.Healthy("connected to Neo4j")
}

// IsConnected reports local connection state without performing I/O.
func (c *Neo4jClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected && c.driver != nil
}

// Query executes a Cypher query with the given parameters. The session is
// acquired per call and released on every exit path. Wall-clock time is
// measured with millisecond resolution; the summary carries the engine's
// structural counters when available and stays empty otherwise.
func (c *Neo4jClient) Query(ctx context.Context, cypher string, params map[string]any, timeout time.Duration) (QueryResult, error) {
	if timeout <= 0 {
		timeout = c.config.QueryTimeout
	}

	var result QueryResult
	err := c.resilience.Execute(ctx, types.KindQueryTimeout, resilience.BreakerQueryEngine,
		func(ctx context.Context) error {
			c.mu.RLock()
			driver := c.driver
			c.mu.RUnlock()

			if driver == nil {
				return types.NewError(types.DB_CONNECTION_CLOSED, "driver not connected")
			}

			queryCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			start := time.Now()

			session := driver.NewSession(queryCtx, neo4j.SessionConfig{
				DatabaseName: c.config.Database,
			})
			defer session.Close(queryCtx)

			raw, err := session.ExecuteRead(queryCtx, func(tx neo4j.ManagedTransaction) (any, error) {
				neoResult, err := tx.Run(queryCtx, cypher, params)
				if err != nil {
					return nil, err
				}

				records, err := neoResult.Collect(queryCtx)
				if err != nil {
					return nil, err
				}

				summary, err := neoResult.Consume(queryCtx)
				if err != nil {
					return nil, err
				}

				return convertResult(records, summary), nil
			})
			if err != nil {
				return c.wrapQueryError(err)
			}

			result = raw.(QueryResult)
			result.ElapsedMS = time.Since(start).Milliseconds()

			c.logger.Debug("query executed",
				"elapsed_ms", result.ElapsedMS,
				"records", len(result.Records))
			return nil
		})
	if err != nil {
		return QueryResult{}, err
	}
	return result, nil
}

// wrapQueryError tags a raw driver failure with its error kind at the point of
// detection, so downstream classification works over a structured value.
func (c *Neo4jClient) wrapQueryError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return types.WrapRetryable(types.QUERY_TIMEOUT, types.KindQueryTimeout,
			"query timed out", err)
	}

	kind := resilience.Classify(err)
	switch kind {
	case types.KindDatabaseConnection, types.KindNetworkError:
		return types.WrapRetryable(types.DB_CONNECTION_FAILED, kind,
			"database session failed", err)
	case types.KindQueryTimeout, types.KindResourceExhaustion:
		return types.WrapRetryable(types.QUERY_TIMEOUT, kind,
			"query timed out", err)
	default:
		return types.WrapKind(types.QUERY_FAILED, kind,
			"query execution failed", err)
	}
}

// convertResult converts Neo4j records and summary to our QueryResult format.
// Graph values (nodes, relationships) are flattened to their property maps so
// callers see plain map-shaped rows.
func convertResult(records []*neo4j.Record, summary neo4j.ResultSummary) QueryResult {
	result := QueryResult{
		Records: make([]map[string]any, 0, len(records)),
		Columns: []string{},
	}

	if len(records) > 0 {
		result.Columns = records[0].Keys
	}

	for _, record := range records {
		row := make(map[string]any, len(record.Keys))
		for i, key := range record.Keys {
			row[key] = flattenValue(record.Values[i])
		}
		result.Records = append(result.Records, row)
	}

	if summary != nil && summary.Counters() != nil {
		counters := summary.Counters()
		result.Summary = QuerySummary{
			NodesCreated:         counters.NodesCreated(),
			NodesDeleted:         counters.NodesDeleted(),
			RelationshipsCreated: counters.RelationshipsCreated(),
			RelationshipsDeleted: counters.RelationshipsDeleted(),
			PropertiesSet:        counters.PropertiesSet(),
		}
	}

	return result
}

// flattenValue converts driver node/relationship values into plain maps and
// recurses into collections. Scalars pass through unchanged.
func flattenValue(value any) any {
	switch v := value.(type) {
	case neo4j.Node:
		props := make(map[string]any, len(v.Props)+1)
		for k, p := range v.Props {
			props[k] = p
		}
		if len(v.Labels) > 0 {
			props["_labels"] = v.Labels
		}
		return props
	case neo4j.Relationship:
		props := make(map[string]any, len(v.Props)+1)
		for k, p := range v.Props {
			props[k] = p
		}
		props["_type"] = v.Type
		return props
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = flattenValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = flattenValue(item)
		}
		return out
	default:
		return v
	}
}
