package graph

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markramm/offshoreleaks-data-packages/internal/resilience"
	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults are valid", func(c *Config) {}, true},
		{"missing URI", func(c *Config) { c.URI = "" }, false},
		{"missing username", func(c *Config) { c.Username = "" }, false},
		{"missing password", func(c *Config) { c.Password = "" }, false},
		{"zero connection timeout", func(c *Config) { c.ConnectionTimeout = 0 }, false},
		{"zero query timeout", func(c *Config) { c.QueryTimeout = 0 }, false},
		{"empty database is allowed", func(c *Config) { c.Database = "" }, true},
		{"zero pool size is allowed", func(c *Config) { c.MaxConnectionPoolSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.ErrorIs(t, err, types.NewError(types.CONFIG_VALIDATION_FAILED, ""))
			}
		})
	}
}

func TestNewNeo4jClient_RejectsInvalidConfig(t *testing.T) {
	manager := resilience.NewManager(slog.Default())

	_, err := NewNeo4jClient(Config{}, manager, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.NewError(types.CONFIG_VALIDATION_FAILED, ""))
}

func TestNewNeo4jClient_RequiresManager(t *testing.T) {
	_, err := NewNeo4jClient(DefaultConfig(), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resilience manager")
}

func TestNewNeo4jClient_StartsDisconnected(t *testing.T) {
	manager := resilience.NewManager(slog.Default())

	client, err := NewNeo4jClient(DefaultConfig(), manager, nil)
	require.NoError(t, err)
	assert.False(t, client.IsConnected())

	status := client.Health(context.Background())
	assert.Equal(t, types.HealthStateUnhealthy, status.State)
}

func TestQuery_FailsWhenNotConnected(t *testing.T) {
	manager := resilience.NewManager(slog.Default())

	client, err := NewNeo4jClient(DefaultConfig(), manager, nil)
	require.NoError(t, err)

	_, err = client.Query(context.Background(), "RETURN 1", nil, time.Second)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.NewError(types.DB_CONNECTION_CLOSED, ""))
}

func TestWrapQueryError(t *testing.T) {
	client := &Neo4jClient{logger: slog.Default()}

	tests := []struct {
		name      string
		input     error
		code      types.ErrorCode
		kind      types.ErrorKind
		retryable bool
	}{
		{
			name:      "deadline exceeded",
			input:     context.DeadlineExceeded,
			code:      types.QUERY_TIMEOUT,
			kind:      types.KindQueryTimeout,
			retryable: true,
		},
		{
			name:      "connection failure",
			input:     errors.New("connection refused by server"),
			code:      types.DB_CONNECTION_FAILED,
			kind:      types.KindDatabaseConnection,
			retryable: true,
		},
		{
			name:      "pool exhaustion",
			input:     errors.New("connection pool exhausted"),
			code:      types.QUERY_TIMEOUT,
			kind:      types.KindResourceExhaustion,
			retryable: true,
		},
		{
			name:      "syntax error",
			input:     errors.New("syntax error near RETURN"),
			code:      types.QUERY_FAILED,
			kind:      types.KindQueryError,
			retryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.wrapQueryError(tt.input)

			var leaksErr *types.LeaksError
			require.ErrorAs(t, err, &leaksErr)
			assert.Equal(t, tt.code, leaksErr.Code)
			assert.Equal(t, tt.kind, leaksErr.Kind)
			assert.Equal(t, tt.retryable, leaksErr.Retryable)
			assert.ErrorIs(t, err, tt.input)
		})
	}
}

func TestConvertResult(t *testing.T) {
	records := []*neo4j.Record{
		{
			Keys: []string{"e", "total"},
			Values: []any{
				neo4j.Node{
					Props:  map[string]any{"node_id": "1", "name": "Alpha Holdings"},
					Labels: []string{"Entity"},
				},
				int64(3),
			},
		},
		{
			Keys: []string{"e", "total"},
			Values: []any{
				neo4j.Node{Props: map[string]any{"node_id": "2"}},
				int64(3),
			},
		},
	}

	result := convertResult(records, nil)

	assert.Equal(t, []string{"e", "total"}, result.Columns)
	require.Len(t, result.Records, 2)

	entity, ok := result.Records[0]["e"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Alpha Holdings", entity["name"])
	assert.Equal(t, []string{"Entity"}, entity["_labels"])
	assert.Equal(t, int64(3), result.Records[0]["total"])

	// A node without labels keeps its bare property map.
	bare, ok := result.Records[1]["e"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, bare, "_labels")
}

func TestConvertResult_Empty(t *testing.T) {
	result := convertResult(nil, nil)

	assert.Empty(t, result.Records)
	assert.Empty(t, result.Columns)
	assert.Zero(t, result.Summary)
}

func TestFlattenValue(t *testing.T) {
	t.Run("relationship carries its type", func(t *testing.T) {
		flat := flattenValue(neo4j.Relationship{
			Type:  "OFFICER_OF",
			Props: map[string]any{"link": "director"},
		})

		props, ok := flat.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "OFFICER_OF", props["_type"])
		assert.Equal(t, "director", props["link"])
	})

	t.Run("recurses into lists", func(t *testing.T) {
		flat := flattenValue([]any{
			neo4j.Node{Props: map[string]any{"node_id": "1"}, Labels: []string{"Officer"}},
			"scalar",
		})

		list, ok := flat.([]any)
		require.True(t, ok)
		require.Len(t, list, 2)

		node, ok := list[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "1", node["node_id"])
		assert.Equal(t, "scalar", list[1])
	})

	t.Run("recurses into maps", func(t *testing.T) {
		flat := flattenValue(map[string]any{
			"rel": neo4j.Relationship{Type: "SAME_AS"},
		})

		m, ok := flat.(map[string]any)
		require.True(t, ok)
		rel, ok := m["rel"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "SAME_AS", rel["_type"])
	})

	t.Run("scalars pass through", func(t *testing.T) {
		assert.Equal(t, int64(42), flattenValue(int64(42)))
		assert.Equal(t, "x", flattenValue("x"))
		assert.Nil(t, flattenValue(nil))
	})
}
