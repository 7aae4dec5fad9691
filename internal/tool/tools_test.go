package tool

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markramm/offshoreleaks-data-packages/internal/graph"
	"github.com/markramm/offshoreleaks-data-packages/internal/service"
	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

func newTestRegistry() (*Registry, *graph.MockClient) {
	db := graph.NewMockClient()
	svc := service.New(db, service.DefaultOptions(), nil)
	return NewServiceRegistry(svc), db
}

func TestServiceRegistry_ExposesAllTools(t *testing.T) {
	r, _ := newTestRegistry()

	names := make([]string, 0)
	for _, tool := range r.List() {
		names = append(names, tool.Name())
		assert.NotEmpty(t, tool.Description())
		assert.Equal(t, "object", tool.InputSchema()["type"])
	}

	expected := []string{
		"analyze_network_patterns",
		"compliance_risk_analysis",
		"export_results",
		"find_common_connections",
		"find_shortest_paths",
		"get_connections",
		"get_database_info",
		"get_entity_details",
		"get_statistics",
		"search_entities",
		"search_intermediaries",
		"search_officers",
		"temporal_analysis",
	}
	assert.Equal(t, expected, names)
}

func TestSearchEntitiesTool(t *testing.T) {
	r, db := newTestRegistry()
	db.QueueResult(graph.QueryResult{
		Records: []map[string]any{
			{"e": map[string]any{"node_id": "1", "name": "Alpha Holdings"}},
		},
	})
	db.QueueResult(graph.QueryResult{
		Records: []map[string]any{{"total": int64(1)}},
	})

	out, err := r.Call(context.Background(), "search_entities", map[string]any{"name": "alpha"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Entity search: 1 of 1 results (offset 0)"))
	assert.Contains(t, out, "Alpha Holdings")

	calls := db.QueryCalls()
	require.NotEmpty(t, calls)
	assert.Equal(t, "alpha", calls[0].Params["param_0"])
}

func TestDecodeArgs_TypeMismatchIsValidationError(t *testing.T) {
	r, db := newTestRegistry()

	_, err := r.Call(context.Background(), "search_entities", map[string]any{
		"limit": "twenty",
	})

	require.Error(t, err)
	assert.True(t, types.IsValidation(err))
	assert.Empty(t, db.QueryCalls())
}

func TestGetEntityDetailsTool_RequiresNodeID(t *testing.T) {
	r, _ := newTestRegistry()

	_, err := r.Call(context.Background(), "get_entity_details", map[string]any{})
	require.Error(t, err)
	assert.True(t, types.IsValidation(err))
}

func TestGetConnectionsTool_PropagatesServiceError(t *testing.T) {
	r, db := newTestRegistry()
	db.SetQueryError(types.NewRetryableError(types.QUERY_TIMEOUT,
		types.KindQueryTimeout, "query timed out"))

	_, err := r.Call(context.Background(), "get_connections", map[string]any{
		"start_node_id": "1",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, types.NewError(types.QUERY_TIMEOUT, ""))
}

func TestExportResultsTool_CSV(t *testing.T) {
	r, db := newTestRegistry()
	db.QueueResult(graph.QueryResult{
		Records: []map[string]any{
			{"e": map[string]any{"node_id": "1", "name": "Alpha Holdings"}},
		},
	})
	db.QueueResult(graph.QueryResult{
		Records: []map[string]any{{"total": int64(1)}},
	})

	out, err := r.Call(context.Background(), "export_results", map[string]any{
		"format": "csv",
		"name":   "alpha",
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "name,node_id", lines[0])
	assert.Equal(t, "Alpha Holdings,1", lines[1])
}

func TestExportResultsTool_RejectsUnknownFormat(t *testing.T) {
	r, _ := newTestRegistry()

	_, err := r.Call(context.Background(), "export_results", map[string]any{
		"format": "xlsx",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, types.NewError(types.EXPORT_FORMAT_UNSUPPORTED, ""))
}
