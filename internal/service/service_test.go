package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markramm/offshoreleaks-data-packages/internal/graph"
	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

func newTestService() (*Service, *graph.MockClient) {
	db := graph.NewMockClient()
	return New(db, DefaultOptions(), nil), db
}

func entityRow(nodeID, name string) map[string]any {
	return map[string]any{
		"e": map[string]any{
			"node_id":      nodeID,
			"name":         name,
			"jurisdiction": "PAN",
			"_labels":      []any{"Entity"},
		},
	}
}

func TestSearchEntities(t *testing.T) {
	svc, db := newTestService()

	db.QueueResult(graph.QueryResult{
		Records:   []map[string]any{entityRow("1", "Alpha Holdings"), entityRow("2", "Beta Ltd")},
		ElapsedMS: 12,
	})
	db.QueueResult(graph.QueryResult{
		Records: []map[string]any{{"total": int64(3)}},
	})

	result, err := svc.SearchEntities(context.Background(), EntitySearchParams{Name: "a"})
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, 2, result.ReturnedCount)
	assert.Equal(t, 0, result.Offset)
	assert.Equal(t, 20, result.Limit)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "Alpha Holdings", result.Results[0]["name"])
	require.NotNil(t, result.QueryTimeMS)
	assert.Equal(t, int64(12), *result.QueryTimeMS)

	// A search issues the paginated query plus its count companion.
	calls := db.QueryCalls()
	require.Len(t, calls, 2)
	assert.Contains(t, calls[0].Cypher, "SKIP $offset")
	assert.Contains(t, calls[1].Cypher, "count(e) as total")
}

func TestSearchEntities_DefaultLimitApplied(t *testing.T) {
	svc, db := newTestService()
	db.QueueResult(graph.QueryResult{Records: []map[string]any{}})

	_, err := svc.SearchEntities(context.Background(), EntitySearchParams{})
	require.NoError(t, err)

	calls := db.QueryCalls()
	require.NotEmpty(t, calls)
	assert.Equal(t, 20, calls[0].Params["limit"])
}

func TestSearchEntities_MaxLimitClamped(t *testing.T) {
	db := graph.NewMockClient()
	opts := DefaultOptions()
	opts.MaxLimit = 5
	svc := New(db, opts, nil)
	db.QueueResult(graph.QueryResult{Records: []map[string]any{}})

	result, err := svc.SearchEntities(context.Background(), EntitySearchParams{Limit: 50})
	require.NoError(t, err)

	assert.Equal(t, 5, result.Limit)
	calls := db.QueryCalls()
	require.NotEmpty(t, calls)
	assert.Equal(t, 5, calls[0].Params["limit"])
}

func TestSearchEntities_ValidationFailure(t *testing.T) {
	svc, db := newTestService()

	_, err := svc.SearchEntities(context.Background(), EntitySearchParams{
		IncorporationDateFrom: "not-a-date",
	})

	require.Error(t, err)
	assert.True(t, types.IsValidation(err))
	assert.Empty(t, db.QueryCalls())
}

func TestSearchEntities_GatewayErrorPropagates(t *testing.T) {
	svc, db := newTestService()
	db.SetQueryError(types.NewRetryableError(types.QUERY_TIMEOUT,
		types.KindQueryTimeout, "query timed out"))

	_, err := svc.SearchEntities(context.Background(), EntitySearchParams{Name: "a"})

	require.Error(t, err)
	assert.ErrorIs(t, err, types.NewError(types.QUERY_TIMEOUT, ""))
}

func TestSearchOfficers_UsesOfficerVariable(t *testing.T) {
	svc, db := newTestService()
	db.QueueResult(graph.QueryResult{
		Records: []map[string]any{{"o": map[string]any{"node_id": "5", "name": "Jane Smith"}}},
	})
	db.QueueResult(graph.QueryResult{
		Records: []map[string]any{{"total": int64(1)}},
	})

	result, err := svc.SearchOfficers(context.Background(), OfficerSearchParams{Name: "smith"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalCount)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "Jane Smith", result.Results[0]["name"])
}

func TestGetEntityDetails_NotFound(t *testing.T) {
	svc, db := newTestService()
	db.QueueResult(graph.QueryResult{Records: []map[string]any{}})

	_, err := svc.GetEntityDetails(context.Background(), "missing", true)

	require.Error(t, err)
	assert.ErrorIs(t, err, types.NewError(types.NOT_FOUND, ""))
}

func TestGetEntityDetails_RequiresNodeID(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetEntityDetails(context.Background(), "", true)
	require.Error(t, err)
	assert.True(t, types.IsValidation(err))
}

func TestGetEntityDetails(t *testing.T) {
	svc, db := newTestService()
	db.QueueResult(graph.QueryResult{
		Records: []map[string]any{{
			"e":             map[string]any{"node_id": "1", "name": "Alpha Holdings"},
			"relationships": []any{map[string]any{"relationship": "OFFICER_OF"}},
		}},
		ElapsedMS: 4,
	})

	details, err := svc.GetEntityDetails(context.Background(), "1", true)
	require.NoError(t, err)

	entity, ok := details["entity"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Alpha Holdings", entity["name"])
	assert.NotNil(t, details["relationships"])
}

func TestGetStatistics(t *testing.T) {
	svc, db := newTestService()
	db.QueueResult(graph.QueryResult{
		Records:   []map[string]any{{"entity_count": int64(100)}},
		ElapsedMS: 7,
	})

	result, err := svc.GetStatistics(context.Background(), "overview")
	require.NoError(t, err)

	assert.Equal(t, "overview", result.StatType)
	require.Len(t, result.Results, 1)
}

func TestGetDatabaseInfo_ToleratesSectionFailure(t *testing.T) {
	svc, db := newTestService()
	db.SetQueryError(types.NewError(types.QUERY_FAILED, "boom"))

	info := svc.GetDatabaseInfo(context.Background())

	assert.Empty(t, info.NodeCounts)
	assert.Empty(t, info.RelationshipCounts)
}
