package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markramm/offshoreleaks-data-packages/internal/graph"
	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

func TestGetConnections(t *testing.T) {
	svc, db := newTestService()
	db.QueueResult(graph.QueryResult{
		Records: []map[string]any{
			{
				"connected":          map[string]any{"node_id": "2", "name": "Beta Ltd"},
				"distance":           int64(1),
				"first_relationship": map[string]any{"_type": "OFFICER_OF"},
			},
		},
		ElapsedMS: 9,
	})

	result, err := svc.GetConnections(context.Background(), ConnectionsParams{
		StartNodeID: "1",
	})
	require.NoError(t, err)

	// Traversals report no independent total: total equals returned.
	assert.Equal(t, result.ReturnedCount, result.TotalCount)
	assert.Equal(t, 1, result.ReturnedCount)

	row := result.Results[0]
	assert.Equal(t, int64(1), row["distance"])
	node, ok := row["node"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Beta Ltd", node["name"])

	// Defaults: depth 2, limit 50.
	calls := db.QueryCalls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Cypher, "*1..2]")
	assert.Equal(t, 50, calls[0].Params["limit"])
}

func TestGetConnections_RequiresStartNode(t *testing.T) {
	svc, db := newTestService()

	_, err := svc.GetConnections(context.Background(), ConnectionsParams{})
	require.Error(t, err)
	assert.True(t, types.IsValidation(err))
	assert.Empty(t, db.QueryCalls())
}

func TestFindShortestPaths_AbsentPathIsEmptyNotError(t *testing.T) {
	svc, db := newTestService()
	db.QueueResult(graph.QueryResult{Records: []map[string]any{}})

	result, err := svc.FindShortestPaths(context.Background(), ShortestPathsParams{
		StartNodeID: "1",
		EndNodeID:   "2",
	})

	require.NoError(t, err)
	assert.Zero(t, result.TotalCount)
	assert.Zero(t, result.ReturnedCount)
	assert.Empty(t, result.Results)
}

func TestFindShortestPaths_Shape(t *testing.T) {
	svc, db := newTestService()
	db.QueueResult(graph.QueryResult{
		Records: []map[string]any{
			{
				"path_length":        int64(2),
				"relationship_types": []any{"OFFICER_OF", "REGISTERED_ADDRESS"},
				"path_nodes":         []any{map[string]any{"node_id": "1"}, map[string]any{"node_id": "3"}, map[string]any{"node_id": "2"}},
			},
		},
	})

	result, err := svc.FindShortestPaths(context.Background(), ShortestPathsParams{
		StartNodeID: "1",
		EndNodeID:   "2",
	})
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	row := result.Results[0]
	assert.Equal(t, int64(2), row["path_length"])
	assert.Len(t, row["relationship_types"], 2)
	assert.Len(t, row["path_nodes"], 3)
}

func TestAnalyzeNetworkPatterns_ShapePerPattern(t *testing.T) {
	tests := []struct {
		name         string
		patternType  string
		record       map[string]any
		expectedKeys []string
	}{
		{
			name:        "hub default",
			patternType: "",
			record: map[string]any{
				"connected":          map[string]any{"node_id": "2"},
				"connection_count":   int64(12),
				"relationship_types": []any{"OFFICER_OF"},
				"neighbor_types":     []any{"Entity"},
			},
			expectedKeys: []string{"node", "connection_count", "relationship_types", "neighbor_types"},
		},
		{
			name:        "bridge",
			patternType: "bridge",
			record: map[string]any{
				"bridge":                map[string]any{"node_id": "2"},
				"communities_connected": int64(3),
				"total_connections":     int64(40),
			},
			expectedKeys: []string{"node", "communities_connected", "total_connections"},
		},
		{
			name:        "cluster",
			patternType: "cluster",
			record: map[string]any{
				"cluster_nodes":    []any{"a", "b", "c"},
				"cluster_strength": int64(6),
				"node_types":       []any{"Entity", "Officer", "Entity"},
			},
			expectedKeys: []string{"cluster_nodes", "cluster_strength", "node_types"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, db := newTestService()
			db.QueueResult(graph.QueryResult{Records: []map[string]any{tt.record}})

			result, err := svc.AnalyzeNetworkPatterns(context.Background(), NetworkPatternsParams{
				NodeID:      "1",
				PatternType: tt.patternType,
			})
			require.NoError(t, err)
			require.Len(t, result.Results, 1)

			for _, key := range tt.expectedKeys {
				assert.Contains(t, result.Results[0], key)
			}
		})
	}
}

func TestFindCommonConnections_RequiresTwoIDs(t *testing.T) {
	svc, db := newTestService()

	_, err := svc.FindCommonConnections(context.Background(), CommonConnectionsParams{
		NodeIDs: []string{"only-one"},
	})

	require.Error(t, err)
	assert.True(t, types.IsValidation(err))
	assert.Empty(t, db.QueryCalls())
}

func TestFindCommonConnections(t *testing.T) {
	svc, db := newTestService()
	db.QueueResult(graph.QueryResult{
		Records: []map[string]any{
			{
				"common":             map[string]any{"node_id": "9", "name": "Shared Intermediary"},
				"connected_sources":  []any{"1", "2"},
				"connection_count":   int64(2),
				"total_neighbors":    int64(15),
				"relationship_types": []any{"INTERMEDIARY_OF"},
			},
		},
	})

	result, err := svc.FindCommonConnections(context.Background(), CommonConnectionsParams{
		NodeIDs: []string{"1", "2"},
	})
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	row := result.Results[0]
	assert.Contains(t, row, "common_node")
	assert.Equal(t, int64(2), row["connection_count"])
}

func TestTemporalAnalysis_Defaults(t *testing.T) {
	svc, db := newTestService()
	db.QueueResult(graph.QueryResult{Records: []map[string]any{}})

	_, err := svc.TemporalAnalysis(context.Background(), TemporalAnalysisParams{NodeID: "1"})
	require.NoError(t, err)

	calls := db.QueryCalls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Cypher, "incorporation_date")
	assert.Equal(t, 365, calls[0].Params["time_window_days"])
	assert.Equal(t, 50, calls[0].Params["limit"])
}

func TestComplianceRiskAnalysis_DefaultJurisdictions(t *testing.T) {
	svc, db := newTestService()
	db.QueueResult(graph.QueryResult{
		Records: []map[string]any{
			{
				"risky":              map[string]any{"node_id": "7"},
				"distance":           int64(2),
				"risk_level":         "high",
				"jurisdiction":       "PAN",
				"connection_count":   int64(8),
				"relationship_types": []any{"OFFICER_OF"},
				"connected_types":    []any{"Entity"},
			},
		},
	})

	result, err := svc.ComplianceRiskAnalysis(context.Background(), ComplianceRiskParams{NodeID: "1"})
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, "high", result.Results[0]["risk_level"])

	calls := db.QueryCalls()
	require.Len(t, calls, 1)
	jurisdictions, ok := calls[0].Params["risk_jurisdictions"].([]string)
	require.True(t, ok)
	assert.Contains(t, jurisdictions, "PAN")
	assert.Contains(t, jurisdictions, "VGB")
}
