package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

func TestConnections_Plan(t *testing.T) {
	plan, err := Connections("10000001", []string{"officer_of"}, 3, []string{"Entity"}, 50)
	require.NoError(t, err)

	assert.Contains(t, plan.Text, "[r:OFFICER_OF*1..3]")
	assert.Contains(t, plan.Text, "connected.node_id <> $start_node_id")
	assert.Contains(t, plan.Text, "'Entity' IN labels(connected)")
	assert.Contains(t, plan.Text, "path_rels[0] as first_relationship")
	assert.Contains(t, plan.Text, "ORDER BY distance, connected.name")
	assert.Equal(t, "10000001", plan.Params["start_node_id"])
	assert.Equal(t, 50, plan.Params["limit"])

	// Depth is validated and spliced into the pattern, never parameterized.
	assert.NotContains(t, plan.Params, "max_depth")
}

func TestConnections_NoFilters(t *testing.T) {
	plan, err := Connections("10000001", nil, 2, nil, 10)
	require.NoError(t, err)

	assert.Contains(t, plan.Text, "[r*1..2]")
	assert.NotContains(t, plan.Text, "IN labels(connected)")
}

func TestConnections_Validation(t *testing.T) {
	tests := []struct {
		name    string
		startID string
		depth   int
		limit   int
	}{
		{"missing start", "", 2, 10},
		{"depth zero", "10000001", 0, 10},
		{"depth too deep", "10000001", 6, 10},
		{"limit zero", "10000001", 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Connections(tt.startID, nil, tt.depth, nil, tt.limit)
			require.Error(t, err)
			assert.True(t, types.IsValidation(err))
		})
	}
}

func TestShortestPaths_Plan(t *testing.T) {
	plan, err := ShortestPaths("10000001", "10000002", 6, nil, 10)
	require.NoError(t, err)

	assert.Contains(t, plan.Text, "allShortestPaths((start)-[*..6]-(end))")
	assert.Contains(t, plan.Text, "length(path) as path_length")
	assert.Contains(t, plan.Text, "relationship_types")
	assert.Contains(t, plan.Text, "path_nodes")
	assert.Contains(t, plan.Text, "ORDER BY path_length")
	assert.Equal(t, "10000001", plan.Params["start_node_id"])
	assert.Equal(t, "10000002", plan.Params["end_node_id"])
}

func TestShortestPaths_Validation(t *testing.T) {
	_, err := ShortestPaths("a", "a", 6, nil, 10)
	require.Error(t, err)
	assert.True(t, types.IsValidation(err))

	_, err = ShortestPaths("a", "b", 11, nil, 10)
	require.Error(t, err)
	assert.True(t, types.IsValidation(err))

	_, err = ShortestPaths("", "b", 6, nil, 10)
	require.Error(t, err)
	assert.True(t, types.IsValidation(err))
}

func TestCommonConnections_Plan(t *testing.T) {
	plan, err := CommonConnections([]string{"a", "b", "c"}, nil, 2, 20)
	require.NoError(t, err)

	assert.Contains(t, plan.Text, "source.node_id IN $node_ids")
	assert.Contains(t, plan.Text, "NOT common.node_id IN $node_ids")
	assert.Contains(t, plan.Text, "size(connected_sources) >= size($node_ids)")
	assert.Contains(t, plan.Text, "ORDER BY connection_count DESC, total_neighbors DESC")
	assert.Equal(t, []string{"a", "b", "c"}, plan.Params["node_ids"])
}

func TestCommonConnections_RequiresTwoNodes(t *testing.T) {
	_, err := CommonConnections([]string{"only-one"}, nil, 2, 20)
	require.Error(t, err)
	assert.True(t, types.IsValidation(err))
	assert.Contains(t, err.Error(), "at least 2")

	_, err = CommonConnections(nil, nil, 2, 20)
	require.Error(t, err)
	assert.True(t, types.IsValidation(err))
}

func TestNetworkPatterns_Variants(t *testing.T) {
	tests := []struct {
		name     string
		pattern  PatternType
		expected []string
	}{
		{
			name:     "hub",
			pattern:  PatternHub,
			expected: []string{"connection_count >= $min_connections", "ORDER BY connection_count DESC"},
		},
		{
			name:     "bridge",
			pattern:  PatternBridge,
			expected: []string{"neighbor.sourceID", "communities_connected >= 2"},
		},
		{
			name:     "cluster",
			pattern:  PatternCluster,
			expected: []string{"(a)--(b)--(c)--(a)", "cluster_strength"},
		},
		{
			name:     "unknown falls back",
			pattern:  PatternType("centrality"),
			expected: []string{"min(length(path)) as distance", "ORDER BY distance, connection_count DESC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := NetworkPatterns("10000001", tt.pattern, 3, 5, 20)
			require.NoError(t, err)
			for _, fragment := range tt.expected {
				assert.Contains(t, plan.Text, fragment)
			}
			assert.Equal(t, 5, plan.Params["min_connections"])
		})
	}
}

func TestTemporalAnalysis_Plan(t *testing.T) {
	plan, err := TemporalAnalysis("10000001", "incorporation_date", 365, 50)
	require.NoError(t, err)

	assert.Contains(t, plan.Text, "duration.inDays(date(center.incorporation_date), date(related.incorporation_date)).days")
	assert.Contains(t, plan.Text, "abs(day_diff) <= $time_window_days")
	assert.Contains(t, plan.Text, "'same_day'")
	assert.Contains(t, plan.Text, "ORDER BY abs(day_diff)")
	assert.Equal(t, 365, plan.Params["time_window_days"])
}

func TestTemporalAnalysis_SanitizesDateField(t *testing.T) {
	plan, err := TemporalAnalysis("10000001", "Incorporation Date; DROP", 30, 10)
	require.NoError(t, err)

	assert.NotContains(t, plan.Text, ";")
	assert.NotContains(t, plan.Text, "DROP")
	assert.Equal(t, 1, strings.Count(plan.Text, "WHERE center."))
}

func TestComplianceRisk_Plan(t *testing.T) {
	plan, err := ComplianceRisk("10000001", nil, 3, 30)
	require.NoError(t, err)

	assert.Contains(t, plan.Text, "risky.jurisdiction IN $risk_jurisdictions")
	assert.Contains(t, plan.Text, "CONTAINS 'active' THEN 'high'")
	assert.Contains(t, plan.Text, "WHEN risky.status IS NULL THEN 'medium'")

	// Nil jurisdiction list falls back to the built-in risk set.
	assert.Equal(t, DefaultRiskJurisdictions, plan.Params["risk_jurisdictions"])
}

func TestComplianceRisk_CustomJurisdictions(t *testing.T) {
	plan, err := ComplianceRisk("10000001", []string{"PAN", "VGB"}, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"PAN", "VGB"}, plan.Params["risk_jurisdictions"])
}
