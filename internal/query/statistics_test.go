package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatistics(t *testing.T) {
	tests := []struct {
		name     string
		statType StatType
		expected string
	}{
		{"overview", StatOverview, "entity_count, officer_count, intermediary_count"},
		{"by source", StatBySource, "n.sourceID as source"},
		{"by jurisdiction", StatByJurisdiction, "e.jurisdiction as jurisdiction"},
		{"relationship counts", StatRelationshipCounts, "type(r) as relationship_type"},
		{"unknown falls back to label counts", StatType("bogus"), "labels(n)[0] as node_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Statistics(tt.statType)
			assert.Contains(t, plan.Text, tt.expected)
			assert.Empty(t, plan.Params)
		})
	}
}
