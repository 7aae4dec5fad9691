package query

import (
	"fmt"

	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

// PatternType selects a network-pattern heuristic.
type PatternType string

const (
	PatternHub     PatternType = "hub"
	PatternBridge  PatternType = "bridge"
	PatternCluster PatternType = "cluster"
)

// DefaultRiskJurisdictions is the fixed list of known secrecy jurisdictions
// used when the caller does not supply one.
var DefaultRiskJurisdictions = []string{
	"VGB", "CYM", "BMU", "BHS", "PAN", "CHE", "LUX",
	"MLT", "CYP", "SYC", "JEY", "GGY", "IMN",
}

// NetworkPatterns builds one of three traversal heuristics around a node.
// Hub ranks neighborhood nodes by connection count, bridge by how many
// distinct communities a node reaches, cluster by triangle co-occurrence.
// An unrecognized pattern type falls back to a generic connectivity-by-
// distance plan; the fallback is intentional behavior, not an error.
func NetworkPatterns(nodeID string, patternType PatternType, maxDepth, minConnections, limit int) (Plan, error) {
	if nodeID == "" {
		return Plan{}, types.NewValidationError("node_id is required")
	}
	if maxDepth < 1 || maxDepth > MaxConnectionDepth {
		return Plan{}, types.NewValidationError(
			fmt.Sprintf("max_depth must be between 1 and %d", MaxConnectionDepth))
	}
	if minConnections < 1 {
		return Plan{}, types.NewValidationError("min_connections must be positive")
	}
	if limit < 1 {
		return Plan{}, types.NewValidationError("limit must be positive")
	}

	params := map[string]any{
		"node_id":         nodeID,
		"min_connections": minConnections,
		"limit":           limit,
	}

	var text string

	switch patternType {
	case PatternHub:
		text = fmt.Sprintf(`MATCH (center {node_id: $node_id})-[*1..%d]-(connected)
WHERE connected.node_id <> $node_id
WITH DISTINCT connected
MATCH (connected)-[r]-(neighbor)
WITH connected,
     count(DISTINCT neighbor) as connection_count,
     collect(DISTINCT type(r)) as relationship_types,
     collect(DISTINCT labels(neighbor)[0]) as neighbor_types
WHERE connection_count >= $min_connections
RETURN connected, connection_count, relationship_types, neighbor_types
ORDER BY connection_count DESC
LIMIT $limit`, maxDepth)

	case PatternBridge:
		text = fmt.Sprintf(`MATCH (center {node_id: $node_id})-[*1..%d]-(bridge)
WHERE bridge.node_id <> $node_id
WITH DISTINCT bridge
MATCH (bridge)-[r]-(neighbor)
WITH bridge,
     count(DISTINCT neighbor.sourceID) as communities_connected,
     count(DISTINCT neighbor) as total_connections
WHERE communities_connected >= 2 AND total_connections >= $min_connections
RETURN bridge, communities_connected, total_connections
ORDER BY communities_connected DESC, total_connections DESC
LIMIT $limit`, maxDepth)

	case PatternCluster:
		text = fmt.Sprintf(`MATCH (center {node_id: $node_id})-[*1..%d]-(a)
WHERE a.node_id <> $node_id
WITH DISTINCT a
MATCH (a)--(b)--(c)--(a)
WHERE a.node_id < b.node_id AND b.node_id < c.node_id
WITH [a.name, b.name, c.name] as cluster_nodes,
     count(*) as cluster_strength,
     [labels(a)[0], labels(b)[0], labels(c)[0]] as node_types
WHERE cluster_strength >= $min_connections
RETURN cluster_nodes, cluster_strength, node_types
ORDER BY cluster_strength DESC
LIMIT $limit`, maxDepth)

	default:
		// Generic connectivity-by-distance fallback.
		text = fmt.Sprintf(`MATCH path = (center {node_id: $node_id})-[*1..%d]-(connected)
WHERE connected.node_id <> $node_id
WITH connected, min(length(path)) as distance
MATCH (connected)-[r]-(neighbor)
WITH connected, distance, count(DISTINCT neighbor) as connection_count
WHERE connection_count >= $min_connections
RETURN connected, distance, connection_count
ORDER BY distance, connection_count DESC
LIMIT $limit`, maxDepth)
	}

	return Plan{Text: text, Params: params}, nil
}

// TemporalAnalysis builds a plan relating nodes near the center node by a
// shared date field. Related nodes within three hops that carry the field are
// filtered to |day difference| <= timeWindowDays and labeled before / after /
// same_day relative to the center node's value.
func TemporalAnalysis(nodeID, dateField string, timeWindowDays, limit int) (Plan, error) {
	if nodeID == "" {
		return Plan{}, types.NewValidationError("node_id is required")
	}
	if dateField == "" {
		dateField = "incorporation_date"
	}
	if timeWindowDays < 1 {
		return Plan{}, types.NewValidationError("time_window_days must be positive")
	}
	if limit < 1 {
		return Plan{}, types.NewValidationError("limit must be positive")
	}

	field := sanitizeProperty(dateField)

	text := fmt.Sprintf(`MATCH (center {node_id: $node_id})
WHERE center.%[1]s IS NOT NULL
MATCH (center)-[*1..3]-(related)
WHERE related.node_id <> $node_id AND related.%[1]s IS NOT NULL
WITH DISTINCT related, center,
     duration.inDays(date(center.%[1]s), date(related.%[1]s)).days as day_diff
WHERE abs(day_diff) <= $time_window_days
RETURN related,
       related.%[1]s as related_date,
       day_diff,
       labels(related) as node_types,
       CASE
           WHEN day_diff > 0 THEN 'after'
           WHEN day_diff < 0 THEN 'before'
           ELSE 'same_day'
       END as temporal_relationship
ORDER BY abs(day_diff)
LIMIT $limit`, field)

	return Plan{
		Text: text,
		Params: map[string]any{
			"node_id":          nodeID,
			"time_window_days": timeWindowDays,
			"limit":            limit,
		},
	}, nil
}

// ComplianceRisk builds a plan finding nodes within maxDepth whose
// jurisdiction or country codes intersect the risk set. Each match gets a
// coarse risk level from its status, ordered by (severity, distance,
// connection count descending).
func ComplianceRisk(nodeID string, riskJurisdictions []string, maxDepth, limit int) (Plan, error) {
	if nodeID == "" {
		return Plan{}, types.NewValidationError("node_id is required")
	}
	if maxDepth < 1 || maxDepth > MaxConnectionDepth {
		return Plan{}, types.NewValidationError(
			fmt.Sprintf("max_depth must be between 1 and %d", MaxConnectionDepth))
	}
	if limit < 1 {
		return Plan{}, types.NewValidationError("limit must be positive")
	}
	if len(riskJurisdictions) == 0 {
		riskJurisdictions = DefaultRiskJurisdictions
	}

	text := fmt.Sprintf(`MATCH path = (center {node_id: $node_id})-[*1..%d]-(risky)
WHERE risky.node_id <> $node_id
  AND (risky.jurisdiction IN $risk_jurisdictions
       OR risky.country_codes IN $risk_jurisdictions)
WITH DISTINCT risky, min(length(path)) as distance
MATCH (risky)-[r]-(neighbor)
WITH risky, distance,
     count(DISTINCT neighbor) as connection_count,
     collect(DISTINCT type(r)) as relationship_types,
     collect(DISTINCT labels(neighbor)[0]) as connected_types
RETURN risky, distance,
       CASE
           WHEN risky.status IS NULL THEN 'medium'
           WHEN toLower(risky.status) CONTAINS 'active' THEN 'high'
           ELSE 'low'
       END as risk_level,
       coalesce(risky.jurisdiction, risky.country_codes) as jurisdiction,
       connection_count, relationship_types, connected_types
ORDER BY CASE risk_level WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END,
         distance,
         connection_count DESC
LIMIT $limit`, maxDepth)

	return Plan{
		Text: text,
		Params: map[string]any{
			"node_id":            nodeID,
			"risk_jurisdictions": riskJurisdictions,
			"limit":              limit,
		},
	}, nil
}
