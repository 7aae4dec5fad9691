package query

import (
	"fmt"
	"strings"

	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

// Depth bounds for traversal queries. Variable-length pattern bounds cannot be
// bound as parameters, so validated integers are spliced into the query text.
const (
	MaxConnectionDepth = 5
	MaxPathDepth       = 10
)

// Connections builds a bounded-depth traversal plan from a start node. The
// start node itself is excluded from results. relTypes restricts which
// relationship types are followed; nodeTypes restricts result nodes by label.
// Results are ordered by (distance, name) and capped at limit.
func Connections(startNodeID string, relTypes []string, maxDepth int, nodeTypes []string, limit int) (Plan, error) {
	if startNodeID == "" {
		return Plan{}, types.NewValidationError("start_node_id is required")
	}
	if maxDepth < 1 || maxDepth > MaxConnectionDepth {
		return Plan{}, types.NewValidationError(
			fmt.Sprintf("max_depth must be between 1 and %d", MaxConnectionDepth))
	}
	if limit < 1 {
		return Plan{}, types.NewValidationError("limit must be positive")
	}

	nodeFilter := ""
	if len(nodeTypes) > 0 {
		labelConds := make([]string, 0, len(nodeTypes))
		for _, nt := range nodeTypes {
			labelConds = append(labelConds,
				fmt.Sprintf("'%s' IN labels(connected)", sanitizeLabel(nt)))
		}
		nodeFilter = " AND (" + strings.Join(labelConds, " OR ") + ")"
	}

	text := fmt.Sprintf(`MATCH (start {node_id: $start_node_id})
MATCH path = (start)-[r%s*1..%d]-(connected)
WHERE connected.node_id <> $start_node_id%s
WITH connected, relationships(path) as path_rels, length(path) as distance
RETURN DISTINCT connected,
       distance,
       path_rels[0] as first_relationship
ORDER BY distance, connected.name
LIMIT $limit`, relTypePattern(relTypes), maxDepth, nodeFilter)

	return Plan{
		Text: text,
		Params: map[string]any{
			"start_node_id": startNodeID,
			"limit":         limit,
		},
	}, nil
}

// ShortestPaths builds a shortest-path plan between two fixed nodes, bounded
// by maxDepth. Each returned path carries its length, the ordered relationship
// type sequence, and the ordered node list; paths are ordered by length
// ascending and capped at limit.
func ShortestPaths(startNodeID, endNodeID string, maxDepth int, relTypes []string, limit int) (Plan, error) {
	if startNodeID == "" || endNodeID == "" {
		return Plan{}, types.NewValidationError("start_node_id and end_node_id are required")
	}
	if startNodeID == endNodeID {
		return Plan{}, types.NewValidationError("start and end nodes must differ")
	}
	if maxDepth < 1 || maxDepth > MaxPathDepth {
		return Plan{}, types.NewValidationError(
			fmt.Sprintf("max_depth must be between 1 and %d", MaxPathDepth))
	}
	if limit < 1 {
		return Plan{}, types.NewValidationError("limit must be positive")
	}

	text := fmt.Sprintf(`MATCH (start {node_id: $start_node_id}), (end {node_id: $end_node_id})
MATCH path = allShortestPaths((start)-[%s*..%d]-(end))
RETURN length(path) as path_length,
       [rel IN relationships(path) | type(rel)] as relationship_types,
       [n IN nodes(path) | n] as path_nodes
ORDER BY path_length
LIMIT $limit`, relTypePattern(relTypes), maxDepth)

	return Plan{
		Text: text,
		Params: map[string]any{
			"start_node_id": startNodeID,
			"end_node_id":   endNodeID,
			"limit":         limit,
		},
	}, nil
}

// CommonConnections builds a plan that finds nodes reachable from every one
// of the given source nodes within maxDepth, ranked by (sources reached,
// total neighbor count) descending. At least two node ids are required.
func CommonConnections(nodeIDs []string, relTypes []string, maxDepth int, limit int) (Plan, error) {
	if len(nodeIDs) < 2 {
		return Plan{}, types.NewValidationError("at least 2 node_ids are required")
	}
	if maxDepth < 1 || maxDepth > MaxConnectionDepth {
		return Plan{}, types.NewValidationError(
			fmt.Sprintf("max_depth must be between 1 and %d", MaxConnectionDepth))
	}
	if limit < 1 {
		return Plan{}, types.NewValidationError("limit must be positive")
	}

	text := fmt.Sprintf(`MATCH (source)
WHERE source.node_id IN $node_ids
MATCH (source)-[%s*1..%d]-(common)
WHERE NOT common.node_id IN $node_ids
WITH common, collect(DISTINCT source.node_id) as connected_sources
WHERE size(connected_sources) >= size($node_ids)
MATCH (common)-[r]-(neighbor)
WITH common, connected_sources,
     size(connected_sources) as connection_count,
     count(DISTINCT neighbor) as total_neighbors,
     collect(DISTINCT type(r)) as relationship_types
RETURN common, connected_sources, connection_count, total_neighbors, relationship_types
ORDER BY connection_count DESC, total_neighbors DESC
LIMIT $limit`, relTypePattern(relTypes), maxDepth)

	return Plan{
		Text: text,
		Params: map[string]any{
			"node_ids": nodeIDs,
			"limit":    limit,
		},
	}, nil
}
