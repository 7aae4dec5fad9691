package service

import (
	"context"

	"github.com/markramm/offshoreleaks-data-packages/internal/query"
)

// GetConnections explores connections from a starting node via bounded-depth
// traversal. Each result carries the connected node, its distance from the
// start, and the first relationship on the path.
func (s *Service) GetConnections(ctx context.Context, params ConnectionsParams) (SearchResult, error) {
	if err := s.checkParams(params); err != nil {
		return SearchResult{}, err
	}
	if params.MaxDepth == 0 {
		params.MaxDepth = 2
	}
	if params.Limit == 0 {
		params.Limit = 50
	}

	plan, err := query.Connections(params.StartNodeID, params.RelationshipTypes,
		params.MaxDepth, params.NodeTypes, params.Limit)
	if err != nil {
		return SearchResult{}, err
	}

	return s.traversal(ctx, plan, params.Limit, func(record map[string]any) map[string]any {
		return map[string]any{
			"node":               record["connected"],
			"distance":           record["distance"],
			"first_relationship": record["first_relationship"],
		}
	})
}

// FindShortestPaths finds shortest paths between two nodes. Each result
// carries the path length, the ordered relationship-type sequence, and the
// ordered node list. An absent path yields an empty result, not an error.
func (s *Service) FindShortestPaths(ctx context.Context, params ShortestPathsParams) (SearchResult, error) {
	if err := s.checkParams(params); err != nil {
		return SearchResult{}, err
	}
	if params.MaxDepth == 0 {
		params.MaxDepth = 6
	}
	if params.Limit == 0 {
		params.Limit = 10
	}

	plan, err := query.ShortestPaths(params.StartNodeID, params.EndNodeID,
		params.MaxDepth, params.RelationshipTypes, params.Limit)
	if err != nil {
		return SearchResult{}, err
	}

	return s.traversal(ctx, plan, params.Limit, func(record map[string]any) map[string]any {
		return map[string]any{
			"path_length":        record["path_length"],
			"relationship_types": record["relationship_types"],
			"path_nodes":         record["path_nodes"],
		}
	})
}

// AnalyzeNetworkPatterns runs one of the hub/bridge/cluster heuristics around
// a node. The projection differs per pattern type; unrecognized types use the
// generic connectivity fallback projection.
func (s *Service) AnalyzeNetworkPatterns(ctx context.Context, params NetworkPatternsParams) (SearchResult, error) {
	if err := s.checkParams(params); err != nil {
		return SearchResult{}, err
	}
	if params.PatternType == "" {
		params.PatternType = string(query.PatternHub)
	}
	if params.MaxDepth == 0 {
		params.MaxDepth = 3
	}
	if params.MinConnections == 0 {
		params.MinConnections = 5
	}
	if params.Limit == 0 {
		params.Limit = 20
	}

	patternType := query.PatternType(params.PatternType)
	plan, err := query.NetworkPatterns(params.NodeID, patternType,
		params.MaxDepth, params.MinConnections, params.Limit)
	if err != nil {
		return SearchResult{}, err
	}

	return s.traversal(ctx, plan, params.Limit, func(record map[string]any) map[string]any {
		switch patternType {
		case query.PatternCluster:
			return map[string]any{
				"cluster_nodes":    record["cluster_nodes"],
				"cluster_strength": record["cluster_strength"],
				"node_types":       record["node_types"],
			}
		case query.PatternBridge:
			return map[string]any{
				"node":                  record["bridge"],
				"communities_connected": record["communities_connected"],
				"total_connections":     record["total_connections"],
			}
		case query.PatternHub:
			return map[string]any{
				"node":               record["connected"],
				"connection_count":   record["connection_count"],
				"relationship_types": record["relationship_types"],
				"neighbor_types":     record["neighbor_types"],
			}
		default:
			return map[string]any{
				"node":             record["connected"],
				"distance":         record["distance"],
				"connection_count": record["connection_count"],
			}
		}
	})
}

// FindCommonConnections finds nodes reachable from all of the given source
// nodes, ranked by reach and connectivity.
func (s *Service) FindCommonConnections(ctx context.Context, params CommonConnectionsParams) (SearchResult, error) {
	if err := s.checkParams(params); err != nil {
		return SearchResult{}, err
	}
	if params.MaxDepth == 0 {
		params.MaxDepth = 2
	}
	if params.Limit == 0 {
		params.Limit = 20
	}

	plan, err := query.CommonConnections(params.NodeIDs, params.RelationshipTypes,
		params.MaxDepth, params.Limit)
	if err != nil {
		return SearchResult{}, err
	}

	return s.traversal(ctx, plan, params.Limit, func(record map[string]any) map[string]any {
		return map[string]any{
			"common_node":        record["common"],
			"connected_sources":  record["connected_sources"],
			"connection_count":   record["connection_count"],
			"total_neighbors":    record["total_neighbors"],
			"relationship_types": record["relationship_types"],
		}
	})
}

// TemporalAnalysis relates nearby nodes by a shared date field within a
// day-difference window around the center node's value.
func (s *Service) TemporalAnalysis(ctx context.Context, params TemporalAnalysisParams) (SearchResult, error) {
	if err := s.checkParams(params); err != nil {
		return SearchResult{}, err
	}
	if params.DateField == "" {
		params.DateField = "incorporation_date"
	}
	if params.TimeWindowDays == 0 {
		params.TimeWindowDays = 365
	}
	if params.Limit == 0 {
		params.Limit = 50
	}

	plan, err := query.TemporalAnalysis(params.NodeID, params.DateField,
		params.TimeWindowDays, params.Limit)
	if err != nil {
		return SearchResult{}, err
	}

	return s.traversal(ctx, plan, params.Limit, func(record map[string]any) map[string]any {
		return map[string]any{
			"related_node":          record["related"],
			"related_date":          record["related_date"],
			"day_difference":        record["day_diff"],
			"node_types":            record["node_types"],
			"temporal_relationship": record["temporal_relationship"],
		}
	})
}

// ComplianceRiskAnalysis finds nodes near the center whose jurisdictions
// intersect the risk set, with a coarse risk level per match.
func (s *Service) ComplianceRiskAnalysis(ctx context.Context, params ComplianceRiskParams) (SearchResult, error) {
	if err := s.checkParams(params); err != nil {
		return SearchResult{}, err
	}
	if params.MaxDepth == 0 {
		params.MaxDepth = 3
	}
	if params.Limit == 0 {
		params.Limit = 30
	}

	plan, err := query.ComplianceRisk(params.NodeID, params.RiskJurisdictions,
		params.MaxDepth, params.Limit)
	if err != nil {
		return SearchResult{}, err
	}

	return s.traversal(ctx, plan, params.Limit, func(record map[string]any) map[string]any {
		return map[string]any{
			"risky_node":         record["risky"],
			"distance":           record["distance"],
			"risk_level":         record["risk_level"],
			"jurisdiction":       record["jurisdiction"],
			"connection_count":   record["connection_count"],
			"relationship_types": record["relationship_types"],
			"connected_types":    record["connected_types"],
		}
	})
}

// traversal executes a traversal plan and shapes each record. Traversal
// results are not paginated: total_count equals returned_count because no
// independent count query is issued for multi-hop traversals.
func (s *Service) traversal(ctx context.Context, plan query.Plan, limit int, shape func(map[string]any) map[string]any) (SearchResult, error) {
	result, err := s.db.Query(ctx, plan.Text, plan.Params, s.opts.QueryTimeout)
	if err != nil {
		return SearchResult{}, err
	}

	rows := make([]map[string]any, 0, len(result.Records))
	for _, record := range result.Records {
		rows = append(rows, shape(record))
	}

	elapsed := result.ElapsedMS
	return SearchResult{
		TotalCount:    len(rows),
		ReturnedCount: len(rows),
		Offset:        0,
		Limit:         limit,
		Results:       rows,
		QueryTimeMS:   &elapsed,
	}, nil
}
