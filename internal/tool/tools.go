package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/markramm/offshoreleaks-data-packages/internal/export"
	"github.com/markramm/offshoreleaks-data-packages/internal/service"
	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

// NewServiceRegistry builds a registry exposing the query service's
// operations as tools.
func NewServiceRegistry(svc *service.Service) *Registry {
	r := NewRegistry()

	r.Register(&funcTool{
		name:        "search_entities",
		description: "Search offshore entities by name, jurisdiction, status, or incorporation date",
		schema:      searchEntitiesSchema,
		call: func(ctx context.Context, args map[string]any) (string, error) {
			var params service.EntitySearchParams
			if err := decodeArgs(args, &params); err != nil {
				return "", err
			}
			result, err := svc.SearchEntities(ctx, params)
			if err != nil {
				return "", err
			}
			return renderSearchResult("Entity search", result)
		},
	})

	r.Register(&funcTool{
		name:        "search_officers",
		description: "Search officers (people and organizations) by name or country",
		schema:      searchOfficersSchema,
		call: func(ctx context.Context, args map[string]any) (string, error) {
			var params service.OfficerSearchParams
			if err := decodeArgs(args, &params); err != nil {
				return "", err
			}
			result, err := svc.SearchOfficers(ctx, params)
			if err != nil {
				return "", err
			}
			return renderSearchResult("Officer search", result)
		},
	})

	r.Register(&funcTool{
		name:        "search_intermediaries",
		description: "Search intermediaries (law firms, banks, agents) by name or country",
		schema:      searchOfficersSchema,
		call: func(ctx context.Context, args map[string]any) (string, error) {
			var params service.OfficerSearchParams
			if err := decodeArgs(args, &params); err != nil {
				return "", err
			}
			result, err := svc.SearchIntermediaries(ctx, params)
			if err != nil {
				return "", err
			}
			return renderSearchResult("Intermediary search", result)
		},
	})

	r.Register(&funcTool{
		name:        "get_entity_details",
		description: "Get one entity by node id, optionally with its relationships",
		schema: objectSchema(map[string]any{
			"node_id":               map[string]any{"type": "string"},
			"include_relationships": map[string]any{"type": "boolean"},
		}, "node_id"),
		call: func(ctx context.Context, args map[string]any) (string, error) {
			nodeID, _ := args["node_id"].(string)
			include := true
			if v, ok := args["include_relationships"].(bool); ok {
				include = v
			}
			details, err := svc.GetEntityDetails(ctx, nodeID, include)
			if err != nil {
				return "", err
			}
			return renderJSON("Entity details", details)
		},
	})

	r.Register(&funcTool{
		name:        "get_connections",
		description: "Explore connections from a node via bounded-depth traversal",
		schema: objectSchema(map[string]any{
			"start_node_id":      map[string]any{"type": "string"},
			"relationship_types": stringArraySchema,
			"max_depth":          map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
			"node_types":         stringArraySchema,
			"limit":              map[string]any{"type": "integer"},
		}, "start_node_id"),
		call: func(ctx context.Context, args map[string]any) (string, error) {
			var params service.ConnectionsParams
			if err := decodeArgs(args, &params); err != nil {
				return "", err
			}
			result, err := svc.GetConnections(ctx, params)
			if err != nil {
				return "", err
			}
			return renderSearchResult("Connections", result)
		},
	})

	r.Register(&funcTool{
		name:        "find_shortest_paths",
		description: "Find shortest paths between two nodes",
		schema: objectSchema(map[string]any{
			"start_node_id":      map[string]any{"type": "string"},
			"end_node_id":        map[string]any{"type": "string"},
			"max_depth":          map[string]any{"type": "integer", "minimum": 1, "maximum": 10},
			"relationship_types": stringArraySchema,
			"limit":              map[string]any{"type": "integer"},
		}, "start_node_id", "end_node_id"),
		call: func(ctx context.Context, args map[string]any) (string, error) {
			var params service.ShortestPathsParams
			if err := decodeArgs(args, &params); err != nil {
				return "", err
			}
			result, err := svc.FindShortestPaths(ctx, params)
			if err != nil {
				return "", err
			}
			return renderSearchResult("Shortest paths", result)
		},
	})

	r.Register(&funcTool{
		name:        "analyze_network_patterns",
		description: "Detect hub, bridge, or cluster patterns around a node",
		schema: objectSchema(map[string]any{
			"node_id":         map[string]any{"type": "string"},
			"pattern_type":    map[string]any{"type": "string", "enum": []string{"hub", "bridge", "cluster"}},
			"max_depth":       map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
			"min_connections": map[string]any{"type": "integer"},
			"limit":           map[string]any{"type": "integer"},
		}, "node_id"),
		call: func(ctx context.Context, args map[string]any) (string, error) {
			var params service.NetworkPatternsParams
			if err := decodeArgs(args, &params); err != nil {
				return "", err
			}
			result, err := svc.AnalyzeNetworkPatterns(ctx, params)
			if err != nil {
				return "", err
			}
			return renderSearchResult("Network patterns", result)
		},
	})

	r.Register(&funcTool{
		name:        "find_common_connections",
		description: "Find nodes connected to all of the given nodes",
		schema: objectSchema(map[string]any{
			"node_ids":           stringArraySchema,
			"relationship_types": stringArraySchema,
			"max_depth":          map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
			"limit":              map[string]any{"type": "integer"},
		}, "node_ids"),
		call: func(ctx context.Context, args map[string]any) (string, error) {
			var params service.CommonConnectionsParams
			if err := decodeArgs(args, &params); err != nil {
				return "", err
			}
			result, err := svc.FindCommonConnections(ctx, params)
			if err != nil {
				return "", err
			}
			return renderSearchResult("Common connections", result)
		},
	})

	r.Register(&funcTool{
		name:        "temporal_analysis",
		description: "Relate nearby nodes by a shared date field within a day window",
		schema: objectSchema(map[string]any{
			"node_id":          map[string]any{"type": "string"},
			"date_field":       map[string]any{"type": "string"},
			"time_window_days": map[string]any{"type": "integer"},
			"limit":            map[string]any{"type": "integer"},
		}, "node_id"),
		call: func(ctx context.Context, args map[string]any) (string, error) {
			var params service.TemporalAnalysisParams
			if err := decodeArgs(args, &params); err != nil {
				return "", err
			}
			result, err := svc.TemporalAnalysis(ctx, params)
			if err != nil {
				return "", err
			}
			return renderSearchResult("Temporal analysis", result)
		},
	})

	r.Register(&funcTool{
		name:        "compliance_risk_analysis",
		description: "Find connected nodes in high-risk jurisdictions",
		schema: objectSchema(map[string]any{
			"node_id":            map[string]any{"type": "string"},
			"risk_jurisdictions": stringArraySchema,
			"max_depth":          map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
			"limit":              map[string]any{"type": "integer"},
		}, "node_id"),
		call: func(ctx context.Context, args map[string]any) (string, error) {
			var params service.ComplianceRiskParams
			if err := decodeArgs(args, &params); err != nil {
				return "", err
			}
			result, err := svc.ComplianceRiskAnalysis(ctx, params)
			if err != nil {
				return "", err
			}
			return renderSearchResult("Compliance risk", result)
		},
	})

	r.Register(&funcTool{
		name:        "get_statistics",
		description: "Get database statistics aggregates",
		schema: objectSchema(map[string]any{
			"stat_type": map[string]any{
				"type": "string",
				"enum": []string{"overview", "by_source", "by_jurisdiction", "relationship_counts"},
			},
		}),
		call: func(ctx context.Context, args map[string]any) (string, error) {
			statType, _ := args["stat_type"].(string)
			if statType == "" {
				statType = "overview"
			}
			result, err := svc.GetStatistics(ctx, statType)
			if err != nil {
				return "", err
			}
			return renderJSON("Statistics ("+statType+")", result)
		},
	})

	r.Register(&funcTool{
		name:        "get_database_info",
		description: "Get node and relationship breakdowns for the database",
		schema:      objectSchema(map[string]any{}),
		call: func(ctx context.Context, args map[string]any) (string, error) {
			return renderJSON("Database info", svc.GetDatabaseInfo(ctx))
		},
	})

	r.Register(&funcTool{
		name:        "export_results",
		description: "Run an entity search and render the results as JSON or CSV",
		schema: objectSchema(map[string]any{
			"format": map[string]any{"type": "string", "enum": []string{"json", "csv"}},
			"name":   map[string]any{"type": "string"},
			"limit":  map[string]any{"type": "integer"},
		}, "format"),
		call: func(ctx context.Context, args map[string]any) (string, error) {
			formatName, _ := args["format"].(string)
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return "", err
			}

			var params service.EntitySearchParams
			if err := decodeArgs(args, &params); err != nil {
				return "", err
			}
			result, err := svc.SearchEntities(ctx, params)
			if err != nil {
				return "", err
			}

			var buf bytes.Buffer
			if err := export.WriteResult(&buf, result, format, export.DefaultOptions()); err != nil {
				return "", err
			}
			return buf.String(), nil
		},
	})

	return r
}

var stringArraySchema = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

var searchEntitiesSchema = objectSchema(map[string]any{
	"name":                    map[string]any{"type": "string"},
	"jurisdiction":            map[string]any{"type": "string"},
	"country_codes":           map[string]any{"type": "string"},
	"company_type":            map[string]any{"type": "string"},
	"status":                  map[string]any{"type": "string"},
	"incorporation_date_from": map[string]any{"type": "string", "format": "date"},
	"incorporation_date_to":   map[string]any{"type": "string", "format": "date"},
	"source":                  map[string]any{"type": "string"},
	"limit":                   map[string]any{"type": "integer"},
	"offset":                  map[string]any{"type": "integer"},
})

var searchOfficersSchema = objectSchema(map[string]any{
	"name":          map[string]any{"type": "string"},
	"countries":     map[string]any{"type": "string"},
	"country_codes": map[string]any{"type": "string"},
	"source":        map[string]any{"type": "string"},
	"limit":         map[string]any{"type": "integer"},
	"offset":        map[string]any{"type": "integer"},
})

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// decodeArgs round-trips loose JSON arguments into a typed parameter struct.
// Type mismatches fail loudly; unknown fields are ignored so tools can share
// argument maps.
func decodeArgs(args map[string]any, out any) error {
	payload, err := json.Marshal(args)
	if err != nil {
		return types.NewValidationError("invalid tool arguments: " + err.Error())
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return types.NewValidationError("invalid tool arguments: " + err.Error())
	}
	return nil
}

func renderSearchResult(title string, result service.SearchResult) (string, error) {
	header := fmt.Sprintf("%s: %d of %d results (offset %d)\n",
		title, result.ReturnedCount, result.TotalCount, result.Offset)
	body, err := json.MarshalIndent(result.Results, "", "  ")
	if err != nil {
		return "", types.WrapError(types.QUERY_FAILED, "failed to render results", err)
	}
	return header + string(body), nil
}

func renderJSON(title string, data any) (string, error) {
	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", types.WrapError(types.QUERY_FAILED, "failed to render results", err)
	}
	return title + "\n" + string(body), nil
}
