package service

// EntitySearchParams are the validated inputs for entity search.
type EntitySearchParams struct {
	Name                  string `json:"name" validate:"omitempty,max=200"`
	Jurisdiction          string `json:"jurisdiction" validate:"omitempty,max=100"`
	CountryCodes          string `json:"country_codes" validate:"omitempty,max=100"`
	CompanyType           string `json:"company_type" validate:"omitempty,max=100"`
	Status                string `json:"status" validate:"omitempty,max=100"`
	IncorporationDateFrom string `json:"incorporation_date_from" validate:"omitempty,datetime=2006-01-02"`
	IncorporationDateTo   string `json:"incorporation_date_to" validate:"omitempty,datetime=2006-01-02"`
	Source                string `json:"source" validate:"omitempty,max=100"`
	Limit                 int    `json:"limit" validate:"omitempty,min=1,max=100"`
	Offset                int    `json:"offset" validate:"min=0"`
}

// OfficerSearchParams are the validated inputs for officer and intermediary
// search.
type OfficerSearchParams struct {
	Name         string `json:"name" validate:"omitempty,max=200"`
	Countries    string `json:"countries" validate:"omitempty,max=100"`
	CountryCodes string `json:"country_codes" validate:"omitempty,max=100"`
	Source       string `json:"source" validate:"omitempty,max=100"`
	Limit        int    `json:"limit" validate:"omitempty,min=1,max=100"`
	Offset       int    `json:"offset" validate:"min=0"`
}

// ConnectionsParams are the validated inputs for connection exploration.
type ConnectionsParams struct {
	StartNodeID       string   `json:"start_node_id" validate:"required"`
	RelationshipTypes []string `json:"relationship_types" validate:"omitempty,dive,max=100"`
	MaxDepth          int      `json:"max_depth" validate:"omitempty,min=1,max=5"`
	NodeTypes         []string `json:"node_types" validate:"omitempty,dive,max=100"`
	Limit             int      `json:"limit" validate:"omitempty,min=1,max=200"`
}

// ShortestPathsParams are the validated inputs for shortest-path search.
type ShortestPathsParams struct {
	StartNodeID       string   `json:"start_node_id" validate:"required"`
	EndNodeID         string   `json:"end_node_id" validate:"required"`
	MaxDepth          int      `json:"max_depth" validate:"omitempty,min=1,max=10"`
	RelationshipTypes []string `json:"relationship_types" validate:"omitempty,dive,max=100"`
	Limit             int      `json:"limit" validate:"omitempty,min=1,max=50"`
}

// NetworkPatternsParams are the validated inputs for pattern analysis.
type NetworkPatternsParams struct {
	NodeID         string `json:"node_id" validate:"required"`
	PatternType    string `json:"pattern_type" validate:"omitempty,max=50"`
	MaxDepth       int    `json:"max_depth" validate:"omitempty,min=1,max=5"`
	MinConnections int    `json:"min_connections" validate:"omitempty,min=1"`
	Limit          int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

// CommonConnectionsParams are the validated inputs for common-connection
// analysis. At least two node ids are required.
type CommonConnectionsParams struct {
	NodeIDs           []string `json:"node_ids" validate:"required,min=2,dive,required"`
	RelationshipTypes []string `json:"relationship_types" validate:"omitempty,dive,max=100"`
	MaxDepth          int      `json:"max_depth" validate:"omitempty,min=1,max=5"`
	Limit             int      `json:"limit" validate:"omitempty,min=1,max=100"`
}

// TemporalAnalysisParams are the validated inputs for temporal analysis.
type TemporalAnalysisParams struct {
	NodeID         string `json:"node_id" validate:"required"`
	DateField      string `json:"date_field" validate:"omitempty,max=100"`
	TimeWindowDays int    `json:"time_window_days" validate:"omitempty,min=1,max=3650"`
	Limit          int    `json:"limit" validate:"omitempty,min=1,max=200"`
}

// ComplianceRiskParams are the validated inputs for compliance risk analysis.
type ComplianceRiskParams struct {
	NodeID            string   `json:"node_id" validate:"required"`
	RiskJurisdictions []string `json:"risk_jurisdictions" validate:"omitempty,dive,max=10"`
	MaxDepth          int      `json:"max_depth" validate:"omitempty,min=1,max=5"`
	Limit             int      `json:"limit" validate:"omitempty,min=1,max=100"`
}

// SearchResult is the uniform envelope for all query operations.
//
// For paginated searches TotalCount comes from an independent count query.
// For graph-traversal operations TotalCount equals ReturnedCount: no second
// traversal is issued to count all reachable nodes. That asymmetry is a
// documented limitation, kept to avoid a second expensive traversal.
type SearchResult struct {
	TotalCount    int              `json:"total_count"`
	ReturnedCount int              `json:"returned_count"`
	Offset        int              `json:"offset"`
	Limit         int              `json:"limit"`
	Results       []map[string]any `json:"results"`
	QueryTimeMS   *int64           `json:"query_time_ms,omitempty"`
}

// StatisticsResult carries the rows of one statistics aggregate.
type StatisticsResult struct {
	StatType    string           `json:"stat_type"`
	Results     []map[string]any `json:"results"`
	QueryTimeMS *int64           `json:"query_time_ms,omitempty"`
}

// DatabaseInfo carries label and relationship breakdowns for the database.
// Sections that fail to load are returned empty rather than failing the call.
type DatabaseInfo struct {
	NodeCounts         []map[string]any `json:"node_counts"`
	RelationshipCounts []map[string]any `json:"relationship_counts"`
}
