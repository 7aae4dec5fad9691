// Package service orchestrates query templates, the database gateway, and
// result shaping into the uniform SearchResult envelope. This is the layer the
// REST API, the CLI, and the tool surface all delegate to.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/markramm/offshoreleaks-data-packages/internal/graph"
	"github.com/markramm/offshoreleaks-data-packages/internal/query"
	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

// Options configures service-level limits and timeouts.
type Options struct {
	QueryTimeout time.Duration
	DefaultLimit int
	MaxLimit     int
}

// DefaultOptions returns the standard service options.
func DefaultOptions() Options {
	return Options{
		QueryTimeout: 30 * time.Second,
		DefaultLimit: 20,
		MaxLimit:     100,
	}
}

// Service is the query service for the offshore leaks graph. Each method
// validates its input, builds a query plan, executes it through the gateway,
// and shapes the rows into the operation's result projection.
type Service struct {
	db       graph.Client
	opts     Options
	validate *validator.Validate
	logger   *slog.Logger
}

// New creates a Service backed by the given gateway.
func New(db graph.Client, opts Options, logger *slog.Logger) *Service {
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = DefaultOptions().QueryTimeout
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = DefaultOptions().DefaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = DefaultOptions().MaxLimit
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		db:       db,
		opts:     opts,
		validate: validator.New(),
		logger:   logger.With("component", "service"),
	}
}

// checkParams runs struct validation and converts failures into the
// validation bucket of the error taxonomy.
func (s *Service) checkParams(params any) error {
	if err := s.validate.Struct(params); err != nil {
		return types.NewValidationError(err.Error())
	}
	return nil
}

// limitOrDefault applies the default limit to a zero value and clamps the
// result to the configured maximum.
func (s *Service) limitOrDefault(limit int) int {
	if limit == 0 {
		limit = s.opts.DefaultLimit
	}
	if limit > s.opts.MaxLimit {
		limit = s.opts.MaxLimit
	}
	return limit
}

// SearchEntities searches for offshore entities matching the given filters.
func (s *Service) SearchEntities(ctx context.Context, params EntitySearchParams) (SearchResult, error) {
	if err := s.checkParams(params); err != nil {
		return SearchResult{}, err
	}
	params.Limit = s.limitOrDefault(params.Limit)

	plan, countPlan := query.SearchEntities(query.EntityFilters{
		Name:                  params.Name,
		Jurisdiction:          params.Jurisdiction,
		CountryCodes:          params.CountryCodes,
		CompanyType:           params.CompanyType,
		Status:                params.Status,
		IncorporationDateFrom: params.IncorporationDateFrom,
		IncorporationDateTo:   params.IncorporationDateTo,
		Source:                params.Source,
	}, params.Limit, params.Offset)

	return s.paginatedSearch(ctx, plan, countPlan, "e", params.Limit, params.Offset)
}

// SearchOfficers searches for officers matching the given filters.
func (s *Service) SearchOfficers(ctx context.Context, params OfficerSearchParams) (SearchResult, error) {
	if err := s.checkParams(params); err != nil {
		return SearchResult{}, err
	}
	params.Limit = s.limitOrDefault(params.Limit)

	plan, countPlan := query.SearchOfficers(query.OfficerFilters{
		Name:         params.Name,
		Countries:    params.Countries,
		CountryCodes: params.CountryCodes,
		Source:       params.Source,
	}, params.Limit, params.Offset)

	return s.paginatedSearch(ctx, plan, countPlan, "o", params.Limit, params.Offset)
}

// SearchIntermediaries searches for intermediaries matching the given filters.
func (s *Service) SearchIntermediaries(ctx context.Context, params OfficerSearchParams) (SearchResult, error) {
	if err := s.checkParams(params); err != nil {
		return SearchResult{}, err
	}
	params.Limit = s.limitOrDefault(params.Limit)

	plan, countPlan := query.SearchIntermediaries(query.OfficerFilters{
		Name:         params.Name,
		Countries:    params.Countries,
		CountryCodes: params.CountryCodes,
		Source:       params.Source,
	}, params.Limit, params.Offset)

	return s.paginatedSearch(ctx, plan, countPlan, "i", params.Limit, params.Offset)
}

// paginatedSearch executes a search plan plus its count companion and shapes
// the rows into a SearchResult. The result rows are the values of the single
// projected node variable, in query order.
func (s *Service) paginatedSearch(ctx context.Context, plan, countPlan query.Plan, nodeVar string, limit, offset int) (SearchResult, error) {
	result, err := s.db.Query(ctx, plan.Text, plan.Params, s.opts.QueryTimeout)
	if err != nil {
		return SearchResult{}, err
	}

	countResult, err := s.db.Query(ctx, countPlan.Text, countPlan.Params, s.opts.QueryTimeout)
	if err != nil {
		return SearchResult{}, err
	}

	totalCount := 0
	if len(countResult.Records) > 0 {
		totalCount = asInt(countResult.Records[0]["total"])
	}

	rows := make([]map[string]any, 0, len(result.Records))
	for _, record := range result.Records {
		if node, ok := record[nodeVar].(map[string]any); ok {
			rows = append(rows, node)
		}
	}

	elapsed := result.ElapsedMS
	return SearchResult{
		TotalCount:    totalCount,
		ReturnedCount: len(rows),
		Offset:        offset,
		Limit:         limit,
		Results:       rows,
		QueryTimeMS:   &elapsed,
	}, nil
}

// GetEntityDetails returns one entity and, optionally, its relationships.
// A missing entity surfaces as NOT_FOUND.
func (s *Service) GetEntityDetails(ctx context.Context, nodeID string, includeRelationships bool) (map[string]any, error) {
	if nodeID == "" {
		return nil, types.NewValidationError("node_id is required")
	}

	plan := query.EntityDetails(nodeID, includeRelationships)
	result, err := s.db.Query(ctx, plan.Text, plan.Params, s.opts.QueryTimeout)
	if err != nil {
		return nil, err
	}

	if len(result.Records) == 0 {
		return nil, types.NewError(types.NOT_FOUND, "entity not found: "+nodeID)
	}

	record := result.Records[0]
	elapsed := result.ElapsedMS
	return map[string]any{
		"entity":        record["e"],
		"relationships": record["relationships"],
		"query_time_ms": elapsed,
	}, nil
}

// GetStatistics returns one of the fixed statistics aggregates.
func (s *Service) GetStatistics(ctx context.Context, statType string) (StatisticsResult, error) {
	plan := query.Statistics(query.StatType(statType))

	result, err := s.db.Query(ctx, plan.Text, plan.Params, s.opts.QueryTimeout)
	if err != nil {
		return StatisticsResult{}, err
	}

	elapsed := result.ElapsedMS
	return StatisticsResult{
		StatType:    statType,
		Results:     result.Records,
		QueryTimeMS: &elapsed,
	}, nil
}

// GetDatabaseInfo returns node and relationship breakdowns. Each section is
// loaded independently; a failing section comes back empty instead of failing
// the whole call.
func (s *Service) GetDatabaseInfo(ctx context.Context) DatabaseInfo {
	info := DatabaseInfo{
		NodeCounts:         []map[string]any{},
		RelationshipCounts: []map[string]any{},
	}

	nodePlan := query.Statistics("")
	if result, err := s.db.Query(ctx, nodePlan.Text, nodePlan.Params, s.opts.QueryTimeout); err != nil {
		s.logger.Warn("failed to load node counts", "error", err)
	} else {
		info.NodeCounts = result.Records
	}

	relPlan := query.Statistics(query.StatRelationshipCounts)
	if result, err := s.db.Query(ctx, relPlan.Text, relPlan.Params, s.opts.QueryTimeout); err != nil {
		s.logger.Warn("failed to load relationship counts", "error", err)
	} else {
		info.RelationshipCounts = result.Records
	}

	return info
}

// asInt coerces count-query values, which the driver returns as int64.
func asInt(value any) int {
	switch v := value.(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
