package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/markramm/offshoreleaks-data-packages/internal/observability"
	"github.com/markramm/offshoreleaks-data-packages/internal/resilience"
	"github.com/markramm/offshoreleaks-data-packages/internal/service"
	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

// Handlers holds the dependencies of the REST endpoints.
type Handlers struct {
	svc     *service.Service
	manager *resilience.Manager
	checker *resilience.HealthChecker
	logger  *slog.Logger
}

// NewHandlers creates the endpoint handlers.
func NewHandlers(svc *service.Service, manager *resilience.Manager, checker *resilience.HealthChecker, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		svc:     svc,
		manager: manager,
		checker: checker,
		logger:  logger.With("component", "api"),
	}
}

// RegisterRoutes registers all query endpoints on the /v1 group.
//
//	POST /v1/search/entities       - search entities
//	POST /v1/search/officers       - search officers
//	POST /v1/search/intermediaries - search intermediaries
//	GET  /v1/entities/:id          - entity details
//	POST /v1/connections           - connection exploration
//	POST /v1/paths                 - shortest paths
//	POST /v1/analysis/patterns     - network pattern analysis
//	POST /v1/analysis/common       - common connections
//	POST /v1/analysis/temporal     - temporal analysis
//	POST /v1/analysis/risk         - compliance risk analysis
//	GET  /v1/statistics            - statistics aggregates
//	GET  /v1/database/info         - node and relationship breakdowns
//	GET  /v1/admin/errors          - resilience error statistics
func (h *Handlers) RegisterRoutes(rg *gin.RouterGroup) {
	search := rg.Group("/search")
	{
		search.POST("/entities", h.handleSearchEntities)
		search.POST("/officers", h.handleSearchOfficers)
		search.POST("/intermediaries", h.handleSearchIntermediaries)
	}

	rg.GET("/entities/:id", h.handleEntityDetails)
	rg.POST("/connections", h.handleConnections)
	rg.POST("/paths", h.handleShortestPaths)

	analysis := rg.Group("/analysis")
	{
		analysis.POST("/patterns", h.handleNetworkPatterns)
		analysis.POST("/common", h.handleCommonConnections)
		analysis.POST("/temporal", h.handleTemporalAnalysis)
		analysis.POST("/risk", h.handleComplianceRisk)
	}

	rg.GET("/statistics", h.handleStatistics)
	rg.GET("/database/info", h.handleDatabaseInfo)
	rg.GET("/admin/errors", h.handleErrorStats)
}

func (h *Handlers) handleSearchEntities(c *gin.Context) {
	var params service.EntitySearchParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondBadRequest(c, err)
		return
	}
	h.searchResponse(c, "search_entities", func() (service.SearchResult, error) {
		return h.svc.SearchEntities(c.Request.Context(), params)
	})
}

func (h *Handlers) handleSearchOfficers(c *gin.Context) {
	var params service.OfficerSearchParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondBadRequest(c, err)
		return
	}
	h.searchResponse(c, "search_officers", func() (service.SearchResult, error) {
		return h.svc.SearchOfficers(c.Request.Context(), params)
	})
}

func (h *Handlers) handleSearchIntermediaries(c *gin.Context) {
	var params service.OfficerSearchParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondBadRequest(c, err)
		return
	}
	h.searchResponse(c, "search_intermediaries", func() (service.SearchResult, error) {
		return h.svc.SearchIntermediaries(c.Request.Context(), params)
	})
}

func (h *Handlers) handleEntityDetails(c *gin.Context) {
	nodeID := c.Param("id")
	includeRelationships := c.DefaultQuery("include_relationships", "true") == "true"

	start := time.Now()
	details, err := h.svc.GetEntityDetails(c.Request.Context(), nodeID, includeRelationships)
	observability.ObserveQuery("get_entity_details", time.Since(start).Seconds(), err)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, details, nil)
}

func (h *Handlers) handleConnections(c *gin.Context) {
	var params service.ConnectionsParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondBadRequest(c, err)
		return
	}
	h.searchResponse(c, "get_connections", func() (service.SearchResult, error) {
		return h.svc.GetConnections(c.Request.Context(), params)
	})
}

func (h *Handlers) handleShortestPaths(c *gin.Context) {
	var params service.ShortestPathsParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondBadRequest(c, err)
		return
	}
	h.searchResponse(c, "find_shortest_paths", func() (service.SearchResult, error) {
		return h.svc.FindShortestPaths(c.Request.Context(), params)
	})
}

func (h *Handlers) handleNetworkPatterns(c *gin.Context) {
	var params service.NetworkPatternsParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondBadRequest(c, err)
		return
	}
	h.searchResponse(c, "analyze_network_patterns", func() (service.SearchResult, error) {
		return h.svc.AnalyzeNetworkPatterns(c.Request.Context(), params)
	})
}

func (h *Handlers) handleCommonConnections(c *gin.Context) {
	var params service.CommonConnectionsParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondBadRequest(c, err)
		return
	}
	h.searchResponse(c, "find_common_connections", func() (service.SearchResult, error) {
		return h.svc.FindCommonConnections(c.Request.Context(), params)
	})
}

func (h *Handlers) handleTemporalAnalysis(c *gin.Context) {
	var params service.TemporalAnalysisParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondBadRequest(c, err)
		return
	}
	h.searchResponse(c, "temporal_analysis", func() (service.SearchResult, error) {
		return h.svc.TemporalAnalysis(c.Request.Context(), params)
	})
}

func (h *Handlers) handleComplianceRisk(c *gin.Context) {
	var params service.ComplianceRiskParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondBadRequest(c, err)
		return
	}
	h.searchResponse(c, "compliance_risk_analysis", func() (service.SearchResult, error) {
		return h.svc.ComplianceRiskAnalysis(c.Request.Context(), params)
	})
}

func (h *Handlers) handleStatistics(c *gin.Context) {
	statType := c.DefaultQuery("type", "overview")

	start := time.Now()
	result, err := h.svc.GetStatistics(c.Request.Context(), statType)
	observability.ObserveQuery("get_statistics", time.Since(start).Seconds(), err)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result, result.QueryTimeMS)
}

func (h *Handlers) handleDatabaseInfo(c *gin.Context) {
	info := h.svc.GetDatabaseInfo(c.Request.Context())
	respondOK(c, info, nil)
}

func (h *Handlers) handleErrorStats(c *gin.Context) {
	respondOK(c, h.manager.GetStats(), nil)
}

// handleHealth serves the unversioned /health endpoint. Degraded components
// still answer 200 so load balancers keep routing; only unhealthy yields 503.
func (h *Handlers) handleHealth(c *gin.Context) {
	components := h.checker.Check(c.Request.Context())
	overall := h.checker.Overall(components)

	status := http.StatusOK
	if overall.State == types.HealthStateUnhealthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, Envelope{
		Success: status == http.StatusOK,
		Data: gin.H{
			"status":     overall,
			"components": components,
		},
		Timestamp: time.Now().UTC(),
	})
}

// searchResponse runs one SearchResult-producing operation with metrics and
// the uniform envelope.
func (h *Handlers) searchResponse(c *gin.Context, operation string, op func() (service.SearchResult, error)) {
	start := time.Now()
	result, err := op()
	observability.ObserveQuery(operation, time.Since(start).Seconds(), err)
	if err != nil {
		h.logger.Warn("operation failed",
			"operation", operation,
			"error", err,
			"request_id", c.GetString(requestIDKey))
		respondError(c, err)
		return
	}
	h.logger.Debug("operation completed",
		"operation", operation,
		"returned", result.ReturnedCount,
		"total", result.TotalCount)
	respondOK(c, result, result.QueryTimeMS)
}
