package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/markramm/offshoreleaks-data-packages/internal/service"
	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

// Client is the HTTP client for a running offshore leaks server. The CLI query
// commands use it instead of talking to Neo4j directly.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// clientEnvelope mirrors Envelope with raw data for deferred decoding.
type clientEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return types.WrapError(types.VALIDATION_FAILED, "failed to encode request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return types.WrapRetryable(types.DB_CONNECTION_FAILED, types.KindNetworkError,
			"request to "+c.baseURL+" failed", err)
	}
	defer resp.Body.Close()

	var envelope clientEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return types.WrapError(types.QUERY_FAILED,
			fmt.Sprintf("invalid response from server (status %d)", resp.StatusCode), err)
	}

	if !envelope.Success {
		if envelope.Error != nil {
			return types.NewError(types.ErrorCode(envelope.Error.Code), envelope.Error.Message)
		}
		return types.NewError(types.QUERY_FAILED,
			fmt.Sprintf("server returned status %d", resp.StatusCode))
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return types.WrapError(types.QUERY_FAILED, "failed to decode response data", err)
		}
	}
	return nil
}

// SearchEntities calls POST /v1/search/entities.
func (c *Client) SearchEntities(ctx context.Context, params service.EntitySearchParams) (service.SearchResult, error) {
	var result service.SearchResult
	err := c.do(ctx, http.MethodPost, "/v1/search/entities", params, &result)
	return result, err
}

// SearchOfficers calls POST /v1/search/officers.
func (c *Client) SearchOfficers(ctx context.Context, params service.OfficerSearchParams) (service.SearchResult, error) {
	var result service.SearchResult
	err := c.do(ctx, http.MethodPost, "/v1/search/officers", params, &result)
	return result, err
}

// SearchIntermediaries calls POST /v1/search/intermediaries.
func (c *Client) SearchIntermediaries(ctx context.Context, params service.OfficerSearchParams) (service.SearchResult, error) {
	var result service.SearchResult
	err := c.do(ctx, http.MethodPost, "/v1/search/intermediaries", params, &result)
	return result, err
}

// GetEntityDetails calls GET /v1/entities/{id}.
func (c *Client) GetEntityDetails(ctx context.Context, nodeID string, includeRelationships bool) (map[string]any, error) {
	var result map[string]any
	path := "/v1/entities/" + url.PathEscape(nodeID) +
		"?include_relationships=" + fmt.Sprint(includeRelationships)
	err := c.do(ctx, http.MethodGet, path, nil, &result)
	return result, err
}

// GetConnections calls POST /v1/connections.
func (c *Client) GetConnections(ctx context.Context, params service.ConnectionsParams) (service.SearchResult, error) {
	var result service.SearchResult
	err := c.do(ctx, http.MethodPost, "/v1/connections", params, &result)
	return result, err
}

// FindShortestPaths calls POST /v1/paths.
func (c *Client) FindShortestPaths(ctx context.Context, params service.ShortestPathsParams) (service.SearchResult, error) {
	var result service.SearchResult
	err := c.do(ctx, http.MethodPost, "/v1/paths", params, &result)
	return result, err
}

// AnalyzeNetworkPatterns calls POST /v1/analysis/patterns.
func (c *Client) AnalyzeNetworkPatterns(ctx context.Context, params service.NetworkPatternsParams) (service.SearchResult, error) {
	var result service.SearchResult
	err := c.do(ctx, http.MethodPost, "/v1/analysis/patterns", params, &result)
	return result, err
}

// FindCommonConnections calls POST /v1/analysis/common.
func (c *Client) FindCommonConnections(ctx context.Context, params service.CommonConnectionsParams) (service.SearchResult, error) {
	var result service.SearchResult
	err := c.do(ctx, http.MethodPost, "/v1/analysis/common", params, &result)
	return result, err
}

// TemporalAnalysis calls POST /v1/analysis/temporal.
func (c *Client) TemporalAnalysis(ctx context.Context, params service.TemporalAnalysisParams) (service.SearchResult, error) {
	var result service.SearchResult
	err := c.do(ctx, http.MethodPost, "/v1/analysis/temporal", params, &result)
	return result, err
}

// ComplianceRiskAnalysis calls POST /v1/analysis/risk.
func (c *Client) ComplianceRiskAnalysis(ctx context.Context, params service.ComplianceRiskParams) (service.SearchResult, error) {
	var result service.SearchResult
	err := c.do(ctx, http.MethodPost, "/v1/analysis/risk", params, &result)
	return result, err
}

// GetStatistics calls GET /v1/statistics.
func (c *Client) GetStatistics(ctx context.Context, statType string) (service.StatisticsResult, error) {
	var result service.StatisticsResult
	err := c.do(ctx, http.MethodGet, "/v1/statistics?type="+url.QueryEscape(statType), nil, &result)
	return result, err
}

// GetDatabaseInfo calls GET /v1/database/info.
func (c *Client) GetDatabaseInfo(ctx context.Context) (service.DatabaseInfo, error) {
	var result service.DatabaseInfo
	err := c.do(ctx, http.MethodGet, "/v1/database/info", nil, &result)
	return result, err
}

// GetErrorStats calls GET /v1/admin/errors.
func (c *Client) GetErrorStats(ctx context.Context) (map[string]any, error) {
	var result map[string]any
	err := c.do(ctx, http.MethodGet, "/v1/admin/errors", nil, &result)
	return result, err
}

// Health calls GET /health. The raw body is returned even on 503 so callers
// can show component detail.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, types.WrapRetryable(types.DB_CONNECTION_FAILED, types.KindNetworkError,
			"request to "+c.baseURL+" failed", err)
	}
	defer resp.Body.Close()

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, types.WrapError(types.DB_HEALTH_FAILED, "invalid health response", err)
	}
	return envelope.Data, nil
}
