package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

// Envelope is the uniform response body for every endpoint.
type Envelope struct {
	Success     bool      `json:"success"`
	Data        any       `json:"data,omitempty"`
	Error       *APIError `json:"error,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS *int64    `json:"query_time_ms,omitempty"`
}

// APIError is the wire form of a failed request.
type APIError struct {
	Code    string `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

func respondOK(c *gin.Context, data any, queryTimeMS *int64) {
	c.JSON(http.StatusOK, Envelope{
		Success:     true,
		Data:        data,
		Timestamp:   time.Now().UTC(),
		QueryTimeMS: queryTimeMS,
	})
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	apiErr := &APIError{
		Code:    string(types.QUERY_FAILED),
		Message: err.Error(),
	}

	var leaksErr *types.LeaksError
	if errors.As(err, &leaksErr) {
		status = statusForCode(leaksErr.Code)
		if leaksErr.Code == types.RETRIES_EXHAUSTED {
			status = statusForKind(leaksErr.Kind)
		}
		apiErr.Code = string(leaksErr.Code)
		apiErr.Message = leaksErr.Message
		if leaksErr.Kind != types.KindUnknown {
			apiErr.Kind = leaksErr.Kind.String()
		}
	}

	c.JSON(status, Envelope{
		Success:   false,
		Error:     apiErr,
		Timestamp: time.Now().UTC(),
	})
}

// respondBadRequest is used for malformed request bodies, before parameters
// ever reach service validation.
func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Envelope{
		Success: false,
		Error: &APIError{
			Code:    string(types.VALIDATION_FAILED),
			Message: "invalid request body: " + err.Error(),
		},
		Timestamp: time.Now().UTC(),
	})
}

func statusForCode(code types.ErrorCode) int {
	switch code {
	case types.VALIDATION_FAILED:
		return http.StatusUnprocessableEntity
	case types.NOT_FOUND:
		return http.StatusNotFound
	case types.QUERY_FAILED:
		return http.StatusBadRequest
	case types.CIRCUIT_OPEN:
		return http.StatusServiceUnavailable
	case types.QUERY_TIMEOUT:
		return http.StatusGatewayTimeout
	case types.DB_CONNECTION_FAILED, types.DB_CONNECTION_CLOSED:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// statusForKind maps an exhausted retry to the status of its underlying kind.
func statusForKind(kind types.ErrorKind) int {
	switch kind {
	case types.KindDatabaseConnection, types.KindNetworkError, types.KindResourceExhaustion:
		return http.StatusServiceUnavailable
	case types.KindQueryTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
