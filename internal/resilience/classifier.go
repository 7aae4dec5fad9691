package resilience

import (
	"errors"
	"strings"

	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

// Keyword sets for classifying foreign errors by message. Structured errors
// carry their kind explicitly; string matching is the boundary fallback for
// failures raised outside our control (driver internals, the network stack).
var (
	connectionKeywords = []string{
		"connection refused",
		"connection failed",
		"connection lost",
		"connection timeout",
		"network error",
		"host unreachable",
		"no route to host",
		"broken pipe",
	}
	timeoutKeywords = []string{
		"timeout",
		"timed out",
		"deadline exceeded",
	}
	queryKeywords = []string{
		"syntax error",
		"invalid query",
		"invalid input",
		"constraint violation",
		"unknown function",
	}
	exhaustionKeywords = []string{
		"pool exhausted",
		"too many connections",
		"out of memory",
	}
)

// Classify maps a raw execution failure to an ErrorKind. A LeaksError that
// already carries a kind other than unknown is trusted as-is; everything else
// falls back to lowercased message matching.
func Classify(err error) types.ErrorKind {
	if err == nil {
		return types.KindUnknown
	}

	var leaksErr *types.LeaksError
	if errors.As(err, &leaksErr) && leaksErr.Kind != types.KindUnknown {
		return leaksErr.Kind
	}

	msg := strings.ToLower(err.Error())

	for _, kw := range connectionKeywords {
		if strings.Contains(msg, kw) {
			return types.KindDatabaseConnection
		}
	}
	for _, kw := range timeoutKeywords {
		if strings.Contains(msg, kw) {
			return types.KindQueryTimeout
		}
	}
	for _, kw := range queryKeywords {
		if strings.Contains(msg, kw) {
			return types.KindQueryError
		}
	}
	for _, kw := range exhaustionKeywords {
		if strings.Contains(msg, kw) {
			return types.KindResourceExhaustion
		}
	}

	return types.KindUnknown
}

// IsRetryable decides whether a failure of the given kind should re-enter the
// retry loop. An explicit retryability tag on a structured error always wins;
// otherwise connection, timeout, network, and resource-exhaustion failures are
// considered transient. Unclassified errors are non-retryable by default.
func IsRetryable(err error, kind types.ErrorKind) bool {
	var leaksErr *types.LeaksError
	if errors.As(err, &leaksErr) {
		return leaksErr.Retryable
	}

	switch kind {
	case types.KindDatabaseConnection,
		types.KindQueryTimeout,
		types.KindNetworkError,
		types.KindResourceExhaustion:
		return true
	default:
		return false
	}
}
