package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for offshore leaks server errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// Database error codes
const (
	DB_CONNECTION_FAILED ErrorCode = "DB_CONNECTION_FAILED"
	DB_CONNECTION_CLOSED ErrorCode = "DB_CONNECTION_CLOSED"
	DB_HEALTH_FAILED     ErrorCode = "DB_HEALTH_FAILED"
	QUERY_FAILED         ErrorCode = "QUERY_FAILED"
	QUERY_TIMEOUT        ErrorCode = "QUERY_TIMEOUT"
)

// Request error codes
const (
	VALIDATION_FAILED ErrorCode = "VALIDATION_FAILED"
	NOT_FOUND         ErrorCode = "NOT_FOUND"
)

// Resilience error codes
const (
	CIRCUIT_OPEN      ErrorCode = "CIRCUIT_OPEN"
	RETRIES_EXHAUSTED ErrorCode = "RETRIES_EXHAUSTED"
)

// Export error codes
const (
	EXPORT_FAILED             ErrorCode = "EXPORT_FAILED"
	EXPORT_FORMAT_UNSUPPORTED ErrorCode = "EXPORT_FORMAT_UNSUPPORTED"
)

// ErrorKind classifies a failure for retry policy selection. Every error that
// crosses the gateway boundary carries exactly one kind.
type ErrorKind string

const (
	KindDatabaseConnection ErrorKind = "database_connection"
	KindQueryTimeout       ErrorKind = "query_timeout"
	KindQueryError         ErrorKind = "query_error"
	KindValidationError    ErrorKind = "validation_error"
	KindNetworkError       ErrorKind = "network_error"
	KindResourceExhaustion ErrorKind = "resource_exhaustion"
	KindUnknown            ErrorKind = "unknown"
)

// String returns the string representation of the ErrorKind.
func (k ErrorKind) String() string {
	return string(k)
}

// Kinds returns all defined error kinds in a stable order.
func Kinds() []ErrorKind {
	return []ErrorKind{
		KindDatabaseConnection,
		KindQueryTimeout,
		KindQueryError,
		KindValidationError,
		KindNetworkError,
		KindResourceExhaustion,
		KindUnknown,
	}
}

// LeaksError represents a structured error with error code, kind, message,
// and optional cause. It supports error wrapping and carries a retryability
// hint consumed by the resilience layer.
type LeaksError struct {
	Code      ErrorCode
	Kind      ErrorKind
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *LeaksError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *LeaksError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
func (e *LeaksError) Is(target error) bool {
	var leaksErr *LeaksError
	if errors.As(target, &leaksErr) {
		return e.Code == leaksErr.Code
	}
	return false
}

// NewError creates a new non-retryable LeaksError with the given code and message.
func NewError(code ErrorCode, message string) *LeaksError {
	return &LeaksError{
		Code:    code,
		Kind:    KindUnknown,
		Message: message,
	}
}

// NewValidationError creates a non-retryable validation error. Validation
// failures are surfaced to callers immediately and never enter a retry loop.
func NewValidationError(message string) *LeaksError {
	return &LeaksError{
		Code:    VALIDATION_FAILED,
		Kind:    KindValidationError,
		Message: message,
	}
}

// NewRetryableError creates a new retryable LeaksError tagged with the given kind.
// Use this for transient errors that may succeed on retry.
func NewRetryableError(code ErrorCode, kind ErrorKind, message string) *LeaksError {
	return &LeaksError{
		Code:      code,
		Kind:      kind,
		Message:   message,
		Retryable: true,
	}
}

// WrapError creates a new non-retryable LeaksError that wraps an existing error.
func WrapError(code ErrorCode, message string, cause error) *LeaksError {
	return &LeaksError{
		Code:    code,
		Kind:    KindUnknown,
		Message: message,
		Cause:   cause,
	}
}

// WrapRetryable creates a retryable LeaksError tagged with the given kind
// that wraps an existing error.
func WrapRetryable(code ErrorCode, kind ErrorKind, message string, cause error) *LeaksError {
	return &LeaksError{
		Code:      code,
		Kind:      kind,
		Message:   message,
		Retryable: true,
		Cause:     cause,
	}
}

// WrapKind creates a non-retryable LeaksError tagged with the given kind.
func WrapKind(code ErrorCode, kind ErrorKind, message string, cause error) *LeaksError {
	return &LeaksError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// KindOf extracts the ErrorKind from an error chain. Errors that do not carry
// a LeaksError anywhere in the chain report KindUnknown.
func KindOf(err error) ErrorKind {
	var leaksErr *LeaksError
	if errors.As(err, &leaksErr) {
		return leaksErr.Kind
	}
	return KindUnknown
}

// IsValidation reports whether the error chain contains a validation failure.
func IsValidation(err error) bool {
	var leaksErr *LeaksError
	if errors.As(err, &leaksErr) {
		return leaksErr.Code == VALIDATION_FAILED
	}
	return false
}
