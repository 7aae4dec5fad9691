package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaksError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *LeaksError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewError(QUERY_FAILED, "query failed"),
			expected: "[QUERY_FAILED] query failed",
		},
		{
			name:     "with cause",
			err:      WrapError(DB_CONNECTION_FAILED, "connect failed", errors.New("refused")),
			expected: "[DB_CONNECTION_FAILED] connect failed: refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestLeaksError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := WrapRetryable(DB_CONNECTION_FAILED, KindDatabaseConnection, "connect failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, err.Retryable)
	assert.Equal(t, KindDatabaseConnection, err.Kind)
}

func TestLeaksError_Is_MatchesByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewError(NOT_FOUND, "entity not found"))

	assert.ErrorIs(t, err, NewError(NOT_FOUND, "different message"))
	assert.NotErrorIs(t, err, NewError(QUERY_FAILED, "entity not found"))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{
			name:     "tagged error",
			err:      NewRetryableError(QUERY_TIMEOUT, KindQueryTimeout, "timed out"),
			expected: KindQueryTimeout,
		},
		{
			name:     "wrapped tagged error",
			err:      fmt.Errorf("outer: %w", NewRetryableError(QUERY_TIMEOUT, KindQueryTimeout, "timed out")),
			expected: KindQueryTimeout,
		},
		{
			name:     "plain error",
			err:      errors.New("something broke"),
			expected: KindUnknown,
		},
		{
			name:     "nil",
			err:      nil,
			expected: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("limit out of range")

	require.Equal(t, VALIDATION_FAILED, err.Code)
	assert.Equal(t, KindValidationError, err.Kind)
	assert.False(t, err.Retryable)
	assert.True(t, IsValidation(err))
	assert.False(t, IsValidation(errors.New("plain")))
}

func TestKinds_Complete(t *testing.T) {
	kinds := Kinds()

	assert.Len(t, kinds, 7)
	assert.Contains(t, kinds, KindDatabaseConnection)
	assert.Contains(t, kinds, KindUnknown)
}
