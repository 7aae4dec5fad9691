// Package internal holds exit-code handling shared by the CLI commands.
package internal

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

// Exit code constants for the CLI.
const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitError indicates a general error
	ExitError = 1
	// ExitValidationError indicates invalid parameters
	ExitValidationError = 2
	// ExitTimeout indicates the operation timed out
	ExitTimeout = 3
	// ExitCancelled indicates the operation was cancelled
	ExitCancelled = 4
	// ExitConfigError indicates a configuration error
	ExitConfigError = 10
	// ExitDatabaseError indicates a database or server connectivity error
	ExitDatabaseError = 12
)

// HandleError prints err on the command's error stream and returns the exit
// code it maps to.
func HandleError(cmd *cobra.Command, err error) int {
	if err == nil {
		return ExitSuccess
	}

	cmd.PrintErrf("Error: %v\n", err)

	if errors.Is(err, context.Canceled) {
		return ExitCancelled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ExitTimeout
	}

	var leaksErr *types.LeaksError
	if errors.As(err, &leaksErr) {
		return codeFor(leaksErr)
	}
	return ExitError
}

func codeFor(err *types.LeaksError) int {
	switch err.Code {
	case types.VALIDATION_FAILED:
		return ExitValidationError
	case types.QUERY_TIMEOUT:
		return ExitTimeout
	case types.CONFIG_LOAD_FAILED, types.CONFIG_PARSE_FAILED, types.CONFIG_VALIDATION_FAILED:
		return ExitConfigError
	case types.DB_CONNECTION_FAILED, types.DB_CONNECTION_CLOSED, types.CIRCUIT_OPEN:
		return ExitDatabaseError
	case types.RETRIES_EXHAUSTED:
		if err.Kind == types.KindQueryTimeout {
			return ExitTimeout
		}
		return ExitDatabaseError
	default:
		return ExitError
	}
}
