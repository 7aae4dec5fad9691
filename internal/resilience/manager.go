package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/markramm/offshoreleaks-data-packages/internal/observability"
	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

// Names of the circuit breakers guarding the two protected resources.
const (
	BreakerDatabase    = "database"
	BreakerQueryEngine = "query_engine"
)

// ErrorSnapshot is the last observed error of one kind, kept for observability.
type ErrorSnapshot struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats is a point-in-time view of the manager's error bookkeeping.
type Stats struct {
	ErrorCounts   map[string]int64         `json:"error_counts"`
	BreakerStates map[string]string        `json:"circuit_breaker_states"`
	LastErrors    map[string]ErrorSnapshot `json:"last_errors"`
}

// Manager composes retry policies, circuit breakers, and error classification
// around database operations. One instance is created at process start and
// injected into every component that needs protected execution; counters and
// breaker state are safe for concurrent use.
type Manager struct {
	mu sync.Mutex

	logger       *slog.Logger
	retryConfigs map[types.ErrorKind]RetryConfig
	breakers     map[string]*CircuitBreaker
	errorCounts  map[types.ErrorKind]int64
	lastErrors   map[types.ErrorKind]ErrorSnapshot
}

// NewManager creates a Manager with the default per-kind retry policies and
// the database / query-engine circuit breakers. Connection errors get the most
// attempts and the longest backoff ceiling; a slow query is less likely to
// succeed merely by waiting, so timeouts get fewer attempts and shorter delays.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		logger: logger.With("component", "resilience"),
		retryConfigs: map[types.ErrorKind]RetryConfig{
			types.KindDatabaseConnection: {
				MaxAttempts:     5,
				BaseDelay:       2 * time.Second,
				MaxDelay:        30 * time.Second,
				ExponentialBase: 2.0,
				Jitter:          true,
				Strategy:        BackoffExponential,
			},
			types.KindQueryTimeout: {
				MaxAttempts:     3,
				BaseDelay:       time.Second,
				MaxDelay:        10 * time.Second,
				ExponentialBase: 1.5,
				Jitter:          true,
				Strategy:        BackoffExponential,
			},
			types.KindNetworkError: {
				MaxAttempts:     4,
				BaseDelay:       1500 * time.Millisecond,
				MaxDelay:        20 * time.Second,
				ExponentialBase: 2.0,
				Jitter:          true,
				Strategy:        BackoffExponential,
			},
		},
		breakers: map[string]*CircuitBreaker{
			BreakerDatabase: NewCircuitBreaker(BreakerConfig{
				FailureThreshold: 3,
				RecoveryTimeout:  30 * time.Second,
			}),
			BreakerQueryEngine: NewCircuitBreaker(BreakerConfig{
				FailureThreshold: 5,
				RecoveryTimeout:  60 * time.Second,
			}),
		},
		errorCounts: make(map[types.ErrorKind]int64),
		lastErrors:  make(map[types.ErrorKind]ErrorSnapshot),
	}
}

// SetRetryConfig overrides the retry policy for one error kind.
func (m *Manager) SetRetryConfig(kind types.ErrorKind, cfg RetryConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retryConfigs[kind] = cfg
}

// RetryConfigFor returns the retry policy for the given kind, falling back to
// the default policy for kinds without a registered one.
func (m *Manager) RetryConfigFor(kind types.ErrorKind) RetryConfig {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg, ok := m.retryConfigs[kind]; ok {
		return cfg
	}
	return DefaultRetryConfig()
}

// Breaker returns the circuit breaker registered under name, or nil.
func (m *Manager) Breaker(name string) *CircuitBreaker {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.breakers[name]
}

// Execute runs op with full resilience: circuit-breaker admission, per-attempt
// classification and error recording, and the retry policy configured for kind.
// When the breaker is open the call fails fast with CIRCUIT_OPEN without
// invoking op; that failure is not retryable from the caller's perspective.
func (m *Manager) Execute(ctx context.Context, kind types.ErrorKind, breakerName string, op func(context.Context) error) error {
	cfg := m.RetryConfigFor(kind)
	breaker := m.Breaker(breakerName)

	attempt := 0
	return Retry(ctx, cfg, m.logger, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			observability.RetriesTotal.WithLabelValues(kind.String()).Inc()
		}
		if breaker != nil && !breaker.CanExecute() {
			return types.NewError(types.CIRCUIT_OPEN,
				fmt.Sprintf("circuit breaker %q is open", breakerName))
		}

		err := op(ctx)
		if err == nil {
			if breaker != nil {
				breaker.RecordSuccess()
				publishBreakerState(breakerName, breaker.State())
			}
			return nil
		}

		if breaker != nil {
			breaker.RecordFailure()
			publishBreakerState(breakerName, breaker.State())
		}

		classified := Classify(err)
		m.RecordError(err, classified)

		var leaksErr *types.LeaksError
		if errors.As(err, &leaksErr) {
			// Already structured at the point of failure detection.
			return err
		}

		if IsRetryable(err, classified) {
			return types.WrapRetryable(codeForKind(classified), classified,
				"operation failed", err)
		}
		return types.WrapKind(codeForKind(classified), classified,
			"operation failed", err)
	})
}

// RecordError increments the counter for the error's kind and overwrites the
// last-error snapshot. Used purely for observability, never for control flow.
func (m *Manager) RecordError(err error, kind types.ErrorKind) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errorCounts[kind]++
	m.lastErrors[kind] = ErrorSnapshot{
		Message:   err.Error(),
		Timestamp: time.Now(),
	}
	observability.ErrorsTotal.WithLabelValues(kind.String()).Inc()

	m.logger.Warn("error recorded", "kind", kind, "error", err)
}

// GetStats returns a snapshot of error counts, breaker states, and last errors.
func (m *Manager) GetStats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := Stats{
		ErrorCounts:   make(map[string]int64, len(m.errorCounts)),
		BreakerStates: make(map[string]string, len(m.breakers)),
		LastErrors:    make(map[string]ErrorSnapshot, len(m.lastErrors)),
	}
	for kind, count := range m.errorCounts {
		stats.ErrorCounts[kind.String()] = count
	}
	for name, cb := range m.breakers {
		stats.BreakerStates[name] = string(cb.State())
	}
	for kind, snap := range m.lastErrors {
		stats.LastErrors[kind.String()] = snap
	}
	return stats
}

// Reset clears error counters and snapshots and closes all breakers. Intended
// for tests and maintenance, not for request-path use.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errorCounts = make(map[types.ErrorKind]int64)
	m.lastErrors = make(map[types.ErrorKind]ErrorSnapshot)
	for _, cb := range m.breakers {
		cb.RecordSuccess()
	}
}

func publishBreakerState(name string, state BreakerState) {
	var value float64
	switch state {
	case BreakerHalfOpen:
		value = 1
	case BreakerOpen:
		value = 2
	}
	observability.BreakerState.WithLabelValues(name).Set(value)
}

func codeForKind(kind types.ErrorKind) types.ErrorCode {
	switch kind {
	case types.KindDatabaseConnection, types.KindNetworkError:
		return types.DB_CONNECTION_FAILED
	case types.KindQueryTimeout:
		return types.QUERY_TIMEOUT
	default:
		return types.QUERY_FAILED
	}
}
