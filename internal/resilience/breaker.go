package resilience

import (
	"sync"
	"time"
)

// BreakerState represents a circuit breaker state.
type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half_open"
)

// BreakerConfig configures a circuit breaker.
type BreakerConfig struct {
	// FailureThreshold is the consecutive-failure count that opens the circuit.
	FailureThreshold int `mapstructure:"failure_threshold" yaml:"failure_threshold"`

	// RecoveryTimeout is how long the circuit stays open before a trial call
	// is admitted in the half-open state.
	RecoveryTimeout time.Duration `mapstructure:"recovery_timeout" yaml:"recovery_timeout"`
}

// CircuitBreaker guards a named resource with the closed/open/half-open state
// machine. It is long-lived and safe for concurrent use.
type CircuitBreaker struct {
	mu sync.Mutex

	config          BreakerConfig
	state           BreakerState
	failureCount    int
	lastFailureTime time.Time

	// now is swappable for tests.
	now func() time.Time
}

// NewCircuitBreaker creates a closed circuit breaker with the given config.
func NewCircuitBreaker(config BreakerConfig) *CircuitBreaker {
	if config.FailureThreshold < 1 {
		config.FailureThreshold = 1
	}
	return &CircuitBreaker{
		config: config,
		state:  BreakerClosed,
		now:    time.Now,
	}
}

// CanExecute is the admission check called before every protected invocation.
// In the open state it admits a single trial call once the recovery timeout
// has elapsed, transitioning to half-open.
func (cb *CircuitBreaker) CanExecute() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case BreakerClosed:
		return true
	case BreakerOpen:
		if !cb.lastFailureTime.IsZero() && cb.now().Sub(cb.lastFailureTime) >= cb.config.RecoveryTimeout {
			cb.state = BreakerHalfOpen
			return true
		}
		return false
	default: // half-open
		return true
	}
}

// RecordSuccess closes the circuit and resets the failure count.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount = 0
	cb.state = BreakerClosed
}

// RecordFailure counts a failed invocation and opens the circuit once the
// threshold is reached. A failure in half-open immediately re-opens.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++
	cb.lastFailureTime = cb.now()

	if cb.state == BreakerHalfOpen || cb.failureCount >= cb.config.FailureThreshold {
		cb.state = BreakerOpen
	}
}

// State returns the current breaker state.
func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// FailureCount returns the current consecutive-failure count.
func (cb *CircuitBreaker) FailureCount() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failureCount
}
