package resilience

import (
	"context"
	"log/slog"
	"sync"

	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

// HealthReporter is implemented by components that can report their health.
type HealthReporter interface {
	Health(ctx context.Context) types.HealthStatus
}

// HealthChecker polls registered components and keeps their last known
// status. Safe for concurrent use.
type HealthChecker struct {
	mu        sync.RWMutex
	logger    *slog.Logger
	reporters map[string]HealthReporter
	statuses  map[string]types.HealthStatus
}

// NewHealthChecker creates an empty health checker.
func NewHealthChecker(logger *slog.Logger) *HealthChecker {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthChecker{
		logger:    logger.With("component", "health"),
		reporters: make(map[string]HealthReporter),
		statuses:  make(map[string]types.HealthStatus),
	}
}

// Register adds a component to poll on every Check.
func (h *HealthChecker) Register(name string, reporter HealthReporter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reporters[name] = reporter
}

// Check polls every registered component and returns the per-component
// statuses. Results are also recorded for Components.
func (h *HealthChecker) Check(ctx context.Context) map[string]types.HealthStatus {
	h.mu.RLock()
	reporters := make(map[string]HealthReporter, len(h.reporters))
	for name, reporter := range h.reporters {
		reporters[name] = reporter
	}
	h.mu.RUnlock()

	out := make(map[string]types.HealthStatus, len(reporters))
	for name, reporter := range reporters {
		status := reporter.Health(ctx)
		out[name] = status
		if !status.IsHealthy() {
			h.logger.Warn("component unhealthy", "name", name, "state", status.State, "message", status.Message)
		}
	}

	h.mu.Lock()
	for name, status := range out {
		h.statuses[name] = status
	}
	h.mu.Unlock()

	return out
}

// Record stores a status observed out-of-band (e.g. the server's own state).
func (h *HealthChecker) Record(name string, status types.HealthStatus) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses[name] = status
}

// Components returns a copy of the last known per-component statuses.
func (h *HealthChecker) Components() map[string]types.HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make(map[string]types.HealthStatus, len(h.statuses))
	for name, status := range h.statuses {
		out[name] = status
	}
	return out
}

// Overall aggregates component statuses: healthy only when every component is
// healthy, degraded otherwise. Unhealthy wins over degraded.
func (h *HealthChecker) Overall(components map[string]types.HealthStatus) types.HealthStatus {
	if len(components) == 0 {
		return types.Degraded("no components checked")
	}

	overall := types.Healthy("all components healthy")
	for name, status := range components {
		switch status.State {
		case types.HealthStateUnhealthy:
			return types.Unhealthy("component " + name + " is unhealthy")
		case types.HealthStateDegraded:
			overall = types.Degraded("component " + name + " is degraded")
		}
	}
	return overall
}
