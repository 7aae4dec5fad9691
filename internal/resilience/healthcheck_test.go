package resilience

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

type staticReporter struct {
	status types.HealthStatus
}

func (r staticReporter) Health(ctx context.Context) types.HealthStatus {
	return r.status
}

func TestHealthChecker_CheckPollsAndRecords(t *testing.T) {
	checker := NewHealthChecker(nil)
	checker.Register("neo4j", staticReporter{types.Healthy("connected")})
	checker.Register("cache", staticReporter{types.Degraded("warming up")})

	components := checker.Check(context.Background())

	require.Len(t, components, 2)
	assert.Equal(t, types.HealthStateHealthy, components["neo4j"].State)
	assert.Equal(t, types.HealthStateDegraded, components["cache"].State)

	// Polled statuses persist for later Components calls.
	stored := checker.Components()
	assert.Equal(t, types.HealthStateDegraded, stored["cache"].State)
}

func TestHealthChecker_RecordOutOfBand(t *testing.T) {
	checker := NewHealthChecker(nil)
	checker.Record("server", types.Healthy("server running"))

	stored := checker.Components()
	require.Contains(t, stored, "server")
	assert.True(t, stored["server"].IsHealthy())
}

func TestHealthChecker_Overall(t *testing.T) {
	checker := NewHealthChecker(nil)

	t.Run("empty is degraded", func(t *testing.T) {
		overall := checker.Overall(nil)
		assert.Equal(t, types.HealthStateDegraded, overall.State)
	})

	t.Run("all healthy", func(t *testing.T) {
		overall := checker.Overall(map[string]types.HealthStatus{
			"a": types.Healthy(""),
			"b": types.Healthy(""),
		})
		assert.Equal(t, types.HealthStateHealthy, overall.State)
	})

	t.Run("degraded component degrades the whole", func(t *testing.T) {
		overall := checker.Overall(map[string]types.HealthStatus{
			"a": types.Healthy(""),
			"b": types.Degraded("slow"),
		})
		assert.Equal(t, types.HealthStateDegraded, overall.State)
	})

	t.Run("unhealthy wins over degraded", func(t *testing.T) {
		overall := checker.Overall(map[string]types.HealthStatus{
			"a": types.Degraded("slow"),
			"b": types.Unhealthy("down"),
		})
		assert.Equal(t, types.HealthStateUnhealthy, overall.State)
	})
}
