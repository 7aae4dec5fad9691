package types

import "time"

// HealthState is the coarse health of one component. Degraded means the
// component answers but below normal capacity; unhealthy means it should be
// taken out of service.
type HealthState string

const (
	HealthStateHealthy   HealthState = "healthy"
	HealthStateDegraded  HealthState = "degraded"
	HealthStateUnhealthy HealthState = "unhealthy"
)

// HealthStatus is one component's health observation.
type HealthStatus struct {
	State     HealthState `json:"state"`
	Message   string      `json:"message,omitempty"`
	CheckedAt time.Time   `json:"checked_at"`
}

// Healthy builds a healthy status stamped with the current time.
func Healthy(message string) HealthStatus {
	return HealthStatus{State: HealthStateHealthy, Message: message, CheckedAt: time.Now()}
}

// Degraded builds a degraded status stamped with the current time.
func Degraded(message string) HealthStatus {
	return HealthStatus{State: HealthStateDegraded, Message: message, CheckedAt: time.Now()}
}

// Unhealthy builds an unhealthy status stamped with the current time.
func Unhealthy(message string) HealthStatus {
	return HealthStatus{State: HealthStateUnhealthy, Message: message, CheckedAt: time.Now()}
}

// IsHealthy reports whether the component is fully healthy. Degraded is not
// healthy for this purpose; callers deciding routing should look at State.
func (h HealthStatus) IsHealthy() bool {
	return h.State == HealthStateHealthy
}
