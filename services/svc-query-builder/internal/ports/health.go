package ports

import "context"

type (
	// HealthChecker aggregates the state of the registered dependencies.
	HealthChecker interface {
		IsHealthy(ctx context.Context) bool
		CheckDependencies(ctx context.Context) map[string]DependencyStatus
	}

	// Pinger is implemented by the datastores and the template cache.
	Pinger interface {
		Ping(ctx context.Context) error
	}

	DependencyStatus struct {
		Healthy bool   `json:"healthy"`
		Message string `json:"message,omitempty"`
		Latency string `json:"latency,omitempty"`
	}
)
