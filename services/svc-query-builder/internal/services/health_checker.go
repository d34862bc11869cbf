package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/ports"
)

// HealthChecker pings every registered dependency in registration order.
type HealthChecker struct {
	names    []string
	checkers map[string]ports.Pinger
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{checkers: make(map[string]ports.Pinger)}
}

// Register adds a named dependency. Registering a name twice replaces the checker.
func (h *HealthChecker) Register(name string, checker ports.Pinger) *HealthChecker {
	if _, ok := h.checkers[name]; !ok {
		h.names = append(h.names, name)
	}

	h.checkers[name] = checker

	return h
}

func (h *HealthChecker) IsHealthy(ctx context.Context) bool {
	for _, status := range h.CheckDependencies(ctx) {
		if !status.Healthy {
			return false
		}
	}

	return true
}

func (h *HealthChecker) CheckDependencies(ctx context.Context) map[string]ports.DependencyStatus {
	statuses := make(map[string]ports.DependencyStatus, len(h.names))

	for _, name := range h.names {
		start := time.Now()
		err := h.checkers[name].Ping(ctx)

		status := ports.DependencyStatus{
			Healthy: err == nil,
			Latency: fmt.Sprintf("%dms", time.Since(start).Milliseconds()),
		}

		if err != nil {
			status.Message = err.Error()
		}

		statuses[name] = status
	}

	return statuses
}
