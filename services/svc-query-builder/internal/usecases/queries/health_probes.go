package queries

import (
	"context"
	"slices"
	"time"

	"github.com/Shubhamshah007/nse-query-builder/pkg/decorator"
	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/pkg/metrics"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/config"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/ports"
	otelTrace "go.opentelemetry.io/otel/trace"
)

const (
	probeStatusOK          = "ok"
	probeStatusUnavailable = "unavailable"
	reportStatusHealthy    = "healthy"
	reportStatusUnhealthy  = "unhealthy"
)

type (
	FetchLivenessQuery     struct{}
	FetchReadinessQuery    struct{}
	FetchHealthReportQuery struct{}

	LivenessResult struct {
		Status string `json:"status"`
	}

	// ReadinessResult lists the dependencies that failed their ping, sorted by name.
	ReadinessResult struct {
		Status  string   `json:"status"`
		Ready   bool     `json:"ready"`
		Failing []string `json:"failing,omitempty"`
	}

	HealthResult struct {
		Status       string                            `json:"status"`
		Version      string                            `json:"version"`
		Uptime       string                            `json:"uptime"`
		CheckedAt    time.Time                         `json:"checkedAt"`
		Dependencies map[string]ports.DependencyStatus `json:"dependencies"`
	}

	FetchLivenessQueryHandler     = decorator.QueryHandler[FetchLivenessQuery, *LivenessResult]
	FetchReadinessQueryHandler    = decorator.QueryHandler[FetchReadinessQuery, *ReadinessResult]
	FetchHealthReportQueryHandler = decorator.QueryHandler[FetchHealthReportQuery, *HealthResult]

	livenessProbe  struct{}
	readinessProbe struct {
		healthChecker ports.HealthChecker
	}
	healthReporter struct {
		healthChecker ports.HealthChecker
		startedAt     time.Time
	}
)

func NewFetchLivenessQueryHandler(
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) FetchLivenessQueryHandler {
	return decorator.ApplyQueryDecorators[FetchLivenessQuery, *LivenessResult](
		livenessProbe{}, log, metricsClient, tracerProvider,
	)
}

func NewFetchReadinessQueryHandler(
	healthChecker ports.HealthChecker,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) FetchReadinessQueryHandler {
	return decorator.ApplyQueryDecorators[FetchReadinessQuery, *ReadinessResult](
		readinessProbe{healthChecker: healthChecker}, log, metricsClient, tracerProvider,
	)
}

func NewFetchHealthReportQueryHandler(
	healthChecker ports.HealthChecker,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) FetchHealthReportQueryHandler {
	return decorator.ApplyQueryDecorators[FetchHealthReportQuery, *HealthResult](
		healthReporter{healthChecker: healthChecker, startedAt: time.Now()}, log, metricsClient, tracerProvider,
	)
}

// Liveness only proves the process is serving requests.
func (livenessProbe) Execute(context.Context, FetchLivenessQuery) (*LivenessResult, error) {
	return &LivenessResult{Status: probeStatusOK}, nil
}

func (p readinessProbe) Execute(ctx context.Context, _ FetchReadinessQuery) (*ReadinessResult, error) {
	failing := failingDependencies(p.healthChecker.CheckDependencies(ctx))
	if len(failing) > 0 {
		return &ReadinessResult{Status: probeStatusUnavailable, Failing: failing}, nil
	}

	return &ReadinessResult{Status: probeStatusOK, Ready: true}, nil
}

func (r healthReporter) Execute(ctx context.Context, _ FetchHealthReportQuery) (*HealthResult, error) {
	dependencies := r.healthChecker.CheckDependencies(ctx)

	status := reportStatusHealthy
	if len(failingDependencies(dependencies)) > 0 {
		status = reportStatusUnhealthy
	}

	return &HealthResult{
		Status:       status,
		Version:      config.ServiceVersion,
		Uptime:       time.Since(r.startedAt).Round(time.Second).String(),
		CheckedAt:    time.Now().UTC(),
		Dependencies: dependencies,
	}, nil
}

func failingDependencies(statuses map[string]ports.DependencyStatus) []string {
	var failing []string

	for name, status := range statuses {
		if !status.Healthy {
			failing = append(failing, name)
		}
	}

	slices.Sort(failing)

	return failing
}
