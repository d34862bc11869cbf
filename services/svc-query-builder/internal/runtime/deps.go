package runtime

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/pkg/metrics"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/adapters/repos"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/config"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/infrastructure"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/ports"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/services"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/usecases"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	infrastructureDep struct {
		httpServer     *http.Server
		datastore      *Datastore
		cacheClient    *infrastructure.RedisClient
		logger         logger.Logger
		metricsClient  metrics.Client
		tracerProvider otelTrace.TracerProvider
	}

	repositories struct {
		secretsRepo  ports.SecretsRepository
		templateRepo ports.TemplateRepository
	}

	servicesDep struct {
		query         *services.QueryService
		templates     *services.TemplateService
		healthChecker *services.HealthChecker
	}

	dependencies struct {
		config       *config.ServiceConfig
		configLoader *config.Loader

		infra infrastructureDep

		repos repositories

		services servicesDep

		app *usecases.Application

		// cleanupOrder keeps teardown deterministic: last registered, first closed.
		cleanupOrder []string
		cleanupFuncs map[string]func(ctx context.Context) error
	}

	DependencyOption func(*dependencies) error
)

func initializeDependencies(ctx context.Context, opts ...DependencyOption) (*dependencies, error) {
	deps := &dependencies{
		cleanupFuncs: make(map[string]func(ctx context.Context) error),
	}

	allOpts := append(defaultOptions(ctx), opts...)

	for _, opt := range allOpts {
		if err := opt(deps); err != nil {
			deps.cleanup(ctx)

			return nil, fmt.Errorf("failed to apply dependency option: %w", err)
		}
	}

	return deps, nil
}

func (d *dependencies) registerCleanup(resource string, fn func(ctx context.Context) error) {
	if _, ok := d.cleanupFuncs[resource]; !ok {
		d.cleanupOrder = append(d.cleanupOrder, resource)
	}

	d.cleanupFuncs[resource] = fn
}

func (d *dependencies) cleanup(ctx context.Context) {
	for i := len(d.cleanupOrder) - 1; i >= 0; i-- {
		resource := d.cleanupOrder[i]

		if err := d.cleanupFuncs[resource](ctx); err != nil {
			d.infra.logger.Error().
				Err(err).
				Str("resource", resource).
				Msg("failed to shutdown the resource gracefully")
		}
	}

	d.cleanupOrder = nil
	d.cleanupFuncs = make(map[string]func(ctx context.Context) error)
}

// compile-time check that both datastores satisfy the ports the runtime wires.
var (
	_ ports.MarketSummaryStore = (*repos.PostgresMarketSummaryStore)(nil)
	_ ports.MarketSummaryStore = (*repos.MySQLMarketSummaryStore)(nil)
	_ repos.StatementExecutor  = (*repos.PostgresMarketSummaryStore)(nil)
	_ repos.StatementExecutor  = (*repos.MySQLMarketSummaryStore)(nil)
)
