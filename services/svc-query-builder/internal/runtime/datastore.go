package runtime

import (
	"context"
	"fmt"

	"github.com/Shubhamshah007/nse-query-builder/pkg/circuitbreaker"
	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/adapters/repos"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/config"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/infrastructure"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/ports"
)

// Datastore bundles the market summary store for the configured driver with
// the matching SQL dialect and seeder.
type Datastore struct {
	Store   ports.MarketSummaryStore
	Dialect repos.Dialect
	Seeder  *repos.MarketSummarySeeder
	close   func()
}

// OpenDatastore connects to the configured database. The caller owns Close.
func OpenDatastore(ctx context.Context, cfg *config.ServiceConfig, log logger.Logger) (*Datastore, error) {
	driver := cfg.Database.EffectiveDriver()

	dialect, err := repos.DialectFor(driver)
	if err != nil {
		return nil, err
	}

	breaker := newDatastoreBreaker(cfg.CircuitBreaker, log)

	switch dialect.Name {
	case repos.DriverPostgres:
		pool, err := infrastructure.NewPostgresPool(ctx, cfg.Database, cfg.Backoff)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}

		store := repos.NewPostgresMarketSummaryStore(pool, repos.NewPgxScanner(), breaker, log)

		return &Datastore{
			Store:   store,
			Dialect: dialect,
			Seeder:  repos.NewMarketSummarySeeder(store, dialect, log),
			close:   pool.Close,
		}, nil

	case repos.DriverMySQL:
		db, err := infrastructure.NewMySQLDB(ctx, cfg.Database, cfg.Backoff)
		if err != nil {
			return nil, fmt.Errorf("connecting to mysql: %w", err)
		}

		store := repos.NewMySQLMarketSummaryStore(db, breaker, log)

		return &Datastore{
			Store:   store,
			Dialect: dialect,
			Seeder:  repos.NewMarketSummarySeeder(store, dialect, log),
			close:   func() { _ = db.Close() },
		}, nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

func (d *Datastore) Close() {
	if d.close != nil {
		d.close()
	}
}

// newDatastoreBreaker returns nil when the breaker is disabled. Cancelled
// requests do not count as datastore failures.
func newDatastoreBreaker(cfg config.CircuitBreaker, log logger.Logger) *circuitbreaker.CircuitBreaker[[]model.Row] {
	breakerLog := log.Component("circuit_breaker")

	return circuitbreaker.New[[]model.Row](circuitbreaker.Config{
		Name:             "market_summary",
		Enabled:          cfg.Enabled,
		MaxRequests:      cfg.MaxRequests,
		Interval:         cfg.Interval,
		Timeout:          cfg.Timeout,
		FailureThreshold: cfg.FailureThreshold,
		IgnoredErrors:    []error{context.Canceled},
		OnStateChange: func(name, from, to string) {
			breakerLog.Warn().
				Str("breaker", name).
				Str("from", from).
				Str("to", to).
				Msg("circuit breaker state changed")
		},
	})
}
