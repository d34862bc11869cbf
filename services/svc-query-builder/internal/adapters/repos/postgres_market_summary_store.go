package repos

import (
	"context"
	"fmt"

	"github.com/Shubhamshah007/nse-query-builder/pkg/circuitbreaker"
	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type (
	// PoolOps defines the interface for database operations.
	// This allows injecting mock implementations for testing.
	PoolOps interface {
		Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
		Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
		Ping(ctx context.Context) error
	}

	// PostgresMarketSummaryStore runs compiled statements against Postgres.
	PostgresMarketSummaryStore struct {
		pool    PoolOps
		scanner Scanner
		breaker *circuitbreaker.CircuitBreaker[[]model.Row]
		logger  logger.Logger
	}
)

func NewPostgresMarketSummaryStore(
	pool PoolOps,
	scanner Scanner,
	breaker *circuitbreaker.CircuitBreaker[[]model.Row],
	log logger.Logger,
) *PostgresMarketSummaryStore {
	return &PostgresMarketSummaryStore{
		pool:    pool,
		scanner: scanner,
		breaker: breaker,
		logger:  log.Component("postgres_store"),
	}
}

func (s *PostgresMarketSummaryStore) Driver() string {
	return DriverPostgres
}

func (s *PostgresMarketSummaryStore) QueryRows(ctx context.Context, statement model.Statement) ([]model.Row, error) {
	return circuitbreaker.Execute(s.breaker, func() ([]model.Row, error) {
		return s.queryRows(ctx, statement)
	})
}

func (s *PostgresMarketSummaryStore) queryRows(ctx context.Context, statement model.Statement) ([]model.Row, error) {
	rows, err := s.pool.Query(ctx, statement.SQL, statement.Params...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	result, err := s.scanner.ScanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return result, nil
}

// ExecStatement runs a statement that returns no rows.
func (s *PostgresMarketSummaryStore) ExecStatement(ctx context.Context, sql string, args ...any) error {
	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return nil
}

func (s *PostgresMarketSummaryStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseConnection, err)
	}

	return nil
}
