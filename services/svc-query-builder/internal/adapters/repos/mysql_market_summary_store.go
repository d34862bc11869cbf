package repos

import (
	"context"
	"fmt"

	"github.com/Shubhamshah007/nse-query-builder/pkg/circuitbreaker"
	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
	"github.com/jmoiron/sqlx"
)

// MySQLMarketSummaryStore runs compiled statements against MySQL through sqlx.
type MySQLMarketSummaryStore struct {
	db      *sqlx.DB
	breaker *circuitbreaker.CircuitBreaker[[]model.Row]
	logger  logger.Logger
}

func NewMySQLMarketSummaryStore(
	db *sqlx.DB,
	breaker *circuitbreaker.CircuitBreaker[[]model.Row],
	log logger.Logger,
) *MySQLMarketSummaryStore {
	return &MySQLMarketSummaryStore{
		db:      db,
		breaker: breaker,
		logger:  log.Component("mysql_store"),
	}
}

func (s *MySQLMarketSummaryStore) Driver() string {
	return DriverMySQL
}

func (s *MySQLMarketSummaryStore) QueryRows(ctx context.Context, statement model.Statement) ([]model.Row, error) {
	return circuitbreaker.Execute(s.breaker, func() ([]model.Row, error) {
		return s.queryRows(ctx, statement)
	})
}

func (s *MySQLMarketSummaryStore) queryRows(ctx context.Context, statement model.Statement) ([]model.Row, error) {
	rows, err := s.db.QueryxContext(ctx, statement.SQL, statement.Params...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn().Err(closeErr).Msg("failed to close rows")
		}
	}()

	result := make([]model.Row, 0)

	for rows.Next() {
		record := make(map[string]any)
		if err := rows.MapScan(record); err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
		}

		result = append(result, model.NewRow(record))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return result, nil
}

// ExecStatement runs a statement that returns no rows.
func (s *MySQLMarketSummaryStore) ExecStatement(ctx context.Context, sql string, args ...any) error {
	if _, err := s.db.ExecContext(ctx, sql, args...); err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return nil
}

func (s *MySQLMarketSummaryStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseConnection, err)
	}

	return nil
}
