package repos

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
)

const createMarketSummaryTable = `CREATE TABLE market_summary (
    symbol VARCHAR(32) PRIMARY KEY,
    current_call_iv FLOAT DEFAULT 0,
    current_put_iv FLOAT DEFAULT 0,
    current_price FLOAT DEFAULT 0,
    yesterday_close_price FLOAT DEFAULT 0,
    yesterday_close_call_iv FLOAT DEFAULT 0,
    today_930_call_iv FLOAT DEFAULT 0,
    similar_results_avg_iv FLOAT DEFAULT 0,
    avg_7day_call_iv FLOAT DEFAULT 0,
    avg_21day_call_iv FLOAT DEFAULT 0,
    avg_90day_call_iv FLOAT DEFAULT 0,
    sector VARCHAR(50) DEFAULT 'Unknown',
    instrument_type VARCHAR(10) DEFAULT 'STOCK',
    result_month VARCHAR(7),
    is_expiry_week BOOLEAN DEFAULT false,
    last_updated TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

var marketSummaryIndexes = []string{
	"CREATE INDEX idx_market_summary_sector ON market_summary(sector)",
	"CREATE INDEX idx_market_summary_instrument_type ON market_summary(instrument_type)",
	"CREATE INDEX idx_market_summary_result_month ON market_summary(result_month)",
}

type (
	// StatementExecutor runs statements that return no rows.
	StatementExecutor interface {
		ExecStatement(ctx context.Context, sql string, args ...any) error
	}

	// MarketSummarySeeder drops and recreates market_summary, then loads rows into it.
	MarketSummarySeeder struct {
		executor StatementExecutor
		dialect  Dialect
		logger   logger.Logger
	}
)

func NewMarketSummarySeeder(executor StatementExecutor, dialect Dialect, log logger.Logger) *MarketSummarySeeder {
	return &MarketSummarySeeder{
		executor: executor,
		dialect:  dialect,
		logger:   log.Component("seeder"),
	}
}

func (s *MarketSummarySeeder) Seed(ctx context.Context, rows []model.MarketSummary) (int, error) {
	statements := append([]string{
		"DROP TABLE IF EXISTS " + model.MarketSummaryTable,
		createMarketSummaryTable,
	}, marketSummaryIndexes...)

	for _, statement := range statements {
		if err := s.executor.ExecStatement(ctx, statement); err != nil {
			return 0, fmt.Errorf("preparing %s: %w", model.MarketSummaryTable, err)
		}
	}

	if len(rows) == 0 {
		return 0, nil
	}

	sql, args, err := s.insertStatement(rows)
	if err != nil {
		return 0, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := s.executor.ExecStatement(ctx, sql, args...); err != nil {
		return 0, fmt.Errorf("inserting sample rows: %w", err)
	}

	s.logger.Info().
		Int("rows", len(rows)).
		Str("driver", s.dialect.Name).
		Msg("market summary seeded")

	return len(rows), nil
}

func (s *MarketSummarySeeder) insertStatement(rows []model.MarketSummary) (string, []any, error) {
	builder := sq.StatementBuilder.
		PlaceholderFormat(s.dialect.Placeholder).
		Insert(model.MarketSummaryTable).
		Columns(
			"symbol", "current_call_iv", "current_put_iv", "current_price", "yesterday_close_price",
			"yesterday_close_call_iv", "today_930_call_iv", "similar_results_avg_iv",
			"avg_7day_call_iv", "avg_21day_call_iv", "avg_90day_call_iv",
			"sector", "instrument_type", "result_month", "is_expiry_week",
		)

	for _, row := range rows {
		builder = builder.Values(
			row.Symbol, row.CurrentCallIV, row.CurrentPutIV, row.CurrentPrice, row.YesterdayClosePrice,
			row.YesterdayCloseCallIV, row.Today930CallIV, row.SimilarResultsAvgIV,
			row.Avg7DayCallIV, row.Avg21DayCallIV, row.Avg90DayCallIV,
			row.Sector, string(row.InstrumentType), row.ResultMonth, row.IsExpiryWeek,
		)
	}

	return builder.ToSql()
}
