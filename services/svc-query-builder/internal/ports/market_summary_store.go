package ports

import (
	"context"

	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
)

type (
	// RowQuerier runs a compiled read statement and returns rows keyed by column label.
	RowQuerier interface {
		QueryRows(ctx context.Context, statement model.Statement) ([]model.Row, error)
	}

	// MarketSummaryStore is the datastore behind the query builder.
	MarketSummaryStore interface {
		RowQuerier
		Pinger

		// Driver names the database engine, which decides the SQL dialect.
		Driver() string
	}

	// MarketSummarySeeder recreates the market_summary table with demo data.
	MarketSummarySeeder interface {
		Seed(ctx context.Context, rows []model.MarketSummary) (int, error)
	}
)
