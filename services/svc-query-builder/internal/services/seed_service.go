package services

import (
	"context"

	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/ports"
)

// SeedService loads the demo market summary dataset.
type SeedService struct {
	seeder ports.MarketSummarySeeder
	logger logger.Logger
}

func NewSeedService(seeder ports.MarketSummarySeeder, log logger.Logger) *SeedService {
	return &SeedService{
		seeder: seeder,
		logger: log.Component("seed_service"),
	}
}

// SeedSampleData replaces the contents of market_summary with the sample rows.
func (s *SeedService) SeedSampleData(ctx context.Context) (int, error) {
	rows := model.SampleMarketSummaries()

	s.logger.Warn().
		Str("table", model.MarketSummaryTable).
		Int("rows", len(rows)).
		Msg("dropping and recreating table")

	return s.seeder.Seed(ctx, rows)
}
