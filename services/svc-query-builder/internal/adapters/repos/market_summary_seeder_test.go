package repos_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/adapters/repos"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
	"github.com/stretchr/testify/require"
)

type recordedStatement struct {
	sql  string
	args []any
}

type fakeExecutor struct {
	statements []recordedStatement
	failOn     string
}

func (f *fakeExecutor) ExecStatement(_ context.Context, sql string, args ...any) error {
	if f.failOn != "" && strings.HasPrefix(sql, f.failOn) {
		return errors.New("permission denied")
	}

	f.statements = append(f.statements, recordedStatement{sql: sql, args: args})

	return nil
}

func TestMarketSummarySeeder_Seed(t *testing.T) {
	t.Parallel()

	t.Run("recreates the table and inserts every row", func(t *testing.T) {
		t.Parallel()

		executor := &fakeExecutor{}
		seeder := repos.NewMarketSummarySeeder(executor, repos.Dialect{Name: repos.DriverPostgres, Placeholder: sq.Dollar}, logger.NewTestLogger())

		rows := model.SampleMarketSummaries()[:2]

		inserted, err := seeder.Seed(context.Background(), rows)
		require.NoError(t, err)
		require.Equal(t, 2, inserted)

		require.Len(t, executor.statements, 6)
		require.Equal(t, "DROP TABLE IF EXISTS market_summary", executor.statements[0].sql)
		require.True(t, strings.HasPrefix(executor.statements[1].sql, "CREATE TABLE market_summary"))
		require.Contains(t, executor.statements[4].sql, "idx_market_summary_result_month")

		insert := executor.statements[5]
		require.True(t, strings.HasPrefix(insert.sql, "INSERT INTO market_summary"))
		require.Contains(t, insert.sql, "$30")
		require.Len(t, insert.args, 30)
		require.Equal(t, "RELIANCE", insert.args[0])
		require.Equal(t, "STOCK", insert.args[12])
	})

	t.Run("no rows only prepares the table", func(t *testing.T) {
		t.Parallel()

		executor := &fakeExecutor{}
		seeder := repos.NewMarketSummarySeeder(executor, repos.Dialect{Name: repos.DriverMySQL, Placeholder: sq.Question}, logger.NewTestLogger())

		inserted, err := seeder.Seed(context.Background(), nil)
		require.NoError(t, err)
		require.Zero(t, inserted)
		require.Len(t, executor.statements, 5)
	})

	t.Run("ddl failure stops the seed", func(t *testing.T) {
		t.Parallel()

		executor := &fakeExecutor{failOn: "CREATE TABLE"}
		seeder := repos.NewMarketSummarySeeder(executor, repos.Dialect{Name: repos.DriverPostgres, Placeholder: sq.Dollar}, logger.NewTestLogger())

		_, err := seeder.Seed(context.Background(), model.SampleMarketSummaries())
		require.Error(t, err)
		require.Contains(t, err.Error(), "preparing market_summary")
		require.Len(t, executor.statements, 1)
	})
}
