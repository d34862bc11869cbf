package repos_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/adapters/repos"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

const mysqlStatement = "SELECT symbol, is_expiry_week AS isExpiryWeek FROM market_summary WHERE sector = ?"

func runMySQLStoreTest(
	t *testing.T,
	setupMock func(sqlmock.Sqlmock),
	testFn func(*testing.T, *repos.MySQLMarketSummaryStore),
) {
	t.Helper()
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	setupMock(mock)

	store := repos.NewMySQLMarketSummaryStore(sqlx.NewDb(db, "mysql"), nil, logger.NewTestLogger())
	testFn(t, store)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLMarketSummaryStore_QueryRows(t *testing.T) {
	t.Parallel()

	statement := model.Statement{SQL: mysqlStatement, Params: []any{"Banking"}}

	t.Run("converts raw bytes and keeps labels", func(t *testing.T) {
		runMySQLStoreTest(t, func(mock sqlmock.Sqlmock) {
			rows := sqlmock.NewRows([]string{"symbol", "isExpiryWeek"}).
				AddRow([]byte("HDFC"), int64(1)).
				AddRow([]byte("KOTAKBANK"), int64(0))

			mock.ExpectQuery(regexp.QuoteMeta(mysqlStatement)).
				WithArgs("Banking").
				WillReturnRows(rows)
		}, func(t *testing.T, store *repos.MySQLMarketSummaryStore) {
			rows, err := store.QueryRows(context.Background(), statement)
			require.NoError(t, err)
			require.Len(t, rows, 2)

			require.Equal(t, "HDFC", rows[0].String(model.AliasSymbol))
			require.True(t, rows[0].Bool(model.AliasIsExpiryWeek))
			require.False(t, rows[1].Bool(model.AliasIsExpiryWeek))
		})
	})

	t.Run("query failure", func(t *testing.T) {
		runMySQLStoreTest(t, func(mock sqlmock.Sqlmock) {
			mock.ExpectQuery(regexp.QuoteMeta(mysqlStatement)).
				WithArgs("Banking").
				WillReturnError(errors.New("Table 'option_data.market_summary' doesn't exist"))
		}, func(t *testing.T, store *repos.MySQLMarketSummaryStore) {
			_, err := store.QueryRows(context.Background(), statement)
			require.ErrorIs(t, err, model.ErrDatabaseQuery)
		})
	})

	t.Run("row iteration failure", func(t *testing.T) {
		runMySQLStoreTest(t, func(mock sqlmock.Sqlmock) {
			rows := sqlmock.NewRows([]string{"symbol"}).
				AddRow("SBIN").
				RowError(0, errors.New("bad connection"))

			mock.ExpectQuery(regexp.QuoteMeta(mysqlStatement)).
				WithArgs("Banking").
				WillReturnRows(rows)
		}, func(t *testing.T, store *repos.MySQLMarketSummaryStore) {
			_, err := store.QueryRows(context.Background(), statement)
			require.ErrorIs(t, err, model.ErrDatabaseQuery)
		})
	})
}

func TestMySQLMarketSummaryStore_Ping(t *testing.T) {
	runMySQLStoreTest(t, func(mock sqlmock.Sqlmock) {
		mock.ExpectPing().WillReturnError(errors.New("i/o timeout"))
	}, func(t *testing.T, store *repos.MySQLMarketSummaryStore) {
		require.ErrorIs(t, store.Ping(context.Background()), model.ErrDatabaseConnection)
		require.Equal(t, repos.DriverMySQL, store.Driver())
	})
}
