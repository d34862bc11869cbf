package infrastructure

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/config"
	"github.com/cenkalti/backoff/v5"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

// NewPostgresPool opens a pgx pool from DATABASE_URL or the discrete settings
// and waits for the first successful ping.
func NewPostgresPool(ctx context.Context, cfg config.Database, retry config.Backoff) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(PostgresConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pingWithBackoff(ctx, retry, pool.Ping); err != nil {
		pool.Close()

		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

// PostgresConnString prefers the full URL over the discrete connection settings.
func PostgresConnString(cfg config.Database) string {
	if cfg.URL != "" {
		return cfg.URL
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		cfg.Username,
		cfg.Password,
		net.JoinHostPort(cfg.Host, strconv.FormatUint(uint64(cfg.Port), 10)),
		cfg.Name,
		cfg.SSLMode,
	)
}

// NewMySQLDB opens a sqlx handle on the MySQL driver and waits for the first successful ping.
func NewMySQLDB(ctx context.Context, cfg config.Database, retry config.Backoff) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", MySQLDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening mysql handle: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MinConnections)
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	if err := pingWithBackoff(ctx, retry, db.PingContext); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func MySQLDSN(cfg config.Database) string {
	dsn := mysql.NewConfig()
	dsn.User = cfg.Username
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(cfg.Host, strconv.FormatUint(uint64(cfg.Port), 10))
	dsn.DBName = cfg.Name
	dsn.Timeout = cfg.ConnectTimeout
	dsn.ParseTime = true

	return dsn.FormatDSN()
}

func pingWithBackoff(ctx context.Context, cfg config.Backoff, ping func(context.Context) error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = cfg.BaseDelay
	policy.Multiplier = cfg.Multiplier
	policy.RandomizationFactor = cfg.Jitter
	policy.MaxInterval = cfg.MaxDelay

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		return struct{}{}, ping(attemptCtx)
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxElapsedTime(cfg.MaxElapsed),
		backoff.WithMaxTries(cfg.MaxAttempts),
	)

	return err
}
