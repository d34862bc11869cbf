package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/config"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a hash field does not exist.
var ErrCacheMiss = errors.New("cache miss")

type RedisClient struct {
	client *redis.Client
	logger logger.Logger
	config config.Cache
}

func NewRedisClient(cfg config.Cache, log logger.Logger) *RedisClient {
	return &RedisClient{
		client: redis.NewClient(&redis.Options{
			Addr:         cfg.Address,
			Password:     cfg.Password,
			DB:           int(cfg.DB),
			PoolSize:     int(cfg.PoolSize),
			MinIdleConns: int(cfg.MinIdleConns),
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			PoolTimeout:  cfg.PoolTimeout,
			MaxRetries:   int(cfg.MaxRetries),
		}),
		logger: log.Component("redis"),
		config: cfg,
	}
}

// Key namespaces a key with the configured prefix.
func (c *RedisClient) Key(name string) string {
	return c.config.KeyPrefix + name
}

func (c *RedisClient) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisClient) Close() error {
	return c.client.Close()
}

func (c *RedisClient) HGet(ctx context.Context, key, field string) ([]byte, error) {
	startTime := time.Now()

	result, err := c.client.HGet(ctx, key, field).Bytes()

	c.logger.Debug().
		Str("key", key).
		Str("field", field).
		Int64("duration_ms", time.Since(startTime).Milliseconds()).
		Bool("hit", err == nil).
		Msg("redis hget operation")

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}

		c.logger.Error().Err(err).Str("key", key).Msg("redis hget operation failed")

		return nil, err
	}

	return result, nil
}

func (c *RedisClient) HSet(ctx context.Context, key, field string, value []byte) error {
	startTime := time.Now()
	var err error

	defer func() {
		c.logger.Debug().
			Str("key", key).
			Str("field", field).
			Int64("duration_ms", time.Since(startTime).Milliseconds()).
			Bool("success", err == nil).
			Msg("redis hset operation")
	}()

	err = c.client.HSet(ctx, key, field, value).Err()

	return err
}

func (c *RedisClient) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	startTime := time.Now()

	result, err := c.client.HGetAll(ctx, key).Result()

	c.logger.Debug().
		Str("key", key).
		Int("fields", len(result)).
		Int64("duration_ms", time.Since(startTime).Milliseconds()).
		Msg("redis hgetall operation")

	return result, err
}

// IsHealthy checks if the cache is available.
func (c *RedisClient) IsHealthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return c.Ping(ctx) == nil
}
