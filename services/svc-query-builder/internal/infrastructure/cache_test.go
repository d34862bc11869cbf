package infrastructure

import (
	"context"
	"testing"

	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/config"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
)

type RedisClientTestSuite struct {
	suite.Suite
	server *miniredis.Miniredis
	client *RedisClient
}

func TestRedisClientTestSuite(t *testing.T) {
	suite.Run(t, new(RedisClientTestSuite))
}

func (s *RedisClientTestSuite) SetupTest() {
	s.server = miniredis.RunT(s.T())
	s.client = NewRedisClient(config.Cache{Address: s.server.Addr(), KeyPrefix: "qb:"}, logger.NewTestLogger())
}

func (s *RedisClientTestSuite) TearDownTest() {
	s.Require().NoError(s.client.Close())
}

func (s *RedisClientTestSuite) TestKey() {
	s.Equal("qb:templates", s.client.Key("templates"))
}

func (s *RedisClientTestSuite) TestHashRoundTrip() {
	ctx := context.Background()

	s.Require().NoError(s.client.HSet(ctx, "qb:templates", "t1", []byte(`{"id":"t1"}`)))
	s.Require().NoError(s.client.HSet(ctx, "qb:templates", "t2", []byte(`{"id":"t2"}`)))

	value, err := s.client.HGet(ctx, "qb:templates", "t1")
	s.Require().NoError(err)
	s.JSONEq(`{"id":"t1"}`, string(value))

	all, err := s.client.HGetAll(ctx, "qb:templates")
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *RedisClientTestSuite) TestHGet_Miss() {
	_, err := s.client.HGet(context.Background(), "qb:templates", "missing")
	s.ErrorIs(err, ErrCacheMiss)
}

func (s *RedisClientTestSuite) TestIsHealthy() {
	s.True(s.client.IsHealthy(context.Background()))

	s.server.Close()

	s.False(s.client.IsHealthy(context.Background()))
}
