package repos_test

import (
	"context"
	"testing"

	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/adapters/repos"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/config"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/infrastructure"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func customTemplate(id, name string) model.Template {
	return model.Template{
		ID:       id,
		Name:     name,
		Category: model.CategoryCustom,
		Query: model.Query{
			Groups: []model.Group{{
				Conditions: []model.Condition{{
					Field1:   model.FieldCurrentPutIV,
					Operator: model.OpGreaterThan,
					Value:    model.Float(30),
				}},
			}},
		},
		Tags: []string{"put"},
	}
}

func TestInMemoryTemplateRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("lists built-ins in order", func(t *testing.T) {
		t.Parallel()

		templates, err := repos.NewInMemoryTemplateRepository(false).List(ctx)
		require.NoError(t, err)
		require.Len(t, templates, 3)
		require.Equal(t, "high_iv_vs_3months", templates[0].ID)
		require.Equal(t, "intraday_iv_spike", templates[1].ID)
		require.Equal(t, "sector_iv_comparison", templates[2].ID)
	})

	t.Run("fetches a built-in", func(t *testing.T) {
		t.Parallel()

		template, err := repos.NewInMemoryTemplateRepository(false).FetchByID(ctx, "intraday_iv_spike")
		require.NoError(t, err)
		require.Equal(t, "Intraday IV Spike", template.Name)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		t.Parallel()

		_, err := repos.NewInMemoryTemplateRepository(false).FetchByID(ctx, "nope")
		require.ErrorIs(t, err, model.ErrTemplateNotFound)

		var notFound *model.TemplateNotFoundError
		require.ErrorAs(t, err, &notFound)
		require.Equal(t, "nope", notFound.ID)
	})

	t.Run("read-only store rejects saves", func(t *testing.T) {
		t.Parallel()

		err := repos.NewInMemoryTemplateRepository(false).Save(ctx, customTemplate("a", "A"))
		require.ErrorIs(t, err, model.ErrTemplateStoreReadOnly)
	})

	t.Run("writable store keeps saved templates after built-ins", func(t *testing.T) {
		t.Parallel()

		repo := repos.NewInMemoryTemplateRepository(true)
		require.NoError(t, repo.Save(ctx, customTemplate("b", "Zeta")))
		require.NoError(t, repo.Save(ctx, customTemplate("a", "Alpha")))

		templates, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, templates, 5)
		require.Equal(t, "Alpha", templates[3].Name)
		require.Equal(t, "Zeta", templates[4].Name)

		fetched, err := repo.FetchByID(ctx, "b")
		require.NoError(t, err)
		require.Equal(t, "Zeta", fetched.Name)
	})
}

type RedisTemplateRepositoryTestSuite struct {
	suite.Suite
	miniRedis   *miniredis.Miniredis
	redisClient *infrastructure.RedisClient
	repo        *repos.RedisTemplateRepository
}

func TestRedisTemplateRepositoryTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(RedisTemplateRepositoryTestSuite))
}

func (s *RedisTemplateRepositoryTestSuite) SetupTest() {
	var err error
	s.miniRedis, err = miniredis.Run()
	s.Require().NoError(err)

	s.redisClient = infrastructure.NewRedisClient(config.Cache{
		Address:   s.miniRedis.Addr(),
		KeyPrefix: "qb:",
	}, logger.NewTestLogger())
	s.repo = repos.NewRedisTemplateRepository(s.redisClient, logger.NewTestLogger())
}

func (s *RedisTemplateRepositoryTestSuite) TearDownTest() {
	if s.redisClient != nil {
		_ = s.redisClient.Close()
	}
	if s.miniRedis != nil {
		s.miniRedis.Close()
	}
}

func (s *RedisTemplateRepositoryTestSuite) TestSaveAndFetch() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Save(ctx, customTemplate("put-spike", "Put spike")))

	s.True(s.miniRedis.Exists("qb:templates:v1"))

	template, err := s.repo.FetchByID(ctx, "put-spike")
	s.Require().NoError(err)
	s.Equal("Put spike", template.Name)
	s.Equal(model.OpGreaterThan, template.Query.Groups[0].Conditions[0].Operator)
	s.InDelta(30, *template.Query.Groups[0].Conditions[0].Value, 1e-9)
}

func (s *RedisTemplateRepositoryTestSuite) TestFetchBuiltinWithoutRedisEntry() {
	template, err := s.repo.FetchByID(context.Background(), "sector_iv_comparison")
	s.Require().NoError(err)
	s.Equal(model.CategorySector, template.Category)
}

func (s *RedisTemplateRepositoryTestSuite) TestFetchMissing() {
	_, err := s.repo.FetchByID(context.Background(), "missing")
	s.ErrorIs(err, model.ErrTemplateNotFound)
}

func (s *RedisTemplateRepositoryTestSuite) TestListSkipsCorruptEntries() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Save(ctx, customTemplate("ok", "Good")))
	s.miniRedis.HSet("qb:templates:v1", "broken", "{not json")

	templates, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Len(templates, 4)
	s.Equal("ok", templates[3].ID)
}

func (s *RedisTemplateRepositoryTestSuite) TestUnavailableRedis() {
	s.miniRedis.Close()

	_, err := s.repo.List(context.Background())
	s.Error(err)
}
