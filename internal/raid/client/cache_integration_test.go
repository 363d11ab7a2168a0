//go:build integration

package client_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"conflux/internal/raid/client"
	"conflux/internal/raid/client/mocks"
	"conflux/internal/raid/models"
	"conflux/pkg/testutil/containers"
)

type CachedRegistrySuite struct {
	suite.Suite
	redis  *containers.RedisContainer
	ctrl   *gomock.Controller
	inner  *mocks.MockRegistry
	cached *client.CachedRegistry
}

func TestCachedRegistrySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CachedRegistrySuite))
}

func (s *CachedRegistrySuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *CachedRegistrySuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))

	s.ctrl = gomock.NewController(s.T())
	s.inner = mocks.NewMockRegistry(s.ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cached, err := client.NewCached(s.inner, s.redis.Client, time.Minute, logger)
	s.Require().NoError(err)
	s.cached = cached
}

func (s *CachedRegistrySuite) TearDownTest() {
	s.ctrl.Finish()
}

func dto(version int) *models.RaidDto {
	return &models.RaidDto{Identifier: models.Identifier{
		IDValue:   "https://raid.org/10.25.10.1234/a1b2c",
		SchemaURI: "https://raid.org/",
		Version:   version,
	}}
}

func (s *CachedRegistrySuite) TestGetPopulatesAndServesFromCache() {
	ctx := context.Background()

	// Only the first read should hit the registry.
	s.inner.EXPECT().Get(gomock.Any(), "10.25.10.1234", "a1b2c").Return(dto(1), nil).Times(1)

	first, err := s.cached.Get(ctx, "10.25.10.1234", "a1b2c")
	s.Require().NoError(err)
	s.Equal(1, first.Identifier.Version)

	second, err := s.cached.Get(ctx, "10.25.10.1234", "a1b2c")
	s.Require().NoError(err)
	s.Equal(first, second)
}

func (s *CachedRegistrySuite) TestCorruptEntryIsOverwritten() {
	ctx := context.Background()

	s.Require().NoError(s.redis.Client.Set(ctx, "raid:10.25.10.1234/a1b2c", "not-json", time.Minute).Err())
	s.inner.EXPECT().Get(gomock.Any(), "10.25.10.1234", "a1b2c").Return(dto(3), nil).Times(1)

	got, err := s.cached.Get(ctx, "10.25.10.1234", "a1b2c")
	s.Require().NoError(err)
	s.Equal(3, got.Identifier.Version)

	// The corrupt entry was replaced; the next read stays in the cache.
	again, err := s.cached.Get(ctx, "10.25.10.1234", "a1b2c")
	s.Require().NoError(err)
	s.Equal(3, again.Identifier.Version)
}

func (s *CachedRegistrySuite) TestUpdateWritesThrough() {
	ctx := context.Background()

	s.inner.EXPECT().
		Update(gomock.Any(), "10.25.10.1234", "a1b2c", gomock.Any()).
		Return(dto(2), nil)

	_, err := s.cached.Update(ctx, "10.25.10.1234", "a1b2c", &models.UpdateRequest{})
	s.Require().NoError(err)

	// The updated record is served from the cache without another Get.
	got, err := s.cached.Get(ctx, "10.25.10.1234", "a1b2c")
	s.Require().NoError(err)
	s.Equal(2, got.Identifier.Version)
}

func (s *CachedRegistrySuite) TestMintBypassesCache() {
	ctx := context.Background()

	s.inner.EXPECT().Mint(gomock.Any(), gomock.Any()).Return(dto(1), nil)

	_, err := s.cached.Mint(ctx, &models.CreateRequest{})
	s.Require().NoError(err)

	exists, err := s.redis.Client.Exists(ctx, "raid:10.25.10.1234/a1b2c").Result()
	s.Require().NoError(err)
	s.Zero(exists)
}
