package payload_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/pkg/clock"
	"github.com/KirkDiggler/dex-api/internal/repositories/payload"
	"github.com/KirkDiggler/dex-api/internal/testutils"
)

type RedisPayloadTestSuite struct {
	suite.Suite
	mr    *miniredis.Miniredis
	clock *clock.Manual
	repo  payload.Repository
	ctx   context.Context
}

func (s *RedisPayloadTestSuite) SetupTest() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr
	s.clock = clock.NewManual(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	s.ctx = context.Background()

	repo, err := payload.NewRedis(&payload.Config{Client: client, Clock: s.clock})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisPayloadTestSuite) TestNewRedis() {
	_, err := payload.NewRedis(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = payload.NewRedis(&payload.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisPayloadTestSuite) TestStoreAndGet() {
	results := []*catalog.Pokemon{testutils.CreateTestPokemon(25, "皮卡丘", "Pikachu")}

	out, err := s.repo.Store(s.ctx, payload.StoreInput{Query: "  Pikachu ", Results: results})
	s.Require().NoError(err)
	s.Equal("pikachu", out.Snapshot.Query)

	s.True(s.mr.Exists("dex:payload:query:pikachu"))
	s.True(s.mr.Exists("dex:payload:latest"))

	s.Run("by query", func() {
		got, err := s.repo.Get(s.ctx, payload.GetInput{Query: "PIKACHU"})
		s.Require().NoError(err)
		s.Require().Len(got.Snapshot.Results, 1)

		p := got.Snapshot.Results[0]
		s.Equal(25, p.ID)
		s.Equal("皮卡丘", p.Names.Local)
		s.Equal("Pikachu", p.Names.Canonical)
		s.Equal([]string{"https://img.example/alt.png"}, p.Images.Alternatives)
		s.Equal(results[0].Stats, p.Stats)
		s.True(got.Snapshot.StoredAt.Equal(s.clock.Now()))
	})

	s.Run("latest", func() {
		got, err := s.repo.Get(s.ctx, payload.GetInput{})
		s.Require().NoError(err)
		s.Equal("pikachu", got.Snapshot.Query)
	})

	s.Run("latest follows the newest store", func() {
		_, err := s.repo.Store(s.ctx, payload.StoreInput{
			Query:   "mew",
			Results: []*catalog.Pokemon{testutils.CreateTestPokemon(151, "夢幻", "Mew")},
		})
		s.Require().NoError(err)

		got, err := s.repo.Get(s.ctx, payload.GetInput{})
		s.Require().NoError(err)
		s.Equal("mew", got.Snapshot.Query)
	})
}

func (s *RedisPayloadTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, payload.GetInput{Query: "nothing"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisPayloadTestSuite) TestStoreRejectsEmptyQuery() {
	_, err := s.repo.Store(s.ctx, payload.StoreInput{Query: " "})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisPayloadTestSuite) TestTTL() {
	_, err := s.repo.Store(s.ctx, payload.StoreInput{Query: "eevee", TTL: time.Minute})
	s.Require().NoError(err)

	s.mr.FastForward(2 * time.Minute)

	_, err = s.repo.Get(s.ctx, payload.GetInput{Query: "eevee"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisPayloadTestSuite) TestCorruptBlob() {
	s.Require().NoError(s.mr.Set("dex:payload:query:bad", "\xc1"))

	_, err := s.repo.Get(s.ctx, payload.GetInput{Query: "bad"})
	s.True(errors.IsDataLoss(err))
}

func (s *RedisPayloadTestSuite) TestUnavailable() {
	s.mr.Close()

	_, err := s.repo.Get(s.ctx, payload.GetInput{Query: "pikachu"})
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))
}

func TestRedisPayloadTestSuite(t *testing.T) {
	suite.Run(t, new(RedisPayloadTestSuite))
}
