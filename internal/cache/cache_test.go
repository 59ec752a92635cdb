package cache_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dex-api/internal/cache"
	"github.com/KirkDiggler/dex-api/internal/errors"
)

type CacheTestSuite struct {
	suite.Suite
	cache *cache.Cache[string]
	ctx   context.Context
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func (s *CacheTestSuite) SetupTest() {
	c, err := cache.New[string](&cache.Config{Name: "test", Capacity: 3})
	s.Require().NoError(err)
	s.cache = c
	s.ctx = context.Background()
}

func (s *CacheTestSuite) TestGetAfterSet() {
	s.cache.Set("pokemon_25", "pikachu")

	v, ok := s.cache.Get("pokemon_25")
	s.True(ok)
	s.Equal("pikachu", v)

	s.cache.Set("pokemon_25", "raichu")
	v, _ = s.cache.Get("pokemon_25")
	s.Equal("raichu", v)
	s.Equal(1, s.cache.Len())
}

func (s *CacheTestSuite) TestEvictsLeastRecentlyUsed() {
	s.cache.Set("a", "1")
	s.cache.Set("b", "2")
	s.cache.Set("c", "3")

	// touching a makes b the eviction victim
	_, ok := s.cache.Get("a")
	s.Require().True(ok)

	s.cache.Set("d", "4")

	s.Equal(3, s.cache.Len())
	_, ok = s.cache.Get("b")
	s.False(ok)
	for _, key := range []string{"a", "c", "d"} {
		_, ok := s.cache.Get(key)
		s.True(ok, key)
	}
}

func (s *CacheTestSuite) TestReset() {
	s.cache.Set("a", "1")
	s.cache.Reset()

	s.Equal(0, s.cache.Len())
	_, ok := s.cache.Get("a")
	s.False(ok)
}

func (s *CacheTestSuite) TestCoalesceRunsOnce() {
	var calls atomic.Int32
	release := make(chan struct{})

	fn := func(context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}

	const callers = 10
	var started, done sync.WaitGroup
	results := make([]string, callers)
	for i := 0; i < callers; i++ {
		started.Add(1)
		done.Add(1)
		go func(i int) {
			defer done.Done()
			started.Done()
			v, err := s.cache.Coalesce(s.ctx, "pokemon_25", fn)
			s.NoError(err)
			results[i] = v
		}(i)
	}
	started.Wait()
	// give the goroutines time to join the flight
	time.Sleep(50 * time.Millisecond)
	close(release)
	done.Wait()

	s.Equal(int32(1), calls.Load())
	for _, v := range results {
		s.Equal("shared", v)
	}
}

func (s *CacheTestSuite) TestCoalesceReleasesSlotOnFailure() {
	_, err := s.cache.Coalesce(s.ctx, "k", func(context.Context) (string, error) {
		return "", errors.Unavailable("catalog down")
	})
	s.Error(err)
	s.True(errors.IsUnavailable(err))

	v, err := s.cache.Coalesce(s.ctx, "k", func(context.Context) (string, error) {
		return "recovered", nil
	})
	s.NoError(err)
	s.Equal("recovered", v)
}

func (s *CacheTestSuite) TestAbandonedCallerDoesNotCancelComputation() {
	ctx, cancel := context.WithCancel(s.ctx)
	release := make(chan struct{})
	finished := make(chan error, 1)
	callerErr := make(chan error, 1)

	go func() {
		_, err := s.cache.GetOrCompute(ctx, "slow", func(fnCtx context.Context) (string, error) {
			<-release
			finished <- fnCtx.Err()
			return "done", nil
		})
		callerErr <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	s.ErrorIs(<-callerErr, context.Canceled)
	close(release)

	select {
	case err := <-finished:
		s.NoError(err)
	case <-time.After(time.Second):
		s.Fail("computation never finished")
	}

	s.Eventually(func() bool {
		v, ok := s.cache.Get("slow")
		return ok && v == "done"
	}, time.Second, 10*time.Millisecond)
}

func (s *CacheTestSuite) TestGetOrComputeCachesSuccessOnly() {
	var calls int
	fn := func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.Unavailable("flaky")
		}
		return "ok", nil
	}

	_, err := s.cache.GetOrCompute(s.ctx, "k", fn)
	s.Error(err)
	s.Equal(0, s.cache.Len())

	v, err := s.cache.GetOrCompute(s.ctx, "k", fn)
	s.NoError(err)
	s.Equal("ok", v)

	v, err = s.cache.GetOrCompute(s.ctx, "k", fn)
	s.NoError(err)
	s.Equal("ok", v)
	s.Equal(2, calls)
}

func (s *CacheTestSuite) TestInvalidCapacity() {
	_, err := cache.New[int](&cache.Config{Capacity: -1})
	s.Error(err)

	c, err := cache.New[int](nil)
	s.Require().NoError(err)
	for i := 0; i < cache.DefaultCapacity+5; i++ {
		c.Set(cache.Key("n", i), i)
	}
	s.Equal(cache.DefaultCapacity, c.Len())
}

func (s *CacheTestSuite) TestKey() {
	s.Equal("pokemon_25", cache.Key("pokemon", 25))
	s.Equal("search_pika_true_20", cache.Key("search", "pika", true, 20))
	s.Equal("reset", cache.Key("reset"))
}
