//go:build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"archipelago/internal/snapshot/store/redis"
	"archipelago/internal/snapshot/store/storetest"
	"archipelago/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	storetest.Suite
	redis *containers.RedisContainer
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.NewStore = func() storetest.Store {
		s.Require().NoError(s.redis.FlushAll(context.Background()))
		return redis.New(s.redis.Client, 0)
	}
}

func (s *RedisStoreSuite) TestTTLApplied() {
	ctx := context.Background()
	store := redis.New(s.redis.Client, time.Minute)
	s.Require().NoError(store.Put(ctx, "archipelago/ttl", []byte(`{}`)))

	ttl, err := s.redis.Client.TTL(ctx, "archipelago/ttl").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
}

func (s *RedisStoreSuite) TestGlobCharactersInPrefix() {
	ctx := context.Background()
	store := redis.New(s.redis.Client, 0)
	s.Require().NoError(store.Put(ctx, "run*/a", []byte(`{}`)))
	s.Require().NoError(store.Put(ctx, "runX/b", []byte(`{}`)))

	keys, err := store.List(ctx, "run*/")
	s.Require().NoError(err)
	s.Equal([]string{"run*/a"}, keys)
}
