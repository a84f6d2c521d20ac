//go:build integration

package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/love-letter-go/internal/letter"
	"github.com/serroba/love-letter-go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}

	return "localhost:6379"
}

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: getRedisAddr()})
	t.Cleanup(func() { _ = client.Close() })

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	return client
}

func TestRedisStoreIntegration(t *testing.T) {
	client := newRedisClient(t)
	ctx := context.Background()
	s := store.NewRedisStore(client, time.Minute)

	t.Run("create and get letter", func(t *testing.T) {
		stored := testLetter("redistest1")

		require.NoError(t, s.Create(ctx, stored))

		got, err := s.GetByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, stored.Letter, got.Letter)
		assert.True(t, stored.CreatedAt.Equal(got.CreatedAt))

		ttl, err := client.TTL(ctx, "letter:redistest1").Result()
		require.NoError(t, err)
		assert.Positive(t, ttl)

		client.Del(ctx, "letter:redistest1")
	})

	t.Run("get non-existent returns ErrNotFound", func(t *testing.T) {
		got, err := s.GetByID(ctx, "nonexistent")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, letter.ErrNotFound)
	})
}

func TestRedisCacheRepositoryIntegration(t *testing.T) {
	client := newRedisClient(t)
	ctx := context.Background()
	backing := store.NewMemoryStore()
	cache := store.NewRedisCacheRepository(backing, client, time.Minute)

	t.Run("serves cached letter after write-through", func(t *testing.T) {
		stored := testLetter("cachetest1")

		require.NoError(t, cache.Create(ctx, stored))

		got, err := cache.GetByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, stored.Letter, got.Letter)

		client.Del(ctx, "letter_cache:cachetest1")
	})

	t.Run("populates cache on miss", func(t *testing.T) {
		stored := testLetter("cachetest2")
		require.NoError(t, backing.Create(ctx, stored))

		_, err := cache.GetByID(ctx, stored.ID)
		require.NoError(t, err)

		exists, err := client.Exists(ctx, "letter_cache:cachetest2").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)

		client.Del(ctx, "letter_cache:cachetest2")
	})

	t.Run("propagates ErrNotFound", func(t *testing.T) {
		_, err := cache.GetByID(ctx, "cachemissing")

		assert.ErrorIs(t, err, letter.ErrNotFound)
	})
}

func TestRateLimitRedisStoreIntegration(t *testing.T) {
	client := newRedisClient(t)
	ctx := context.Background()
	s := store.NewRateLimitRedisStore(client)

	for want := int64(1); want <= 3; want++ {
		count, err := s.Record(ctx, "integration-client", time.Minute)

		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	client.Del(ctx, "ratelimit:integration-client")
}
