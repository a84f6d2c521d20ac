package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/love-letter-go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)}
}

func TestRateLimitMemoryStore_Record(t *testing.T) {
	t.Run("counts requests in the window", func(t *testing.T) {
		s := store.NewRateLimitMemoryStoreWithClock(newFakeClock().Now)

		for want := int64(1); want <= 3; want++ {
			count, err := s.Record(context.Background(), "key1", time.Minute)

			require.NoError(t, err)
			assert.Equal(t, want, count)
		}
	})

	t.Run("tracks keys independently", func(t *testing.T) {
		s := store.NewRateLimitMemoryStore()

		_, _ = s.Record(context.Background(), "key1", time.Minute)
		_, _ = s.Record(context.Background(), "key1", time.Minute)

		count, err := s.Record(context.Background(), "key2", time.Minute)

		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "key2 should have its own counter")
	})

	t.Run("drops requests older than the window", func(t *testing.T) {
		clock := newFakeClock()
		s := store.NewRateLimitMemoryStoreWithClock(clock.Now)

		_, _ = s.Record(context.Background(), "key1", time.Minute)
		clock.Advance(30 * time.Second)
		_, _ = s.Record(context.Background(), "key1", time.Minute)
		clock.Advance(31 * time.Second)

		count, err := s.Record(context.Background(), "key1", time.Minute)

		require.NoError(t, err)
		assert.Equal(t, int64(2), count, "only the first request should have expired")
	})

	t.Run("a request exactly at the cutoff has expired", func(t *testing.T) {
		clock := newFakeClock()
		s := store.NewRateLimitMemoryStoreWithClock(clock.Now)

		_, _ = s.Record(context.Background(), "key1", time.Minute)
		clock.Advance(time.Minute)

		count, err := s.Record(context.Background(), "key1", time.Minute)

		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestRateLimitMemoryStore_Sweep(t *testing.T) {
	clock := newFakeClock()
	s := store.NewRateLimitMemoryStoreWithClock(clock.Now)

	_, _ = s.Record(context.Background(), "idle", time.Minute)
	clock.Advance(2 * time.Minute)
	_, _ = s.Record(context.Background(), "active", time.Minute)

	s.Sweep(time.Minute)

	assert.Equal(t, 1, s.Keys())
}
