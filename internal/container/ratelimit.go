package container

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/love-letter-go/internal/ratelimit"
	"github.com/serroba/love-letter-go/internal/store"
	"go.uber.org/zap"
)

const sweepInterval = time.Minute

// sweeper prunes the in-memory rate limit store until shut down.
type sweeper struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func startSweeper(s *store.RateLimitMemoryStore, maxWindow time.Duration, logger *zap.Logger) *sweeper {
	ctx, cancel := context.WithCancel(context.Background())
	sw := &sweeper{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(sw.done)

		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep(maxWindow)
				logger.Debug("rate limit store swept", zap.Int("keys", s.Keys()))
			}
		}
	}()

	return sw
}

func (s *sweeper) Shutdown() error {
	s.cancel()
	<-s.done

	return nil
}

func RateLimitPackage(i *do.Injector) {
	do.ProvideValue(i, ratelimit.DefaultPolicy())

	do.Provide(i, func(i *do.Injector) (ratelimit.Store, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.RateLimit == StoreRedis {
			return store.NewRateLimitRedisStore(do.MustInvoke[*redis.Client](i)), nil
		}

		s := store.NewRateLimitMemoryStore()
		policy := do.MustInvoke[*ratelimit.Policy](i)
		onShutdown(i, "ratelimit.sweeper", startSweeper(s, policy.MaxWindow(), do.MustInvoke[*zap.Logger](i)))

		return s, nil
	})

	do.Provide(i, func(i *do.Injector) (*ratelimit.Limiter, error) {
		return ratelimit.NewLimiter(
			do.MustInvoke[ratelimit.Store](i),
			do.MustInvoke[*ratelimit.Policy](i),
		), nil
	})
}
