package store

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/love-letter-go/internal/analytics"
)

const (
	totalsKey       = "letter_stats:totals"
	perLetterPrefix = "letter_stats:"
)

// Redis keeps counters of analytics events. Totals live in one hash keyed by
// "<strategy>.created" and "<kind>.<outcome>"; stored letters also get a
// per-id hash with their open count.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) SaveLetterCreated(ctx context.Context, event *analytics.LetterCreatedEvent) error {
	return r.client.HIncrBy(ctx, totalsKey, event.Strategy+".created", 1).Err()
}

func (r *Redis) SaveLetterOpened(ctx context.Context, event *analytics.LetterOpenedEvent) error {
	pipe := r.client.TxPipeline()
	pipe.HIncrBy(ctx, totalsKey, event.Kind+"."+event.Outcome, 1)

	if event.ID != "" {
		pipe.HIncrBy(ctx, perLetterPrefix+event.ID, event.Outcome, 1)
	}

	_, err := pipe.Exec(ctx)

	return err
}

// Totals returns the global counters.
func (r *Redis) Totals(ctx context.Context) (map[string]string, error) {
	return r.client.HGetAll(ctx, totalsKey).Result()
}

var _ analytics.Store = (*Redis)(nil)
