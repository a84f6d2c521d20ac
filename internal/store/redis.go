package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/love-letter-go/internal/letter"
)

const letterKeyPrefix = "letter:"

// RedisStore is a Redis implementation of letter.Repository.
// Each letter is a hash under "letter:<id>". A non-zero ttl expires letters.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a new Redis-backed letter store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: letterKeyPrefix,
		ttl:    ttl,
	}
}

func (r *RedisStore) Create(ctx context.Context, stored *letter.StoredLetter) error {
	if _, err := writeLetterHash(ctx, r.client, r.prefix, stored, r.ttl); err != nil {
		return fmt.Errorf("%w: %w", letter.ErrTransport, err)
	}

	return nil
}

func (r *RedisStore) GetByID(ctx context.Context, id letter.ID) (*letter.StoredLetter, error) {
	stored, err := readLetterHash(ctx, r.client, r.prefix, id)
	if err != nil {
		if errors.Is(err, letter.ErrNotFound) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %w", letter.ErrTransport, err)
	}

	return stored, nil
}

func writeLetterHash(
	ctx context.Context, client *redis.Client, prefix string, stored *letter.StoredLetter, ttl time.Duration,
) ([]redis.Cmder, error) {
	pipe := client.TxPipeline()
	key := prefix + string(stored.ID)

	pipe.HSet(ctx, key, map[string]interface{}{
		"sender":     stored.Letter.Sender,
		"recipient":  stored.Letter.Recipient,
		"message":    stored.Letter.Message,
		"created_at": stored.CreatedAt.UnixNano(),
	})

	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}

	return pipe.Exec(ctx)
}

func readLetterHash(
	ctx context.Context, client *redis.Client, prefix string, id letter.ID,
) (*letter.StoredLetter, error) {
	result, err := client.HGetAll(ctx, prefix+string(id)).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, letter.ErrNotFound
	}

	var createdAt time.Time

	if ts, ok := result["created_at"]; ok {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			createdAt = time.Unix(0, nanos).UTC()
		}
	}

	return &letter.StoredLetter{
		ID: id,
		Letter: letter.Letter{
			Sender:    result["sender"],
			Recipient: result["recipient"],
			Message:   result["message"],
		},
		CreatedAt: createdAt,
	}, nil
}

// Compile-time check.
var _ letter.Repository = (*RedisStore)(nil)
