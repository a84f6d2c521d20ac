package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/love-letter-go/internal/letter"
)

// RedisCacheRepository wraps a Repository with Redis caching for reads.
type RedisCacheRepository struct {
	store  letter.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(
	store letter.Repository, client *redis.Client, ttl time.Duration,
) *RedisCacheRepository {
	return &RedisCacheRepository{
		store:  store,
		client: client,
		prefix: "letter_cache:",
		ttl:    ttl,
	}
}

// Create stores a letter in the underlying store and updates the cache.
func (r *RedisCacheRepository) Create(ctx context.Context, stored *letter.StoredLetter) error {
	if err := r.store.Create(ctx, stored); err != nil {
		return err
	}

	// Write-through: update cache after successful save
	_, _ = writeLetterHash(ctx, r.client, r.prefix, stored, r.ttl)

	return nil
}

// GetByID retrieves a letter by its ID, checking cache first.
func (r *RedisCacheRepository) GetByID(ctx context.Context, id letter.ID) (*letter.StoredLetter, error) {
	if stored, err := readLetterHash(ctx, r.client, r.prefix, id); err == nil {
		return stored, nil
	}

	// Cache miss - fetch from store
	stored, err := r.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_, _ = writeLetterHash(ctx, r.client, r.prefix, stored, r.ttl)

	return stored, nil
}

// Shutdown is a no-op for RedisCacheRepository (client managed externally).
func (r *RedisCacheRepository) Shutdown() error {
	return nil
}

// Compile-time check.
var _ letter.Repository = (*RedisCacheRepository)(nil)
