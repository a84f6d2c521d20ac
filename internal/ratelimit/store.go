package ratelimit

import (
	"context"
	"time"
)

// Store records requests for a key.
type Store interface {
	// Record records a request and returns the number of requests for key
	// within the last window, including this one.
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}
