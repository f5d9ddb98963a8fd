package ports

import (
	"context"
	"time"
)

// RateLimiter bounds how often a keyed caller may hit a protected route.
// When ok is false, retryAfter is how long the caller must wait.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (ok bool, retryAfter time.Duration, err error)
}
