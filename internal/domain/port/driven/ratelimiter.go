package driven

import "context"

// RateLimiter decides whether one more request from key may proceed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) bool
}
