// Package ratelimit throttles unauthenticated endpoints per caller key.
package ratelimit

import "context"

// RateLimiter reports whether one more request under key fits in the
// per-minute budget. A limit of zero or less disables the check.
type RateLimiter interface {
	Allow(ctx context.Context, key string, perMinute int) (bool, error)
}
