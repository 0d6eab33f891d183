package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const idleEviction = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	perMin   int
	lastSeen time.Time
}

// MemoryRateLimiter is a token bucket per key for single-instance deployments.
// The bucket refills at perMinute/60 tokens a second with a burst of perMinute.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
	sweepAt time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string, perMinute int) (bool, error) {
	if perMinute <= 0 {
		return true, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok || b.perMin != perMinute {
		b = &bucket{
			limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60), perMinute),
			perMin:  perMinute,
		}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1), nil
}

func (l *MemoryRateLimiter) sweep(now time.Time) {
	if now.Before(l.sweepAt) {
		return
	}
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) > idleEviction {
			delete(l.buckets, k)
		}
	}
	l.sweepAt = now.Add(idleEviction)
}
