package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRateLimiter_Allow(t *testing.T) {
	l := NewMemoryRateLimiter()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "1.2.3.4", 3)
		require.NoError(t, err)
		assert.True(t, ok, "request %d should be allowed", i+1)
	}

	ok, _ := l.Allow(ctx, "1.2.3.4", 3)
	assert.False(t, ok, "4th request should be denied")

	ok, _ = l.Allow(ctx, "5.6.7.8", 3)
	assert.True(t, ok, "other keys have their own bucket")

	now = now.Add(21 * time.Second)
	ok, _ = l.Allow(ctx, "1.2.3.4", 3)
	assert.True(t, ok, "one token refills every 20s at 3 per minute")
}

func TestMemoryRateLimiter_Disabled(t *testing.T) {
	l := NewMemoryRateLimiter()
	for i := 0; i < 100; i++ {
		ok, err := l.Allow(context.Background(), "k", 0)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestMemoryRateLimiter_EvictsIdleKeys(t *testing.T) {
	l := NewMemoryRateLimiter()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	_, _ = l.Allow(context.Background(), "a", 5)
	now = now.Add(idleEviction + time.Minute)
	_, _ = l.Allow(context.Background(), "b", 5)

	assert.NotContains(t, l.buckets, "a")
	assert.Contains(t, l.buckets, "b")
}

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})
	return client
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	client := setupTestRedis(t)
	l := NewRedisRateLimiter(client, "test:ratelimit:")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ok, err := l.Allow(ctx, "ip", 5)
		require.NoError(t, err)
		assert.True(t, ok, "request %d should be allowed", i+1)
	}
	ok, err := l.Allow(ctx, "ip", 5)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, l.Reset(ctx, "ip"))
	ok, _ = l.Allow(ctx, "ip", 5)
	assert.True(t, ok)
}
