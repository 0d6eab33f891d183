package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStateStore_OneTimeUse(t *testing.T) {
	s := NewMemoryStateStore(10 * time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "st", "verifier"))

	v, err := s.VerifyAndGet(ctx, "st")
	require.NoError(t, err)
	assert.Equal(t, "verifier", v)

	_, err = s.VerifyAndGet(ctx, "st")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestMemoryStateStore_Expiry(t *testing.T) {
	s := NewMemoryStateStore(time.Minute)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "st", "verifier"))
	now = now.Add(2 * time.Minute)

	_, err := s.VerifyAndGet(ctx, "st")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestMemoryStateStore_RejectsEmpty(t *testing.T) {
	s := NewMemoryStateStore(time.Minute)
	assert.ErrorIs(t, s.Set(context.Background(), "", "v"), ErrEmptyState)
	_, err := s.VerifyAndGet(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyState)
}

func TestRedisStateStore_OneTimeUse(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	s := NewRedisStateStore(client, "test:oauth:state:", time.Minute)
	require.NoError(t, s.Set(ctx, "st", "verifier"))

	v, err := s.VerifyAndGet(ctx, "st")
	require.NoError(t, err)
	assert.Equal(t, "verifier", v)

	_, err = s.VerifyAndGet(ctx, "st")
	assert.ErrorIs(t, err, ErrStateNotFound)
}
