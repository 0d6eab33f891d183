package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

const window = time.Minute

// RedisRateLimiter keeps a sliding one-minute window per key in a sorted set,
// so limits hold across server replicas.
type RedisRateLimiter struct {
	client *redis.Client
	prefix string
}

func NewRedisRateLimiter(client *redis.Client, prefix string) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, prefix: prefix}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string, perMinute int) (bool, error) {
	if perMinute <= 0 {
		return true, nil
	}

	now := biztime.NowUTC()
	redisKey := l.prefix + key
	windowStart := now.Add(-window).UnixNano()

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart, 10))
	card := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
	pipe.Expire(ctx, redisKey, window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute rate limit pipeline: %w", err)
	}
	return card.Val() < int64(perMinute), nil
}

// Reset clears the window for key.
func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit for %s: %w", key, err)
	}
	return nil
}
