// Package cache holds short-lived state shared between requests.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

var (
	ErrEmptyState    = errors.New("state cannot be empty")
	ErrStateNotFound = errors.New("state not found or expired")
)

type stateInfo struct {
	CodeVerifier string    `json:"code_verifier"`
	CreatedAt    time.Time `json:"created_at"`
}

// RedisStateStore keeps OAuth state in redis with a TTL.
type RedisStateStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStateStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStateStore {
	return &RedisStateStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStateStore) Set(ctx context.Context, state, codeVerifier string) error {
	if state == "" {
		return ErrEmptyState
	}
	if codeVerifier == "" {
		return errors.New("code_verifier cannot be empty")
	}

	data, err := json.Marshal(stateInfo{CodeVerifier: codeVerifier, CreatedAt: biztime.NowUTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal state info: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+state, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store state in redis: %w", err)
	}
	return nil
}

// VerifyAndGet uses GETDEL so a state can be redeemed once.
func (s *RedisStateStore) VerifyAndGet(ctx context.Context, state string) (string, error) {
	if state == "" {
		return "", ErrEmptyState
	}

	data, err := s.client.GetDel(ctx, s.prefix+state).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrStateNotFound
		}
		return "", fmt.Errorf("failed to retrieve state from redis: %w", err)
	}

	var info stateInfo
	if err := json.Unmarshal([]byte(data), &info); err != nil {
		return "", fmt.Errorf("failed to unmarshal state info: %w", err)
	}
	return info.CodeVerifier, nil
}
