package cache

import (
	"context"
	"errors"
	"sync"
	"time"
)

type memoryEntry struct {
	verifier  string
	expiresAt time.Time
}

// MemoryStateStore is used when redis is not configured. State does not
// survive a restart and is not shared between replicas.
type MemoryStateStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStateStore(ttl time.Duration) *MemoryStateStore {
	return &MemoryStateStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStateStore) Set(_ context.Context, state, codeVerifier string) error {
	if state == "" {
		return ErrEmptyState
	}
	if codeVerifier == "" {
		return errors.New("code_verifier cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
	s.entries[state] = memoryEntry{verifier: codeVerifier, expiresAt: now.Add(s.ttl)}
	return nil
}

func (s *MemoryStateStore) VerifyAndGet(_ context.Context, state string) (string, error) {
	if state == "" {
		return "", ErrEmptyState
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[state]
	delete(s.entries, state)
	if !ok || s.now().After(e.expiresAt) {
		return "", ErrStateNotFound
	}
	return e.verifier, nil
}
