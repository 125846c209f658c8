package memory

import (
	"context"
	"sync"
	"time"

	"github.com/skilllink/marketplace/internal/core/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

type idempotencyEntry struct {
	resourceID string // empty while reserved
	expiresAt  time.Time
}

// IdempotencyStore is the process-local fallback used when Redis is not configured.
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]idempotencyEntry
	now     func() time.Time
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{entries: make(map[string]idempotencyEntry), now: time.Now}
}

// Reserve claims key under the mutex, so of two concurrent callers exactly
// one sees reserved=true.
func (s *IdempotencyStore) Reserve(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.entries[key]; ok && now.Before(e.expiresAt) {
		return e.resourceID, false, nil
	}
	s.entries[key] = idempotencyEntry{expiresAt: now.Add(ttl)}
	return "", true, nil
}

func (s *IdempotencyStore) Complete(_ context.Context, key, resourceID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = idempotencyEntry{resourceID: resourceID, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}
