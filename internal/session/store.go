package session

import (
	"context"
	"sync"
	"time"
)

// Store tracks revoked access tokens. Logout writes the token id here with a
// TTL covering the token's remaining life; the auth middleware treats a
// revoked token the same as no session at all.
type Store interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	Revoked(ctx context.Context, tokenID string) (bool, error)
}

// MemoryStore is an in-process Store for single-instance deployments and
// tests. Expired entries are dropped lazily on lookup.
type MemoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewMemoryStore creates an empty in-memory revocation store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{revoked: make(map[string]time.Time)}
}

// Revoke records the token id until its TTL elapses
func (s *MemoryStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = time.Now().Add(ttl)
	return nil
}

// Revoked reports whether the token id has been revoked and is still live
func (s *MemoryStore) Revoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
