package memory

import (
	"context"
	"sync"
	"time"

	"serving-broker/pkg/clock"
)

// NonceStore implements ports.NonceStore with an expiring map. It is used
// when Redis is disabled.
type NonceStore struct {
	mu     sync.Mutex
	clock  clock.Clock
	expiry map[string]time.Time
}

// NewNonceStore creates an empty nonce store.
func NewNonceStore(clk clock.Clock) *NonceStore {
	return &NonceStore{clock: clk, expiry: make(map[string]time.Time)}
}

// CheckAndSet returns true if nonce was unused for user and reserves it for ttl.
func (s *NonceStore) CheckAndSet(_ context.Context, user string, nonce string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	key := user + ":" + nonce
	if exp, ok := s.expiry[key]; ok && now.Before(exp) {
		return false, nil
	}
	s.expiry[key] = now.Add(ttl)
	s.sweep(now)
	return true, nil
}

// sweep drops expired entries. Caller holds mu.
func (s *NonceStore) sweep(now time.Time) {
	for k, exp := range s.expiry {
		if !now.Before(exp) {
			delete(s.expiry, k)
		}
	}
}
