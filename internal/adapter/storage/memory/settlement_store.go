package memory

import (
	"context"
	"sync"
	"time"

	"serving-broker/internal/core/domain"
	"serving-broker/pkg/clock"
)

type settlementEntry struct {
	settlement *domain.Settlement // nil while in flight
	expiresAt  time.Time
}

// SettlementStore implements ports.SettlementStore with a mutex-guarded map.
// Records are lost on restart.
type SettlementStore struct {
	mu      sync.Mutex
	clock   clock.Clock
	entries map[string]settlementEntry
}

// NewSettlementStore creates an empty settlement store.
func NewSettlementStore(clk clock.Clock) *SettlementStore {
	return &SettlementStore{clock: clk, entries: make(map[string]settlementEntry)}
}

// Reserve claims key unless a live record already holds it.
func (s *SettlementStore) Reserve(_ context.Context, key string, ttl time.Duration) (bool, *domain.Settlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if e, ok := s.entries[key]; ok && now.Before(e.expiresAt) {
		if e.settlement == nil {
			return false, nil, nil
		}
		cp := *e.settlement
		return false, &cp, nil
	}
	s.entries[key] = settlementEntry{expiresAt: now.Add(ttl)}
	s.sweep(now)
	return true, nil, nil
}

// sweep drops expired entries. Caller holds mu.
func (s *SettlementStore) sweep(now time.Time) {
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}

// Complete stores the settlement outcome under key.
func (s *SettlementStore) Complete(_ context.Context, key string, st *domain.Settlement, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *st
	s.entries[key] = settlementEntry{settlement: &cp, expiresAt: s.clock.Now().Add(ttl)}
	return nil
}

// Release drops the reservation for key.
func (s *SettlementStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
