package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"serving-broker/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

const inFlightMarker = "in-flight"

// SettlementStore implements ports.SettlementStore. A reservation is a
// SET NX of an in-flight marker; completion overwrites it with the JSON
// settlement record.
type SettlementStore struct {
	client *goredis.Client
	prefix string
}

// NewSettlementStore creates a new Redis-backed settlement store.
func NewSettlementStore(client *goredis.Client) *SettlementStore {
	return &SettlementStore{
		client: client,
		prefix: "settlement:",
	}
}

// Reserve claims key, or returns the completed record stored under it.
func (s *SettlementStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, *domain.Settlement, error) {
	ok, err := s.client.SetArgs(ctx, s.prefix+key, inFlightMarker, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err == nil && ok == "OK" {
		return true, nil, nil
	}
	if err != nil && !errors.Is(err, goredis.Nil) {
		return false, nil, fmt.Errorf("redis settlement reserve: %w", err)
	}

	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			// expired between SET NX and GET; try once more
			return s.Reserve(ctx, key, ttl)
		}
		return false, nil, fmt.Errorf("redis settlement get: %w", err)
	}
	if string(val) == inFlightMarker {
		return false, nil, nil
	}

	var st domain.Settlement
	if err := json.Unmarshal(val, &st); err != nil {
		return false, nil, fmt.Errorf("decode settlement record: %w", err)
	}
	return false, &st, nil
}

// Complete stores the settlement outcome with TTL.
func (s *SettlementStore) Complete(ctx context.Context, key string, st *domain.Settlement, ttl time.Duration) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode settlement record: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis settlement set: %w", err)
	}
	return nil
}

// Release deletes the reservation.
func (s *SettlementStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis settlement release: %w", err)
	}
	return nil
}
