package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// NonceStore reserves request nonces with SET NX. Keys are
// "brk:nonce:{<namespace>}:<nonce>"; the braces keep one namespace in a
// single cluster slot.
type NonceStore struct {
	client *goredis.Client
}

func NewNonceStore(client *goredis.Client) *NonceStore {
	return &NonceStore{client: client}
}

func nonceKey(namespace, nonce string) string {
	return "brk:nonce:{" + strings.ToLower(namespace) + "}:" + nonce
}

// CheckAndSet reports whether nonce was unused in namespace and marks it
// used for ttl. The stored value is the reservation time, for debugging.
func (s *NonceStore) CheckAndSet(ctx context.Context, namespace string, nonce string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, nonceKey(namespace, nonce), time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis nonce check: %w", err)
	}
	return ok, nil
}
