package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"serving-broker/internal/core/domain"
	"serving-broker/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonceStore_CheckAndSet(t *testing.T) {
	clk := clock.NewFake(start)
	store := NewNonceStore(clk)
	ctx := context.Background()

	ok, err := store.CheckAndSet(ctx, "user-1", "n1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.CheckAndSet(ctx, "user-1", "n1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "replayed nonce should return false")

	ok, err = store.CheckAndSet(ctx, "user-2", "n1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "same nonce for a different user should be valid")

	clk.Advance(time.Minute)
	ok, err = store.CheckAndSet(ctx, "user-1", "n1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "expired nonce should be accepted again")
}

func TestSettlementStore_ReserveComplete(t *testing.T) {
	clk := clock.NewFake(start)
	store := NewSettlementStore(clk)
	ctx := context.Background()

	reserved, existing, err := store.Reserve(ctx, "k", time.Hour)
	require.NoError(t, err)
	assert.True(t, reserved)
	assert.Nil(t, existing)

	reserved, existing, err = store.Reserve(ctx, "k", time.Hour)
	require.NoError(t, err)
	assert.False(t, reserved)
	assert.Nil(t, existing, "in-flight reservation has no record yet")

	require.NoError(t, store.Complete(ctx, "k", &domain.Settlement{ResponseID: "r", Charged: 7}, time.Hour))

	reserved, existing, err = store.Reserve(ctx, "k", time.Hour)
	require.NoError(t, err)
	assert.False(t, reserved)
	require.NotNil(t, existing)
	assert.Equal(t, int64(7), existing.Charged)

	clk.Advance(time.Hour)
	reserved, _, err = store.Reserve(ctx, "k", time.Hour)
	require.NoError(t, err)
	assert.True(t, reserved, "expired record can be reserved again")
}

func TestSettlementStore_Release(t *testing.T) {
	store := NewSettlementStore(clock.NewFake(start))
	ctx := context.Background()

	reserved, _, err := store.Reserve(ctx, "k", time.Hour)
	require.NoError(t, err)
	require.True(t, reserved)
	require.NoError(t, store.Release(ctx, "k"))

	reserved, _, err = store.Reserve(ctx, "k", time.Hour)
	require.NoError(t, err)
	assert.True(t, reserved)
}

func TestSettlementStore_SweepsExpired(t *testing.T) {
	clk := clock.NewFake(start)
	store := NewSettlementStore(clk)
	ctx := context.Background()

	_, _, err := store.Reserve(ctx, "old-1", time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Complete(ctx, "old-2", &domain.Settlement{ResponseID: "old-2"}, time.Minute))

	clk.Advance(2 * time.Minute)
	reserved, _, err := store.Reserve(ctx, "new", time.Hour)
	require.NoError(t, err)
	require.True(t, reserved)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Len(t, store.entries, 1)
	assert.Contains(t, store.entries, "new")
}

func TestSettlementStore_ConcurrentReserve(t *testing.T) {
	store := NewSettlementStore(clock.NewFake(start))
	ctx := context.Background()

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reserved, _, err := store.Reserve(ctx, "same", time.Hour)
			if err == nil && reserved {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)
}
