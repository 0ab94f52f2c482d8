package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/routehaven/orsproxy/pkg/logger"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text", Output: "stdout"})
	require.NoError(t, err)

	store, err := NewStore("redis://"+mr.Addr(), log)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, mr
}

func TestGetMissReturnsFalse(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, ok := store.Get(ctx, "cache:route:missing")
	require.False(t, ok)
}

func TestSetEXThenGetHits(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.SetEX(ctx, "cache:route:abc", `{"hello":"world"}`, time.Minute)

	payload, ok := store.Get(ctx, "cache:route:abc")
	require.True(t, ok)
	require.Equal(t, `{"hello":"world"}`, payload)
}

func TestTryAcquireIsExclusive(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first := store.TryAcquire(ctx, "lock:route:abc", 30*time.Second)
	second := store.TryAcquire(ctx, "lock:route:abc", 30*time.Second)

	require.True(t, first)
	require.False(t, second)
}

func TestReleaseAllowsReacquire(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.True(t, store.TryAcquire(ctx, "lock:route:abc", 30*time.Second))
	store.Release(ctx, "lock:route:abc")

	require.True(t, store.TryAcquire(ctx, "lock:route:abc", 30*time.Second))
}

func TestGetOnUnreachableStoreDegradesToMiss(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	mr.Close()

	_, ok := store.Get(ctx, "cache:route:abc")
	require.False(t, ok)
}

func TestTryAcquireOnUnreachableStoreDegradesToAcquired(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	mr.Close()

	acquired := store.TryAcquire(ctx, "lock:route:abc", 30*time.Second)
	require.True(t, acquired, "a down cache store must be treated as acquired so the request proceeds to upstream")
}
