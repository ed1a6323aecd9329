package cache_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/dmitrymomot/lazyi18n/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLFUStoreBasicOperations(t *testing.T) {
	t.Parallel()

	store, err := cache.NewLFU[string](4, time.Minute)
	require.NoError(t, err)

	_, ok := store.Get("missing")
	assert.False(t, ok)

	store.Set("a", "A")
	got, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, "A", got)

	assert.True(t, store.Has("a"))
	assert.False(t, store.Has("b"))

	assert.True(t, store.Delete("a"))
	assert.False(t, store.Delete("a"))
	assert.False(t, store.Has("a"))
}

func TestLFUStoreRejectsInvalidCapacity(t *testing.T) {
	t.Parallel()

	_, err := cache.NewLFU[string](0, time.Minute)
	assert.ErrorIs(t, err, cache.ErrInvalidCapacity)

	_, err = cache.NewLFU[string](-3, time.Minute)
	assert.ErrorIs(t, err, cache.ErrInvalidCapacity)
}

func TestLFUStoreTTLExpiry(t *testing.T) {
	t.Parallel()

	store, err := cache.NewLFU[string](4, 30*time.Millisecond)
	require.NoError(t, err)

	store.Set("a", "A")
	_, ok := store.Get("a")
	require.True(t, ok)

	time.Sleep(50 * time.Millisecond)

	_, ok = store.Get("a")
	assert.False(t, ok, "expired entry must be logically absent")
	assert.False(t, store.Has("a"))
	assert.Zero(t, store.Len(), "expired entry is deleted on access")
}

func TestLFUStoreCleanupSweepsExpired(t *testing.T) {
	t.Parallel()

	store, err := cache.NewLFU[string](8, 20*time.Millisecond)
	require.NoError(t, err)

	store.Set("a", "A")
	store.Set("b", "B")
	store.SetWithTTL("keep", "K", time.Minute)

	time.Sleep(40 * time.Millisecond)

	assert.Equal(t, 2, store.Cleanup())
	assert.Equal(t, 1, store.Len())
	assert.True(t, store.Has("keep"))
}

func TestLFUStoreEvictsLowestFrequency(t *testing.T) {
	t.Parallel()

	store, err := cache.NewLFU[string](3, time.Minute)
	require.NoError(t, err)

	store.Set("hot", "H")
	store.Set("warm", "W")
	store.Set("cold", "C")

	for range 5 {
		_, _ = store.Get("hot")
	}
	_, _ = store.Get("warm")
	// "cold" never read: lowest hits-per-second-of-age.

	store.Set("new", "N")

	assert.Equal(t, 3, store.Len())
	assert.False(t, store.Has("cold"), "zero-hit entry is the deterministic victim")
	assert.True(t, store.Has("hot"))
	assert.True(t, store.Has("warm"))
	assert.True(t, store.Has("new"))
}

func TestLFUStoreEvictionTieBreaksByAge(t *testing.T) {
	t.Parallel()

	store, err := cache.NewLFU[string](2, time.Minute)
	require.NoError(t, err)

	store.Set("older", "O")
	time.Sleep(5 * time.Millisecond)
	store.Set("newer", "N")

	// Both have zero hits; the older entry loses the tie.
	store.Set("third", "T")

	assert.False(t, store.Has("older"))
	assert.True(t, store.Has("newer"))
	assert.True(t, store.Has("third"))
}

func TestLFUStoreCapacityNeverExceeded(t *testing.T) {
	t.Parallel()

	store, err := cache.NewLFU[string](5, time.Minute)
	require.NoError(t, err)

	for i := range 12 {
		store.Set(fmt.Sprintf("k%d", i), "v")
		assert.LessOrEqual(t, store.Len(), 5)
	}
}

func TestLFUStoreHasDoesNotCountAsHit(t *testing.T) {
	t.Parallel()

	store, err := cache.NewLFU[string](2, time.Minute)
	require.NoError(t, err)

	store.Set("probed", "P")
	time.Sleep(5 * time.Millisecond)
	store.Set("read", "R")

	// Probe one entry many times, read the other once. If Has counted as a
	// hit, "probed" would outscore "read".
	for range 10 {
		store.Has("probed")
	}
	_, _ = store.Get("read")

	store.Set("new", "N")

	assert.False(t, store.Has("probed"))
	assert.True(t, store.Has("read"))
}

func TestLFUStoreStats(t *testing.T) {
	t.Parallel()

	store, err := cache.NewLFU(4, time.Minute,
		cache.WithLFUSizer[string](func(v string) int { return len(v) }))
	require.NoError(t, err)

	store.Set("aa", "1234")
	_, _ = store.Get("aa")
	_, _ = store.Get("aa")
	_, _ = store.Get("nope")

	stats := store.Stats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, 4, stats.MaxSize)
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 2.0/3.0, stats.HitRate, 0.0001)
	assert.Equal(t, 6, stats.MemoryBytes) // key "aa" + value "1234"
}
