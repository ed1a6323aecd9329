package cache

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCapacity is returned when a store or tier is configured with
	// a non-positive capacity.
	ErrInvalidCapacity = errors.New("cache: capacity must be positive")
)

// Store is one cache tier. Implementations are safe for concurrent use.
type Store[V any] interface {
	// Get returns the value and true iff the key is present and unexpired.
	// Expired entries are deleted as a side effect. A hit bumps the entry's
	// eviction score.
	Get(key string) (V, bool)

	// Set inserts or replaces a value using the store's default TTL. When
	// the store is at capacity, one entry is evicted before the insert.
	Set(key string, value V)

	// SetWithTTL is Set with an explicit TTL overriding the default.
	SetWithTTL(key string, value V, ttl time.Duration)

	// Has reports presence without counting as a hit for eviction scoring.
	Has(key string) bool

	// Delete removes the key, reporting whether it was present.
	Delete(key string) bool

	// Keys returns the unexpired keys currently resident.
	Keys() []string

	// Len returns the number of resident entries, expired ones included
	// until the next access or cleanup touches them.
	Len() int

	// Clear drops all entries for this tier only.
	Clear()

	// Cleanup removes every expired entry and returns how many were swept.
	Cleanup() int

	// Stats returns a snapshot of the tier's counters.
	Stats() Stats
}

// Stats is a point-in-time snapshot of one tier.
type Stats struct {
	Size        int
	MaxSize     int
	Hits        int64
	Misses      int64
	HitRate     float64
	Evictions   int64
	MemoryBytes int
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
