package cache

import "time"

// entry wraps a cached value with its expiry and access bookkeeping.
// Mutation happens only under the owning store's lock.
type entry[V any] struct {
	value      V
	createdAt  time.Time
	ttl        time.Duration
	hits       int64
	lastAccess time.Time
}

func newEntry[V any](value V, ttl time.Duration, now time.Time) *entry[V] {
	return &entry[V]{
		value:      value,
		createdAt:  now,
		ttl:        ttl,
		lastAccess: now,
	}
}

// expired reports whether the entry is past its TTL. A zero TTL means the
// entry never expires.
func (e *entry[V]) expired(now time.Time) bool {
	if e.ttl <= 0 {
		return false
	}
	return now.Sub(e.createdAt) > e.ttl
}

// touch records a scoring hit. Has checks must not call this.
func (e *entry[V]) touch(now time.Time) {
	e.hits++
	e.lastAccess = now
}

// frequency is the eviction score for the frequency-biased policy:
// hits per second of age. Very young entries are scored against a minimum
// age so a single fresh hit does not dominate long-lived entries.
func (e *entry[V]) frequency(now time.Time) float64 {
	age := now.Sub(e.createdAt).Seconds()
	if age < 1 {
		age = 1
	}
	return float64(e.hits) / age
}
