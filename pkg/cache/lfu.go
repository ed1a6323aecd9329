package cache

import (
	"sync"
	"time"
)

// LFUStore is the frequency-biased tier: when full, it evicts the entry
// with the lowest hits-per-second-of-age, breaking ties by evicting the
// oldest. Used for the locale and key tiers, where a handful of entries
// absorb most lookups and should outlive bursts of one-off accesses.
type LFUStore[V any] struct {
	mu         sync.Mutex
	capacity   int
	defaultTTL time.Duration
	entries    map[string]*entry[V]
	sizer      func(V) int
	hits       int64
	misses     int64
	evictions  int64
}

// LFUOption configures an LFUStore.
type LFUOption[V any] func(*LFUStore[V])

// WithLFUSizer sets the function used to estimate a value's memory
// footprint for stats. Without it, memory usage reports zero.
func WithLFUSizer[V any](sizer func(V) int) LFUOption[V] {
	return func(s *LFUStore[V]) {
		if sizer != nil {
			s.sizer = sizer
		}
	}
}

// NewLFU creates a frequency-biased store holding at most capacity entries,
// each expiring after defaultTTL (zero disables expiry).
func NewLFU[V any](capacity int, defaultTTL time.Duration, opts ...LFUOption[V]) (*LFUStore[V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	s := &LFUStore[V]{
		capacity:   capacity,
		defaultTTL: defaultTTL,
		entries:    make(map[string]*entry[V]),
		sizer:      func(V) int { return 0 },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *LFUStore[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	e, ok := s.entries[key]
	if !ok {
		s.misses++
		var zero V
		return zero, false
	}
	if e.expired(now) {
		delete(s.entries, key)
		s.misses++
		var zero V
		return zero, false
	}

	e.touch(now)
	s.hits++
	return e.value, true
}

func (s *LFUStore[V]) Set(key string, value V) {
	s.SetWithTTL(key, value, s.defaultTTL)
}

func (s *LFUStore[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.capacity {
		s.evictOne(now)
	}
	s.entries[key] = newEntry(value, ttl, now)
}

func (s *LFUStore[V]) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false
	}
	if e.expired(time.Now()) {
		delete(s.entries, key)
		return false
	}
	return true
}

func (s *LFUStore[V]) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.entries[key]
	delete(s.entries, key)
	return ok
}

func (s *LFUStore[V]) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	keys := make([]string, 0, len(s.entries))
	for k, e := range s.entries {
		if !e.expired(now) {
			keys = append(keys, k)
		}
	}
	return keys
}

func (s *LFUStore[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *LFUStore[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*entry[V])
}

func (s *LFUStore[V]) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for k, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

func (s *LFUStore[V]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	mem := 0
	for k, e := range s.entries {
		mem += len(k) + s.sizer(e.value)
	}
	return Stats{
		Size:        len(s.entries),
		MaxSize:     s.capacity,
		Hits:        s.hits,
		Misses:      s.misses,
		HitRate:     hitRate(s.hits, s.misses),
		Evictions:   s.evictions,
		MemoryBytes: mem,
	}
}

// evictOne removes the lowest-frequency entry; expired entries go first
// since they are logically absent anyway. Called with the lock held.
func (s *LFUStore[V]) evictOne(now time.Time) {
	var victim string
	var victimFreq float64
	var victimCreated time.Time
	found := false

	for k, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, k)
			return
		}
		freq := e.frequency(now)
		older := e.createdAt.Before(victimCreated)
		if !found || freq < victimFreq || (freq == victimFreq && older) {
			victim = k
			victimFreq = freq
			victimCreated = e.createdAt
			found = true
		}
	}

	if found {
		delete(s.entries, victim)
		s.evictions++
	}
}
