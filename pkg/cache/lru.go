package cache

import (
	"container/list"
	"sync"
	"time"
)

type lruItem[V any] struct {
	key string
	ent *entry[V]
}

// LRUStore is the recency-biased tier: when full, it evicts the least
// recently accessed entry. Backs the section tier, where reads cluster on
// whatever sections the current view needs.
type LRUStore[V any] struct {
	mu         sync.Mutex
	capacity   int
	defaultTTL time.Duration
	items      map[string]*list.Element
	order      *list.List
	sizer      func(V) int
	hits       int64
	misses     int64
	evictions  int64
}

// LRUOption configures an LRUStore.
type LRUOption[V any] func(*LRUStore[V])

// WithLRUSizer sets the function used to estimate a value's memory
// footprint for stats.
func WithLRUSizer[V any](sizer func(V) int) LRUOption[V] {
	return func(s *LRUStore[V]) {
		if sizer != nil {
			s.sizer = sizer
		}
	}
}

// NewLRU creates a recency-biased store holding at most capacity entries,
// each expiring after defaultTTL (zero disables expiry).
func NewLRU[V any](capacity int, defaultTTL time.Duration, opts ...LRUOption[V]) (*LRUStore[V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	s := &LRUStore[V]{
		capacity:   capacity,
		defaultTTL: defaultTTL,
		items:      make(map[string]*list.Element),
		order:      list.New(),
		sizer:      func(V) int { return 0 },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *LRUStore[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	elem, ok := s.items[key]
	if !ok {
		s.misses++
		var zero V
		return zero, false
	}

	item := elem.Value.(*lruItem[V])
	if item.ent.expired(now) {
		s.removeElement(elem)
		s.misses++
		var zero V
		return zero, false
	}

	s.order.MoveToFront(elem)
	item.ent.touch(now)
	s.hits++
	return item.ent.value, true
}

func (s *LRUStore[V]) Set(key string, value V) {
	s.SetWithTTL(key, value, s.defaultTTL)
}

func (s *LRUStore[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if elem, ok := s.items[key]; ok {
		s.order.MoveToFront(elem)
		elem.Value.(*lruItem[V]).ent = newEntry(value, ttl, now)
		return
	}

	if s.order.Len() >= s.capacity {
		if back := s.order.Back(); back != nil {
			s.removeElement(back)
			s.evictions++
		}
	}

	elem := s.order.PushFront(&lruItem[V]{key: key, ent: newEntry(value, ttl, now)})
	s.items[key] = elem
}

// Has reports presence without refreshing recency, so probing the cache
// does not distort eviction order.
func (s *LRUStore[V]) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[key]
	if !ok {
		return false
	}
	if elem.Value.(*lruItem[V]).ent.expired(time.Now()) {
		s.removeElement(elem)
		return false
	}
	return true
}

func (s *LRUStore[V]) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[key]
	if ok {
		s.removeElement(elem)
	}
	return ok
}

func (s *LRUStore[V]) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	keys := make([]string, 0, len(s.items))
	for k, elem := range s.items {
		if !elem.Value.(*lruItem[V]).ent.expired(now) {
			keys = append(keys, k)
		}
	}
	return keys
}

func (s *LRUStore[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

func (s *LRUStore[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]*list.Element)
	s.order.Init()
}

func (s *LRUStore[V]) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for elem := s.order.Front(); elem != nil; {
		next := elem.Next()
		if elem.Value.(*lruItem[V]).ent.expired(now) {
			s.removeElement(elem)
			removed++
		}
		elem = next
	}
	return removed
}

func (s *LRUStore[V]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	mem := 0
	for k, elem := range s.items {
		mem += len(k) + s.sizer(elem.Value.(*lruItem[V]).ent.value)
	}
	return Stats{
		Size:        s.order.Len(),
		MaxSize:     s.capacity,
		Hits:        s.hits,
		Misses:      s.misses,
		HitRate:     hitRate(s.hits, s.misses),
		Evictions:   s.evictions,
		MemoryBytes: mem,
	}
}

// Called with the lock held.
func (s *LRUStore[V]) removeElement(elem *list.Element) {
	s.order.Remove(elem)
	delete(s.items, elem.Value.(*lruItem[V]).key)
}
