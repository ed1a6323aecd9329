package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis-backed tier that can replace any in-memory tier so
// several processes share one warmed cache. Values are stored JSON-encoded;
// expiry is delegated to Redis via key TTLs, and capacity-based eviction is
// left to the server's maxmemory policy, so MaxSize reports zero and
// Cleanup is a no-op.
//
// The Store interface is synchronous, so operations run against a base
// context owned by the store; Redis failures degrade to cache misses and
// are logged rather than propagated, matching the skip recovery strategy
// assigned to cache errors.
type RedisStore[V any] struct {
	client     redis.UniversalClient
	prefix     string
	defaultTTL time.Duration
	ctx        context.Context
	logger     *slog.Logger

	mu     sync.Mutex
	hits   int64
	misses int64
}

// RedisOption configures a RedisStore.
type RedisOption[V any] func(*RedisStore[V])

// WithRedisLogger sets the logger used for degraded-to-miss failures.
func WithRedisLogger[V any](logger *slog.Logger) RedisOption[V] {
	return func(s *RedisStore[V]) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRedisContext sets the base context for Redis operations.
func WithRedisContext[V any](ctx context.Context) RedisOption[V] {
	return func(s *RedisStore[V]) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// NewRedisStore creates a Redis-backed store. All keys are namespaced with
// prefix to keep tiers from colliding in a shared database.
func NewRedisStore[V any](client redis.UniversalClient, prefix string, defaultTTL time.Duration, opts ...RedisOption[V]) *RedisStore[V] {
	if prefix == "" {
		prefix = "lazyi18n:"
	}
	s := &RedisStore[V]{
		client:     client,
		prefix:     prefix,
		defaultTTL: defaultTTL,
		ctx:        context.Background(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore[V]) Get(key string) (V, bool) {
	var zero V

	raw, err := s.client.Get(s.ctx, s.prefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("redis cache get failed", "key", key, "error", err)
		}
		s.miss()
		return zero, false
	}

	var value V
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		s.logger.Warn("redis cache holds malformed value", "key", key, "error", err)
		s.miss()
		return zero, false
	}

	s.hit()
	return value, true
}

func (s *RedisStore[V]) Set(key string, value V) {
	s.SetWithTTL(key, value, s.defaultTTL)
}

func (s *RedisStore[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("redis cache set skipped, value not encodable", "key", key, "error", err)
		return
	}
	if err := s.client.Set(s.ctx, s.prefix+key, raw, ttl).Err(); err != nil {
		s.logger.Warn("redis cache set failed", "key", key, "error", err)
	}
}

func (s *RedisStore[V]) Has(key string) bool {
	n, err := s.client.Exists(s.ctx, s.prefix+key).Result()
	if err != nil {
		s.logger.Warn("redis cache exists failed", "key", key, "error", err)
		return false
	}
	return n > 0
}

func (s *RedisStore[V]) Delete(key string) bool {
	n, err := s.client.Del(s.ctx, s.prefix+key).Result()
	if err != nil {
		s.logger.Warn("redis cache delete failed", "key", key, "error", err)
		return false
	}
	return n > 0
}

func (s *RedisStore[V]) Keys() []string {
	raw, err := s.client.Keys(s.ctx, s.prefix+"*").Result()
	if err != nil {
		s.logger.Warn("redis cache keys failed", "error", err)
		return nil
	}
	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, k[len(s.prefix):])
	}
	return keys
}

func (s *RedisStore[V]) Len() int {
	return len(s.Keys())
}

func (s *RedisStore[V]) Clear() {
	keys, err := s.client.Keys(s.ctx, s.prefix+"*").Result()
	if err != nil {
		s.logger.Warn("redis cache clear failed", "error", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.client.Del(s.ctx, keys...).Err(); err != nil {
		s.logger.Warn("redis cache clear failed", "error", err)
	}
}

// Cleanup is a no-op: Redis expires keys natively.
func (s *RedisStore[V]) Cleanup() int {
	return 0
}

func (s *RedisStore[V]) Stats() Stats {
	s.mu.Lock()
	hits, misses := s.hits, s.misses
	s.mu.Unlock()

	return Stats{
		Size:    s.Len(),
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate(hits, misses),
	}
}

func (s *RedisStore[V]) hit() {
	s.mu.Lock()
	s.hits++
	s.mu.Unlock()
}

func (s *RedisStore[V]) miss() {
	s.mu.Lock()
	s.misses++
	s.mu.Unlock()
}
