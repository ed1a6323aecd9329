package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// PreferenceStore persists the user's locale choice across runtime
// restarts. Locale returns an empty string when no preference is stored.
type PreferenceStore interface {
	Locale(ctx context.Context) (string, error)
	SetLocale(ctx context.Context, locale string) error
}

// MemoryPreferenceStore keeps the preference in process memory. It is the
// default store and suits tests and single-session runtimes.
type MemoryPreferenceStore struct {
	mu     sync.RWMutex
	locale string
}

// NewMemoryPreferenceStore creates an empty in-memory store.
func NewMemoryPreferenceStore() *MemoryPreferenceStore {
	return &MemoryPreferenceStore{}
}

func (s *MemoryPreferenceStore) Locale(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locale, nil
}

func (s *MemoryPreferenceStore) SetLocale(_ context.Context, locale string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locale = locale
	return nil
}

// RedisPreferenceStore persists the preference in Redis so it survives
// restarts and is shared across instances.
type RedisPreferenceStore struct {
	client redis.UniversalClient
	key    string
}

// DefaultPreferenceKey is used when NewRedisPreferenceStore gets an empty key.
const DefaultPreferenceKey = "lazyi18n:preference:locale"

// NewRedisPreferenceStore creates a store writing to the given Redis key.
func NewRedisPreferenceStore(client redis.UniversalClient, key string) *RedisPreferenceStore {
	if key == "" {
		key = DefaultPreferenceKey
	}
	return &RedisPreferenceStore{client: client, key: key}
}

func (s *RedisPreferenceStore) Locale(ctx context.Context) (string, error) {
	locale, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read locale preference: %w", err)
	}
	return locale, nil
}

func (s *RedisPreferenceStore) SetLocale(ctx context.Context, locale string) error {
	if err := s.client.Set(ctx, s.key, locale, 0).Err(); err != nil {
		return fmt.Errorf("persist locale preference: %w", err)
	}
	return nil
}
