package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/lazyi18n/pkg/translation"
)

// Composite key families. The three families never collide by
// construction, which keeps a shared backing store (e.g. Redis) coherent.
const (
	localePrefix  = "locale:"
	sectionPrefix = "section:"
	keyPrefix     = "key:"
)

// LocaleKey builds the locale-tier cache key for a locale.
func LocaleKey(locale string) string { return localePrefix + locale }

// SectionKey builds the section-tier cache key for a locale and section.
func SectionKey(locale, section string) string {
	return sectionPrefix + locale + ":" + section
}

// KeyKey builds the key-tier cache key for a locale and dotted key.
func KeyKey(locale, key string) string { return keyPrefix + locale + ":" + key }

// Config sizes the three tiers. Zero TTLs disable expiry for that tier;
// a zero CleanupInterval disables the background sweep.
type Config struct {
	LocaleCapacity  int           `env:"I18N_CACHE_LOCALE_CAPACITY" envDefault:"16"`
	LocaleTTL       time.Duration `env:"I18N_CACHE_LOCALE_TTL" envDefault:"30m"`
	SectionCapacity int           `env:"I18N_CACHE_SECTION_CAPACITY" envDefault:"64"`
	SectionTTL      time.Duration `env:"I18N_CACHE_SECTION_TTL" envDefault:"20m"`
	KeyCapacity     int           `env:"I18N_CACHE_KEY_CAPACITY" envDefault:"1024"`
	KeyTTL          time.Duration `env:"I18N_CACHE_KEY_TTL" envDefault:"10m"`
	CleanupInterval time.Duration `env:"I18N_CACHE_CLEANUP_INTERVAL" envDefault:"5m"`
}

// DefaultConfig returns the defaults documented on Config.
func DefaultConfig() Config {
	return Config{
		LocaleCapacity:  16,
		LocaleTTL:       30 * time.Minute,
		SectionCapacity: 64,
		SectionTTL:      20 * time.Minute,
		KeyCapacity:     1024,
		KeyTTL:          10 * time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// ManagerStats aggregates per-tier snapshots.
type ManagerStats struct {
	Locale  Stats
	Section Stats
	Key     Stats
}

// TotalMemory is the estimated footprint across all tiers.
func (s ManagerStats) TotalMemory() int {
	return s.Locale.MemoryBytes + s.Section.MemoryBytes + s.Key.MemoryBytes
}

// TotalHits sums scoring hits across all tiers.
func (s ManagerStats) TotalHits() int64 {
	return s.Locale.Hits + s.Section.Hits + s.Key.Hits
}

// Manager composes the three cache tiers and owns the periodic cleanup
// sweep. The locale and key tiers default to frequency-biased stores, the
// section tier to an LRU store; any tier can be swapped via options.
type Manager struct {
	locales  Store[translation.Payload]
	sections Store[translation.Section]
	keys     Store[string]

	stopClean chan struct{}
	closeOnce sync.Once
}

// ManagerOption overrides a tier's backing store.
type ManagerOption func(*Manager)

// WithLocaleStore replaces the locale tier, e.g. with a RedisStore.
func WithLocaleStore(s Store[translation.Payload]) ManagerOption {
	return func(m *Manager) {
		if s != nil {
			m.locales = s
		}
	}
}

// WithSectionStore replaces the section tier.
func WithSectionStore(s Store[translation.Section]) ManagerOption {
	return func(m *Manager) {
		if s != nil {
			m.sections = s
		}
	}
}

// WithKeyStore replaces the key tier.
func WithKeyStore(s Store[string]) ManagerOption {
	return func(m *Manager) {
		if s != nil {
			m.keys = s
		}
	}
}

// NewManager builds the tiered cache from cfg and starts the cleanup
// janitor when CleanupInterval is positive. Call Close to stop it.
func NewManager(cfg Config, opts ...ManagerOption) (*Manager, error) {
	locales, err := NewLFU(cfg.LocaleCapacity, cfg.LocaleTTL,
		WithLFUSizer[translation.Payload](translation.Payload.ByteSize))
	if err != nil {
		return nil, err
	}
	sections, err := NewLRU(cfg.SectionCapacity, cfg.SectionTTL,
		WithLRUSizer[translation.Section](translation.Section.ByteSize))
	if err != nil {
		return nil, err
	}
	keys, err := NewLFU(cfg.KeyCapacity, cfg.KeyTTL,
		WithLFUSizer[string](func(v string) int { return len(v) }))
	if err != nil {
		return nil, err
	}

	m := &Manager{
		locales:   locales,
		sections:  sections,
		keys:      keys,
		stopClean: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	if cfg.CleanupInterval > 0 {
		go m.runCleanup(cfg.CleanupInterval)
	}
	return m, nil
}

func (m *Manager) runCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Cleanup()
		case <-m.stopClean:
			return
		}
	}
}

// SetLocale caches the full payload for a locale.
func (m *Manager) SetLocale(locale string, p translation.Payload) {
	m.locales.Set(LocaleKey(locale), p)
}

// GetLocale returns the cached payload for a locale.
func (m *Manager) GetLocale(locale string) (translation.Payload, bool) {
	return m.locales.Get(LocaleKey(locale))
}

// HasLocale reports whether the locale payload is cached and unexpired.
func (m *Manager) HasLocale(locale string) bool {
	return m.locales.Has(LocaleKey(locale))
}

// SetSection caches one section of a locale.
func (m *Manager) SetSection(locale, section string, s translation.Section) {
	m.sections.Set(SectionKey(locale, section), s)
}

// GetSection returns the cached section for a locale.
func (m *Manager) GetSection(locale, section string) (translation.Section, bool) {
	return m.sections.Get(SectionKey(locale, section))
}

// HasSection reports whether the section is cached and unexpired.
func (m *Manager) HasSection(locale, section string) bool {
	return m.sections.Has(SectionKey(locale, section))
}

// SetKey caches a single resolved key.
func (m *Manager) SetKey(locale, key, value string) {
	m.keys.Set(KeyKey(locale, key), value)
}

// GetKey returns the cached string for a single key.
func (m *Manager) GetKey(locale, key string) (string, bool) {
	return m.keys.Get(KeyKey(locale, key))
}

// HasKey reports whether the key is cached and unexpired.
func (m *Manager) HasKey(locale, key string) bool {
	return m.keys.Has(KeyKey(locale, key))
}

// ClearAll drops every entry in every tier.
func (m *Manager) ClearAll() {
	m.locales.Clear()
	m.sections.Clear()
	m.keys.Clear()
}

// ClearLocale removes only the given locale's entries across all three
// tiers; other locales stay cached.
func (m *Manager) ClearLocale(locale string) {
	m.locales.Delete(LocaleKey(locale))

	sectionScope := sectionPrefix + locale + ":"
	for _, k := range m.sections.Keys() {
		if strings.HasPrefix(k, sectionScope) {
			m.sections.Delete(k)
		}
	}

	keyScope := keyPrefix + locale + ":"
	for _, k := range m.keys.Keys() {
		if strings.HasPrefix(k, keyScope) {
			m.keys.Delete(k)
		}
	}
}

// Cleanup sweeps expired entries from every tier, returning the total
// removed. Runs on the janitor interval and may be invoked directly.
func (m *Manager) Cleanup() int {
	return m.locales.Cleanup() + m.sections.Cleanup() + m.keys.Cleanup()
}

// Stats returns per-tier snapshots.
func (m *Manager) Stats() ManagerStats {
	return ManagerStats{
		Locale:  m.locales.Stats(),
		Section: m.sections.Stats(),
		Key:     m.keys.Stats(),
	}
}

// Close stops the cleanup janitor. Idempotent.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.stopClean)
	})
}
