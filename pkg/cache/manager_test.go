package cache_test

import (
	"testing"
	"time"

	"github.com/dmitrymomot/lazyi18n/pkg/cache"
	"github.com/dmitrymomot/lazyi18n/pkg/translation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManagerConfig() cache.Config {
	cfg := cache.DefaultConfig()
	cfg.CleanupInterval = 0 // no janitor in unit tests
	return cfg
}

func TestManagerTierIsolation(t *testing.T) {
	t.Parallel()

	m, err := cache.NewManager(testManagerConfig())
	require.NoError(t, err)
	defer m.Close()

	payload := translation.Payload{"common": {"hello": "Hello"}}
	m.SetLocale("en", payload)
	m.SetSection("en", "common", payload["common"])
	m.SetKey("en", "common.hello", "Hello")

	got, ok := m.GetLocale("en")
	require.True(t, ok)
	assert.Equal(t, payload, got)

	section, ok := m.GetSection("en", "common")
	require.True(t, ok)
	assert.Equal(t, "Hello", section["hello"])

	value, ok := m.GetKey("en", "common.hello")
	require.True(t, ok)
	assert.Equal(t, "Hello", value)

	// The families never collide: clearing one tier leaves the others.
	_, ok = m.GetSection("en", "hello")
	assert.False(t, ok)
}

func TestManagerClearAll(t *testing.T) {
	t.Parallel()

	m, err := cache.NewManager(testManagerConfig())
	require.NoError(t, err)
	defer m.Close()

	m.SetLocale("en", translation.Payload{"common": {"a": "b"}})
	m.SetSection("en", "common", translation.Section{"a": "b"})
	m.SetKey("en", "common.a", "b")

	m.ClearAll()

	assert.False(t, m.HasLocale("en"))
	assert.False(t, m.HasSection("en", "common"))
	assert.False(t, m.HasKey("en", "common.a"))
}

func TestManagerClearLocaleIsSelective(t *testing.T) {
	t.Parallel()

	m, err := cache.NewManager(testManagerConfig())
	require.NoError(t, err)
	defer m.Close()

	for _, locale := range []string{"en", "vi"} {
		m.SetLocale(locale, translation.Payload{"common": {"hello": "x"}})
		m.SetSection(locale, "common", translation.Section{"hello": "x"})
		m.SetKey(locale, "common.hello", "x")
	}

	m.ClearLocale("en")

	assert.False(t, m.HasLocale("en"))
	assert.False(t, m.HasSection("en", "common"))
	assert.False(t, m.HasKey("en", "common.hello"))

	assert.True(t, m.HasLocale("vi"))
	assert.True(t, m.HasSection("vi", "common"))
	assert.True(t, m.HasKey("vi", "common.hello"))
}

func TestManagerCleanup(t *testing.T) {
	t.Parallel()

	cfg := testManagerConfig()
	cfg.LocaleTTL = 20 * time.Millisecond
	cfg.SectionTTL = 20 * time.Millisecond
	cfg.KeyTTL = time.Minute

	m, err := cache.NewManager(cfg)
	require.NoError(t, err)
	defer m.Close()

	m.SetLocale("en", translation.Payload{})
	m.SetSection("en", "common", translation.Section{})
	m.SetKey("en", "common.hello", "Hello")

	time.Sleep(40 * time.Millisecond)

	assert.Equal(t, 2, m.Cleanup())
	assert.True(t, m.HasKey("en", "common.hello"))
}

func TestManagerStats(t *testing.T) {
	t.Parallel()

	m, err := cache.NewManager(testManagerConfig())
	require.NoError(t, err)
	defer m.Close()

	m.SetLocale("en", translation.Payload{"common": {"hello": "Hello"}})
	_, _ = m.GetLocale("en")
	_, _ = m.GetLocale("vi") // miss
	m.SetKey("en", "common.hello", "Hello")
	_, _ = m.GetKey("en", "common.hello")

	stats := m.Stats()
	assert.Equal(t, 1, stats.Locale.Size)
	assert.Equal(t, int64(1), stats.Locale.Hits)
	assert.Equal(t, int64(1), stats.Locale.Misses)
	assert.Equal(t, int64(2), stats.TotalHits())
	assert.Positive(t, stats.TotalMemory())
}

func TestManagerRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := testManagerConfig()
	cfg.SectionCapacity = 0

	_, err := cache.NewManager(cfg)
	assert.ErrorIs(t, err, cache.ErrInvalidCapacity)
}

func TestManagerJanitorSweeps(t *testing.T) {
	t.Parallel()

	cfg := testManagerConfig()
	cfg.KeyTTL = 10 * time.Millisecond
	cfg.CleanupInterval = 20 * time.Millisecond

	m, err := cache.NewManager(cfg)
	require.NoError(t, err)
	defer m.Close()

	m.SetKey("en", "common.hello", "Hello")

	assert.Eventually(t, func() bool {
		return m.Stats().Key.Size == 0
	}, time.Second, 10*time.Millisecond, "janitor should sweep the expired entry without manual Cleanup")
}
