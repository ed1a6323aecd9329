package loader_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lazyi18n/pkg/cache"
	"github.com/dmitrymomot/lazyi18n/pkg/i18nerr"
	"github.com/dmitrymomot/lazyi18n/pkg/loader"
	"github.com/dmitrymomot/lazyi18n/pkg/recovery"
)

// recordingNotifier captures load notifications for pairing assertions.
type recordingNotifier struct {
	mu        sync.Mutex
	started   []string
	completed []string
	outcomes  []bool
}

func (n *recordingNotifier) LoadStarted(locale, section string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.started = append(n.started, locale+"/"+section)
}

func (n *recordingNotifier) LoadCompleted(locale, section string, ok bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.completed = append(n.completed, locale+"/"+section)
	n.outcomes = append(n.outcomes, ok)
}

func newOrchestrator(t *testing.T, f loader.Fetcher, supported []string, opts ...loader.OrchestratorOption) (*cache.Manager, *loader.Orchestrator) {
	t.Helper()

	caches, err := cache.NewManager(testCacheConfig())
	require.NoError(t, err)
	t.Cleanup(caches.Close)

	exec := recovery.NewExecutor(recovery.NewPolicy("en"), i18nerr.NewTracker(i18nerr.DefaultMaxLog))
	l := loader.NewLoader(caches, f, loader.NewJSONParser(), exec, "en")
	return caches, loader.NewOrchestrator(l, caches, supported, opts...)
}

func TestOrchestratorRejectsUnsupportedLocale(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher(map[string]string{"en": enDoc})
	_, o := newOrchestrator(t, fetcher, []string{"en", "vi"})

	_, err := o.Load(context.Background(), "fr")
	require.ErrorIs(t, err, loader.ErrUnsupportedLocale)
	assert.Equal(t, 0, fetcher.fetchCount("fr"))

	assert.True(t, o.CanLoad("vi"))
	assert.False(t, o.CanLoad("fr"))
}

func TestOrchestratorMetricsAccounting(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher(map[string]string{"en": enDoc})
	_, o := newOrchestrator(t, fetcher, []string{"en"})

	_, err := o.Load(context.Background(), "en") // miss
	require.NoError(t, err)
	_, err = o.Load(context.Background(), "en") // hit
	require.NoError(t, err)

	m := o.Metrics()
	assert.Equal(t, int64(2), m.TotalRequests)
	assert.Equal(t, int64(1), m.NetworkRequests)
	assert.InDelta(t, 0.5, m.CacheHitRate, 0.001)
	assert.Zero(t, m.ErrorRate)
	assert.Positive(t, m.MemoryBytes)
	assert.GreaterOrEqual(t, m.MaxLoadTime, m.AvgLoadTime)
}

func TestOrchestratorCountsErrors(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher(nil)
	fetcher.errs["vi"] = errors.New("boom")
	fetcher.errs["en"] = errors.New("boom")
	_, o := newOrchestrator(t, fetcher, []string{"vi"})

	_, err := o.Load(context.Background(), "vi")
	require.Error(t, err)

	m := o.Metrics()
	assert.Equal(t, int64(1), m.TotalRequests)
	assert.InDelta(t, 1.0, m.ErrorRate, 0.001)
}

func TestOrchestratorNotifierPairing(t *testing.T) {
	t.Parallel()

	notifier := &recordingNotifier{}
	fetcher := newStubFetcher(map[string]string{"en": enDoc})
	fetcher.errs["vi"] = errors.New("boom")
	fetcher.errs["en"] = errors.New("boom")
	_, o := newOrchestrator(t, fetcher, []string{"en", "vi"}, loader.WithNotifier(notifier))

	fetcher.errs["en"] = nil
	_, err := o.Load(context.Background(), "en")
	require.NoError(t, err)

	fetcher.errs["en"] = errors.New("boom")
	_, err = o.Load(context.Background(), "vi")
	require.Error(t, err)

	// A cache hit performs no load, so no notification fires.
	fetcher.errs["en"] = nil
	_, err = o.Load(context.Background(), "en")
	require.NoError(t, err)

	assert.Equal(t, []string{"en/", "vi/"}, notifier.started)
	assert.Equal(t, []string{"en/", "vi/"}, notifier.completed)
	assert.Equal(t, []bool{true, false}, notifier.outcomes)
}

func TestOrchestratorResetMetrics(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher(map[string]string{"en": enDoc})
	_, o := newOrchestrator(t, fetcher, []string{"en"})

	_, err := o.Load(context.Background(), "en")
	require.NoError(t, err)
	require.Equal(t, int64(1), o.Metrics().TotalRequests)

	o.ResetMetrics()

	m := o.Metrics()
	assert.Zero(t, m.TotalRequests)
	assert.Zero(t, m.AvgLoadTime)
	assert.Zero(t, m.MaxLoadTime)
	assert.Positive(t, m.MemoryBytes, "cache contents survive a metrics reset")
}

func TestOrchestratorPreloadSwallowsFailures(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher(map[string]string{"en": enDoc, "vi": viDoc})
	fetcher.errs["de"] = errors.New("boom")
	caches, o := newOrchestrator(t, fetcher, []string{"en", "vi", "de"})

	o.Preload(context.Background(), []string{"vi", "de", "fr"})

	assert.True(t, caches.HasLocale("vi"))
	assert.Equal(t, 0, fetcher.fetchCount("fr"), "unsupported locale must be skipped")
}
