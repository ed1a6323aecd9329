package loader

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/lazyi18n/pkg/async"
	"github.com/dmitrymomot/lazyi18n/pkg/cache"
	"github.com/dmitrymomot/lazyi18n/pkg/translation"
)

// Notifier receives paired start/complete signals around every actual load.
// A completion is guaranteed for every start, including error paths.
type Notifier interface {
	LoadStarted(locale, section string)
	LoadCompleted(locale, section string, ok bool)
}

// noopNotifier is the default when no Notifier is wired.
type noopNotifier struct{}

func (noopNotifier) LoadStarted(string, string) {}

func (noopNotifier) LoadCompleted(string, string, bool) {}

// PerformanceMetrics is a point-in-time snapshot of loading behavior since
// the last reset.
type PerformanceMetrics struct {
	TotalRequests   int64
	NetworkRequests int64
	CacheHitRate    float64
	ErrorRate       float64
	AvgLoadTime     time.Duration
	MaxLoadTime     time.Duration
	MemoryBytes     int
}

// Orchestrator fronts the Loader with supported-locale gating, loading
// notifications, and request accounting. All public API loads go through
// it so the metrics reflect real traffic.
type Orchestrator struct {
	loader    *Loader
	caches    *cache.Manager
	notifier  Notifier
	supported map[string]struct{}
	logger    *slog.Logger

	mu            sync.Mutex
	totalRequests int64
	cacheHits     int64
	errorCount    int64
	loadCount     int64
	totalLoadTime time.Duration
	maxLoadTime   time.Duration
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithNotifier wires loading start/complete notifications. Nil is ignored.
func WithNotifier(n Notifier) OrchestratorOption {
	return func(o *Orchestrator) {
		if n != nil {
			o.notifier = n
		}
	}
}

// WithOrchestratorLogger sets the orchestrator's logger. Nil is ignored.
func WithOrchestratorLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewOrchestrator creates an Orchestrator limited to the supported locales.
func NewOrchestrator(loader *Loader, caches *cache.Manager, supported []string, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		loader:    loader,
		caches:    caches,
		notifier:  noopNotifier{},
		supported: make(map[string]struct{}, len(supported)),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, locale := range supported {
		o.supported[locale] = struct{}{}
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// CanLoad reports whether the locale is in the supported set.
func (o *Orchestrator) CanLoad(locale string) bool {
	_, ok := o.supported[locale]
	return ok
}

// SupportedLocales returns the configured locales.
func (o *Orchestrator) SupportedLocales() []string {
	locales := make([]string, 0, len(o.supported))
	for locale := range o.supported {
		locales = append(locales, locale)
	}
	return locales
}

// Load returns the full payload for a supported locale, recording cache
// accounting and load timing.
func (o *Orchestrator) Load(ctx context.Context, locale string) (translation.Payload, error) {
	if !o.CanLoad(locale) {
		return nil, ErrUnsupportedLocale
	}

	o.countRequest()
	if p, ok := o.caches.GetLocale(locale); ok {
		o.countHit()
		return p, nil
	}

	o.notifier.LoadStarted(locale, "")
	start := time.Now()
	p, err := o.loader.Load(ctx, locale)
	o.recordLoad(time.Since(start), err)
	o.notifier.LoadCompleted(locale, "", err == nil)
	return p, err
}

// LoadSection returns one section for a supported locale.
func (o *Orchestrator) LoadSection(ctx context.Context, locale, section string) (translation.Section, error) {
	if !o.CanLoad(locale) {
		return nil, ErrUnsupportedLocale
	}

	o.countRequest()
	if s, ok := o.caches.GetSection(locale, section); ok {
		o.countHit()
		return s, nil
	}

	o.notifier.LoadStarted(locale, section)
	start := time.Now()
	s, err := o.loader.LoadSection(ctx, locale, section)
	o.recordLoad(time.Since(start), err)
	o.notifier.LoadCompleted(locale, section, err == nil)
	return s, err
}

// Preload warms the given locales concurrently with settle semantics,
// skipping unsupported ones. Failures are logged and swallowed; preloading
// is opportunistic. Each load goes through Load so notifications and
// metrics see preload traffic too.
func (o *Orchestrator) Preload(ctx context.Context, locales []string) {
	eligible := make([]string, 0, len(locales))
	for _, locale := range locales {
		if o.CanLoad(locale) {
			eligible = append(eligible, locale)
		} else {
			o.logger.DebugContext(ctx, "skipping unsupported locale", "locale", locale)
		}
	}

	futures := make([]*async.Future[translation.Payload], len(eligible))
	for i, locale := range eligible {
		futures[i] = async.Go(ctx, func(ctx context.Context) (translation.Payload, error) {
			return o.Load(ctx, locale)
		})
	}
	for i, res := range async.Settle(futures...) {
		if res.Err != nil {
			o.logger.WarnContext(ctx, "preload failed", "locale", eligible[i], "error", res.Err)
		}
	}
}

// Metrics returns a snapshot of request accounting combined with cache
// memory usage. Network requests are requests that missed every cache tier.
func (o *Orchestrator) Metrics() PerformanceMetrics {
	o.mu.Lock()
	defer o.mu.Unlock()

	m := PerformanceMetrics{
		TotalRequests:   o.totalRequests,
		NetworkRequests: o.totalRequests - o.cacheHits,
		MaxLoadTime:     o.maxLoadTime,
		MemoryBytes:     o.caches.Stats().TotalMemory(),
	}
	if o.totalRequests > 0 {
		m.CacheHitRate = float64(o.cacheHits) / float64(o.totalRequests)
		m.ErrorRate = float64(o.errorCount) / float64(o.totalRequests)
	}
	if o.loadCount > 0 {
		m.AvgLoadTime = o.totalLoadTime / time.Duration(o.loadCount)
	}
	return m
}

// ResetMetrics zeroes all counters. Cache memory usage is live state and is
// unaffected.
func (o *Orchestrator) ResetMetrics() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.totalRequests = 0
	o.cacheHits = 0
	o.errorCount = 0
	o.loadCount = 0
	o.totalLoadTime = 0
	o.maxLoadTime = 0
}

func (o *Orchestrator) countRequest() {
	o.mu.Lock()
	o.totalRequests++
	o.mu.Unlock()
}

func (o *Orchestrator) countHit() {
	o.mu.Lock()
	o.cacheHits++
	o.mu.Unlock()
}

func (o *Orchestrator) recordLoad(d time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.loadCount++
	o.totalLoadTime += d
	if d > o.maxLoadTime {
		o.maxLoadTime = d
	}
	if err != nil {
		o.errorCount++
	}
}
