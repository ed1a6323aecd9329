package i18n

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/lazyi18n/pkg/async"
	"github.com/dmitrymomot/lazyi18n/pkg/cache"
	"github.com/dmitrymomot/lazyi18n/pkg/i18nerr"
	"github.com/dmitrymomot/lazyi18n/pkg/loader"
	"github.com/dmitrymomot/lazyi18n/pkg/recovery"
	"github.com/dmitrymomot/lazyi18n/pkg/state"
	"github.com/dmitrymomot/lazyi18n/pkg/translation"
)

// Runtime is the assembled translation runtime. Construct it with New,
// call Initialize once, and release resources with Destroy.
type Runtime struct {
	cfg     Config
	logger  *slog.Logger
	fetcher loader.Fetcher
	parser  loader.Parser
	prefs   state.PreferenceStore
	policy  *recovery.Policy

	caches  *cache.Manager
	tracker *i18nerr.Tracker
	loader  *loader.Loader
	keys    *loader.KeyLoader
	orch    *loader.Orchestrator
	pre     *loader.Preloader
	states  *state.Manager

	initialObservers []state.Observer

	mu            sync.Mutex
	initialized   bool
	destroyed     bool
	preloadCancel context.CancelFunc
	destroyOnce   sync.Once
}

// stateNotifier bridges loader notifications into the state manager so the
// loading sets mirror actual loader activity.
type stateNotifier struct {
	states *state.Manager
}

func (n stateNotifier) LoadStarted(locale, section string) {
	n.states.StartLoading(loadingContext(locale, section))
}

func (n stateNotifier) LoadCompleted(locale, section string, ok bool) {
	n.states.CompleteLoading(loadingContext(locale, section), ok)
}

func loadingContext(locale, section string) state.LoadingContext {
	if section == "" {
		return state.LoadingContext{Dimension: state.DimensionLocale, Locale: locale}
	}
	return state.LoadingContext{Dimension: state.DimensionSection, Locale: locale, Name: section}
}

// New validates the config and wires all runtime components. Nothing is
// fetched until Initialize.
func New(cfg Config, opts ...Option) (*Runtime, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	rt := &Runtime{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(rt)
	}

	if rt.fetcher == nil {
		if cfg.SourceURL == "" {
			return nil, i18nerr.NewConfigError("SourceURL", "a translation source or a custom fetcher is required")
		}
		rt.fetcher = loader.NewHTTPFetcher(cfg.SourceURL, loader.WithExtension(cfg.SourceFormat))
	}
	if rt.parser == nil {
		switch cfg.SourceFormat {
		case "yaml", "yml":
			rt.parser = loader.NewYAMLParser()
		default:
			rt.parser = loader.NewJSONParser()
		}
	}
	if rt.policy == nil {
		rt.policy = recovery.NewPolicy(cfg.FallbackLocale)
	}
	if rt.caches == nil {
		cacheCfg := cfg.Cache
		if cacheCfg == (cache.Config{}) {
			cacheCfg = cache.DefaultConfig()
		}
		caches, err := cache.NewManager(cacheCfg)
		if err != nil {
			return nil, err
		}
		rt.caches = caches
	}

	states, err := state.NewManager(state.Config{
		DefaultLocale:    cfg.DefaultLocale,
		FallbackLocale:   cfg.FallbackLocale,
		SupportedLocales: cfg.SupportedLocales,
	}, state.WithPreferenceStore(rt.prefs), state.WithManagerLogger(rt.logger))
	if err != nil {
		return nil, err
	}
	rt.states = states
	for _, o := range rt.initialObservers {
		rt.states.AddObserver(o)
	}

	maxLog := cfg.TrackerMaxLog
	if maxLog <= 0 {
		maxLog = i18nerr.DefaultMaxLog
	}
	rt.tracker = i18nerr.NewTracker(maxLog)
	exec := recovery.NewExecutor(rt.policy, rt.tracker, recovery.WithLogger(rt.logger))
	rt.loader = loader.NewLoader(rt.caches, rt.fetcher, rt.parser, exec, cfg.FallbackLocale,
		loader.WithLoaderLogger(rt.logger))
	rt.keys = loader.NewKeyLoader(rt.loader, rt.caches, exec,
		loader.WithKeyLoaderLogger(rt.logger))
	rt.orch = loader.NewOrchestrator(rt.loader, rt.caches, cfg.SupportedLocales,
		loader.WithNotifier(stateNotifier{states: rt.states}),
		loader.WithOrchestratorLogger(rt.logger))
	rt.pre = loader.NewPreloader(rt.orch, loader.WithPreloaderLogger(rt.logger))

	return rt, nil
}

// Initialize resolves the starting locale, eagerly loads it together with
// the fallback locale, and schedules background preloading. Calling it on
// an initialized runtime is a no-op.
func (rt *Runtime) Initialize(ctx context.Context) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.destroyed {
		return ErrDestroyed
	}
	if rt.initialized {
		return nil
	}

	initial := rt.states.InitialLocale(ctx)
	if _, err := rt.orch.Load(ctx, initial); err != nil {
		return err
	}
	if initial != rt.states.CurrentLocale() {
		if err := rt.states.SetCurrentLocale(ctx, initial); err != nil {
			return err
		}
	}

	if fallback := rt.cfg.FallbackLocale; fallback != initial {
		if _, err := rt.orch.Load(ctx, fallback); err != nil {
			rt.logger.WarnContext(ctx, "fallback locale failed to load eagerly", "locale", fallback, "error", err)
		}
	}

	rt.initialized = true
	rt.schedulePreload()
	return nil
}

// schedulePreload warms the configured locales after the configured delay
// so startup traffic always wins the race for the fetcher.
func (rt *Runtime) schedulePreload() {
	if len(rt.cfg.PreloadLocales) == 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	rt.preloadCancel = cancel

	go func() {
		select {
		case <-time.After(rt.cfg.PreloadDelay):
		case <-ctx.Done():
			return
		}
		rt.pre.PreloadLocales(ctx, rt.cfg.PreloadLocales)
	}()
}

// SetLocale switches the active locale, loading its payload first so the
// switch is atomic from the caller's perspective. Switching to the
// already-active, already-loaded locale is free.
func (rt *Runtime) SetLocale(ctx context.Context, locale string) error {
	rt.mu.Lock()
	if rt.destroyed {
		rt.mu.Unlock()
		return ErrDestroyed
	}
	if !rt.initialized {
		rt.mu.Unlock()
		return ErrNotInitialized
	}
	rt.mu.Unlock()

	if !rt.states.IsSupported(locale) {
		return ErrUnsupportedLocale
	}
	if locale == rt.states.CurrentLocale() && rt.states.IsLoaded(locale) {
		return nil
	}

	if _, err := rt.orch.Load(ctx, locale); err != nil {
		rt.states.NotifyError(err)
		return err
	}
	return rt.states.SetCurrentLocale(ctx, locale)
}

// T translates a dotted key ("section.key") in the effective locale. It
// never fails: unknown keys come back verbatim and broken locales serve
// their fallback. On an uninitialized runtime it degrades to the key.
func (rt *Runtime) T(ctx context.Context, key string) string {
	rt.mu.Lock()
	ready := rt.initialized && !rt.destroyed
	rt.mu.Unlock()
	if !ready {
		return key
	}
	return rt.keys.LoadKey(ctx, rt.effectiveLocale(ctx), key)
}

// Translation is a readable alias for T.
func (rt *Runtime) Translation(ctx context.Context, key string) string {
	return rt.T(ctx, key)
}

// Resolve translates a key asynchronously, returning a future that settles
// with the translation (or the key itself, T's degradation rules apply).
func (rt *Runtime) Resolve(ctx context.Context, key string) *async.Future[string] {
	return async.Go(ctx, func(ctx context.Context) (string, error) {
		return rt.T(ctx, key), nil
	})
}

// Section loads one section in the effective locale.
func (rt *Runtime) Section(ctx context.Context, section string) (translation.Section, error) {
	return rt.orch.LoadSection(ctx, rt.effectiveLocale(ctx), section)
}

// PreloadLocales queues locales for background warm-up. Unsupported
// locales are skipped, failures are logged and swallowed.
func (rt *Runtime) PreloadLocales(ctx context.Context, locales ...string) {
	rt.pre.PreloadLocales(ctx, locales)
}

// PreloadSections warms sections of the effective locale and blocks until
// they settle.
func (rt *Runtime) PreloadSections(ctx context.Context, sections ...string) {
	rt.pre.PreloadSections(ctx, rt.effectiveLocale(ctx), sections)
}

// CurrentLocale returns the active locale.
func (rt *Runtime) CurrentLocale() string { return rt.states.CurrentLocale() }

// SupportedLocales returns the configured locales, sorted.
func (rt *Runtime) SupportedLocales() []string { return rt.states.SupportedLocales() }

// IsLoaded reports whether a locale's payload has been loaded.
func (rt *Runtime) IsLoaded(locale string) bool { return rt.states.IsLoaded(locale) }

// IsLoading reports whether any load is in flight.
func (rt *Runtime) IsLoading() bool { return rt.states.IsLoading() }

// ClearCache drops every cached payload, section, and key. Loaded markers
// survive; the next lookup simply refetches.
func (rt *Runtime) ClearCache() {
	rt.caches.ClearAll()
}

// ClearLocale evicts one locale from every cache tier.
func (rt *Runtime) ClearLocale(locale string) {
	rt.loader.Unload(locale)
}

// Metrics returns the loading performance snapshot.
func (rt *Runtime) Metrics() loader.PerformanceMetrics { return rt.orch.Metrics() }

// ResetMetrics zeroes the performance counters.
func (rt *Runtime) ResetMetrics() { rt.orch.ResetMetrics() }

// ErrorStats returns the error tracker snapshot.
func (rt *Runtime) ErrorStats() i18nerr.Stats { return rt.tracker.Stats() }

// CacheStats returns per-tier cache snapshots.
func (rt *Runtime) CacheStats() cache.ManagerStats { return rt.caches.Stats() }

// AddObserver subscribes to state changes and returns a subscription id
// for RemoveObserver.
func (rt *Runtime) AddObserver(o state.Observer) string { return rt.states.AddObserver(o) }

// RemoveObserver drops a subscription.
func (rt *Runtime) RemoveObserver(id string) { rt.states.RemoveObserver(id) }

// Destroy cancels background preloading, waits for in-flight batches, and
// releases the cache janitor. The runtime is unusable afterwards.
func (rt *Runtime) Destroy() {
	rt.destroyOnce.Do(func() {
		rt.mu.Lock()
		rt.destroyed = true
		cancel := rt.preloadCancel
		rt.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		rt.pre.Wait()
		rt.caches.Close()
	})
}

// effectiveLocale prefers a supported context locale over the active one.
func (rt *Runtime) effectiveLocale(ctx context.Context) string {
	if locale := LocaleFromContext(ctx); locale != "" && rt.states.IsSupported(locale) {
		return locale
	}
	return rt.states.CurrentLocale()
}
