package loader

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/lazyi18n/pkg/async"
	"github.com/dmitrymomot/lazyi18n/pkg/cache"
	"github.com/dmitrymomot/lazyi18n/pkg/i18nerr"
	"github.com/dmitrymomot/lazyi18n/pkg/recovery"
	"github.com/dmitrymomot/lazyi18n/pkg/translation"
)

// Loader resolves locale and section payloads: cache first, then the
// fetcher, with failures routed through the recovery executor. Concurrent
// requests for the same in-flight target collapse into a single fetch whose
// settled result every caller receives.
type Loader struct {
	caches   *cache.Manager
	fetcher  Fetcher
	parser   Parser
	exec     *recovery.Executor
	fallback string
	logger   *slog.Logger

	mu       sync.Mutex
	inflight map[string]*inflightCall
}

// inflightCall is the shared slot for one in-flight load. The leader fills
// the result fields and closes done; followers only read after done closes.
type inflightCall struct {
	done    chan struct{}
	payload translation.Payload
	section translation.Section
	err     error
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderLogger sets the loader's logger. Nil is ignored.
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a Loader. The fallback locale is the last resort for
// failed loads and must itself be fetchable for recovery to succeed.
func NewLoader(caches *cache.Manager, fetcher Fetcher, parser Parser, exec *recovery.Executor, fallbackLocale string, opts ...LoaderOption) *Loader {
	l := &Loader{
		caches:   caches,
		fetcher:  fetcher,
		parser:   parser,
		exec:     exec,
		fallback: fallbackLocale,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		inflight: make(map[string]*inflightCall),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the full payload for a locale. Cache hits return
// immediately; otherwise the caller either becomes the leader of a new
// fetch or waits for the in-flight one.
func (l *Loader) Load(ctx context.Context, locale string) (translation.Payload, error) {
	if p, ok := l.caches.GetLocale(locale); ok {
		return p, nil
	}

	c, leader := l.join(locale)
	if !leader {
		if err := l.wait(ctx, c); err != nil {
			return nil, err
		}
		return c.payload, c.err
	}

	p, err := l.loadLocale(ctx, locale)
	c.payload, c.err = p, err
	l.settle(locale, c)
	return p, err
}

// LoadSection returns a single section for a locale. The fetch is always a
// full-locale fetch; only the requested slice is cached, in the section
// tier.
func (l *Loader) LoadSection(ctx context.Context, locale, section string) (translation.Section, error) {
	if s, ok := l.caches.GetSection(locale, section); ok {
		return s, nil
	}

	key := locale + ":" + section
	c, leader := l.join(key)
	if !leader {
		if err := l.wait(ctx, c); err != nil {
			return nil, err
		}
		return c.section, c.err
	}

	s, err := l.loadSection(ctx, locale, section)
	c.section, c.err = s, err
	l.settle(key, c)
	return s, err
}

// Preload loads every locale concurrently with settle semantics: one
// locale's failure never aborts the batch. The returned map holds the
// error for each locale that failed and is empty on full success.
func (l *Loader) Preload(ctx context.Context, locales []string) map[string]error {
	futures := make([]*async.Future[translation.Payload], len(locales))
	for i, locale := range locales {
		futures[i] = async.Go(ctx, func(ctx context.Context) (translation.Payload, error) {
			return l.Load(ctx, locale)
		})
	}

	failed := make(map[string]error)
	for i, res := range async.Settle(futures...) {
		if res.Err != nil {
			failed[locales[i]] = res.Err
		}
	}
	return failed
}

// Unload evicts everything cached for a locale across all tiers. An
// in-flight load for the locale is not interrupted; its result will simply
// repopulate the cache.
func (l *Loader) Unload(locale string) {
	l.caches.ClearLocale(locale)
}

// join registers interest in a load target. It returns the shared call slot
// and whether the caller is the leader responsible for performing the fetch.
func (l *Loader) join(key string) (*inflightCall, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok := l.inflight[key]; ok {
		return c, false
	}
	c := &inflightCall{done: make(chan struct{})}
	l.inflight[key] = c
	return c, true
}

// settle publishes the leader's result and removes the in-flight slot so the
// next miss starts a fresh load.
func (l *Loader) settle(key string, c *inflightCall) {
	l.mu.Lock()
	delete(l.inflight, key)
	l.mu.Unlock()
	close(c.done)
}

// wait blocks until the in-flight leader settles or the follower's own
// context is cancelled.
func (l *Loader) wait(ctx context.Context, c *inflightCall) error {
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loader) loadLocale(ctx context.Context, locale string) (translation.Payload, error) {
	// A previous leader may have settled between our cache miss and winning
	// leadership.
	if p, ok := l.caches.GetLocale(locale); ok {
		return p, nil
	}

	p, err := l.fetchAndParse(ctx, locale)
	if err == nil {
		l.caches.SetLocale(locale, p)
		return p, nil
	}

	loadErr := i18nerr.NewLoadError(locale, err)
	l.logger.WarnContext(ctx, "locale load failed", "locale", locale, "error", err)

	var (
		recovered     translation.Payload
		recoveredFrom string
	)
	ok := l.exec.Execute(ctx, loadErr, func(ctx context.Context, s recovery.Strategy) (bool, error) {
		target := locale
		if s.Action == recovery.ActionFallback {
			if s.Locale == "" || s.Locale == locale {
				return false, nil
			}
			target = s.Locale
		}
		p, ferr := l.fetchAndParse(ctx, target)
		if ferr != nil {
			return false, ferr
		}
		recovered, recoveredFrom = p, target
		return true, nil
	})
	if !ok {
		return nil, loadErr
	}
	if recovered == nil {
		// Skip strategy: proceed without a payload, keys degrade downstream.
		return translation.Payload{}, nil
	}

	// The payload is cached under the locale it actually belongs to, so a
	// fallback result never masks the broken locale from future repairs.
	l.caches.SetLocale(recoveredFrom, recovered)
	return recovered, nil
}

func (l *Loader) loadSection(ctx context.Context, locale, section string) (translation.Section, error) {
	if s, ok := l.caches.GetSection(locale, section); ok {
		return s, nil
	}
	if p, ok := l.caches.GetLocale(locale); ok {
		if s, ok := p.Section(section); ok {
			l.caches.SetSection(locale, section, s)
			return s, nil
		}
	}

	s, err := l.fetchSection(ctx, locale, section)
	if err == nil {
		l.caches.SetSection(locale, section, s)
		return s, nil
	}

	secErr := i18nerr.NewSectionError(locale, section, err)
	l.logger.WarnContext(ctx, "section load failed", "locale", locale, "section", section, "error", err)

	var (
		recovered     translation.Section
		recoveredFrom string
	)
	ok := l.exec.Execute(ctx, secErr, func(ctx context.Context, st recovery.Strategy) (bool, error) {
		target := locale
		if st.Action == recovery.ActionFallback {
			if st.Locale == "" || st.Locale == locale {
				return false, nil
			}
			target = st.Locale
		}
		s, ferr := l.fetchSection(ctx, target, section)
		if ferr != nil {
			return false, ferr
		}
		recovered, recoveredFrom = s, target
		return true, nil
	})
	if !ok {
		return nil, secErr
	}
	if recovered == nil {
		return translation.Section{}, nil
	}

	l.caches.SetSection(recoveredFrom, section, recovered)
	return recovered, nil
}

// fetchSection performs a full-locale fetch and slices out one section. A
// payload without the section is an error so a mistyped section name is
// visible instead of silently empty.
func (l *Loader) fetchSection(ctx context.Context, locale, section string) (translation.Section, error) {
	p, err := l.fetchAndParse(ctx, locale)
	if err != nil {
		return nil, err
	}
	s, ok := p.Section(section)
	if !ok {
		return nil, ErrSectionNotFound
	}
	return s, nil
}

func (l *Loader) fetchAndParse(ctx context.Context, locale string) (translation.Payload, error) {
	data, err := l.fetcher.Fetch(ctx, locale)
	if err != nil {
		return nil, err
	}
	return l.parser.Parse(data)
}
