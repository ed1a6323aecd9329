package loader

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/dmitrymomot/lazyi18n/pkg/async"
	"github.com/dmitrymomot/lazyi18n/pkg/translation"
)

// Preloader warms caches in the background. Locale batches run without
// blocking the caller, and a locale already queued by an earlier batch is
// not queued again, so repeated triggers stay idempotent.
type Preloader struct {
	orch   *Orchestrator
	logger *slog.Logger

	mu     sync.Mutex
	queued map[string]struct{}
	wg     sync.WaitGroup
}

// PreloaderOption configures a Preloader.
type PreloaderOption func(*Preloader)

// WithPreloaderLogger sets the preloader's logger. Nil is ignored.
func WithPreloaderLogger(logger *slog.Logger) PreloaderOption {
	return func(p *Preloader) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPreloader creates a Preloader on top of an Orchestrator.
func NewPreloader(orch *Orchestrator, opts ...PreloaderOption) *Preloader {
	p := &Preloader{
		orch:   orch,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		queued: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PreloadLocales queues the given locales for background warm-up and
// returns immediately. Locales already queued are dropped from the batch.
func (p *Preloader) PreloadLocales(ctx context.Context, locales []string) {
	p.mu.Lock()
	fresh := make([]string, 0, len(locales))
	for _, locale := range locales {
		if _, ok := p.queued[locale]; ok {
			continue
		}
		p.queued[locale] = struct{}{}
		fresh = append(fresh, locale)
	}
	p.mu.Unlock()

	if len(fresh) == 0 {
		return
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.orch.Preload(ctx, fresh)
		p.mu.Lock()
		for _, locale := range fresh {
			delete(p.queued, locale)
		}
		p.mu.Unlock()
	}()
}

// PreloadSections warms the given sections of one locale concurrently and
// blocks until every section settles. Individual failures are logged and
// swallowed.
func (p *Preloader) PreloadSections(ctx context.Context, locale string, sections []string) {
	futures := make([]*async.Future[translation.Section], len(sections))
	for i, section := range sections {
		futures[i] = async.Go(ctx, func(ctx context.Context) (translation.Section, error) {
			return p.orch.LoadSection(ctx, locale, section)
		})
	}
	for i, res := range async.Settle(futures...) {
		if res.Err != nil {
			p.logger.WarnContext(ctx, "section preload failed",
				"locale", locale, "section", sections[i], "error", res.Err)
		}
	}
}

// Queue returns the locales currently queued for warm-up, sorted for
// deterministic inspection.
func (p *Preloader) Queue() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	locales := make([]string, 0, len(p.queued))
	for locale := range p.queued {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// Wait blocks until all in-flight locale batches settle. Intended for
// shutdown and tests.
func (p *Preloader) Wait() {
	p.wg.Wait()
}
