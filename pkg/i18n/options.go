package i18n

import (
	"log/slog"

	"github.com/dmitrymomot/lazyi18n/pkg/cache"
	"github.com/dmitrymomot/lazyi18n/pkg/loader"
	"github.com/dmitrymomot/lazyi18n/pkg/recovery"
	"github.com/dmitrymomot/lazyi18n/pkg/state"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the runtime's logger, shared with every component it
// wires. A discard logger is the default.
func WithLogger(logger *slog.Logger) Option {
	return func(rt *Runtime) {
		if logger != nil {
			rt.logger = logger
		}
	}
}

// WithFetcher replaces the HTTP fetcher derived from Config.SourceURL,
// e.g. with an FSFetcher over an embedded filesystem.
func WithFetcher(f loader.Fetcher) Option {
	return func(rt *Runtime) {
		if f != nil {
			rt.fetcher = f
		}
	}
}

// WithParser replaces the parser derived from Config.SourceFormat.
func WithParser(p loader.Parser) Option {
	return func(rt *Runtime) {
		if p != nil {
			rt.parser = p
		}
	}
}

// WithCacheManager replaces the default in-memory tier stack, e.g. with
// Redis-backed tiers.
func WithCacheManager(m *cache.Manager) Option {
	return func(rt *Runtime) {
		if m != nil {
			rt.caches = m
		}
	}
}

// WithPreferenceStore wires locale persistence across restarts.
func WithPreferenceStore(store state.PreferenceStore) Option {
	return func(rt *Runtime) {
		if store != nil {
			rt.prefs = store
		}
	}
}

// WithPolicy replaces the default recovery policy.
func WithPolicy(p *recovery.Policy) Option {
	return func(rt *Runtime) {
		if p != nil {
			rt.policy = p
		}
	}
}

// WithObserver registers an observer before any state changes fire, so
// construction-time subscribers never miss an event.
func WithObserver(o state.Observer) Option {
	return func(rt *Runtime) {
		if o != nil {
			rt.initialObservers = append(rt.initialObservers, o)
		}
	}
}
