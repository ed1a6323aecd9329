package state

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/lazyi18n/pkg/i18nerr"
)

// ErrUnsupportedLocale is returned when a locale switch targets a locale
// outside the configured supported set.
var ErrUnsupportedLocale = errors.New("state: unsupported locale")

// Config declares the locale universe the runtime operates in.
type Config struct {
	DefaultLocale    string   `env:"I18N_DEFAULT_LOCALE" envDefault:"en"`
	FallbackLocale   string   `env:"I18N_FALLBACK_LOCALE" envDefault:"en"`
	SupportedLocales []string `env:"I18N_SUPPORTED_LOCALES" envDefault:"en" envSeparator:","`
}

// Manager is the single writer of locale state. All methods are safe for
// concurrent use; observer notifications run synchronously on the mutating
// goroutine with panic containment per observer.
type Manager struct {
	cfg       Config
	supported map[string]struct{}
	prefs     PreferenceStore
	logger    *slog.Logger

	mu        sync.RWMutex
	current   string
	loaded    map[string]struct{}
	loading   map[Dimension]map[string]struct{}
	observers map[string]Observer
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithPreferenceStore wires locale persistence. Nil is ignored.
func WithPreferenceStore(store PreferenceStore) ManagerOption {
	return func(m *Manager) {
		if store != nil {
			m.prefs = store
		}
	}
}

// WithManagerLogger sets the manager's logger. Nil is ignored.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager validates the config and creates a Manager with the default
// locale active.
func NewManager(cfg Config, opts ...ManagerOption) (*Manager, error) {
	if len(cfg.SupportedLocales) == 0 {
		return nil, i18nerr.NewConfigError("SupportedLocales", "at least one locale is required")
	}
	supported := make(map[string]struct{}, len(cfg.SupportedLocales))
	for _, locale := range cfg.SupportedLocales {
		supported[locale] = struct{}{}
	}
	if _, ok := supported[cfg.DefaultLocale]; !ok {
		return nil, i18nerr.NewConfigError("DefaultLocale", "must be one of the supported locales")
	}
	if _, ok := supported[cfg.FallbackLocale]; !ok {
		return nil, i18nerr.NewConfigError("FallbackLocale", "must be one of the supported locales")
	}

	m := &Manager{
		cfg:       cfg,
		supported: supported,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		current:   cfg.DefaultLocale,
		loaded:    make(map[string]struct{}),
		loading: map[Dimension]map[string]struct{}{
			DimensionLocale:  {},
			DimensionSection: {},
			DimensionModule:  {},
		},
		observers: make(map[string]Observer),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// CurrentLocale returns the active locale.
func (m *Manager) CurrentLocale() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// DefaultLocale returns the configured default locale.
func (m *Manager) DefaultLocale() string { return m.cfg.DefaultLocale }

// FallbackLocale returns the configured fallback locale.
func (m *Manager) FallbackLocale() string { return m.cfg.FallbackLocale }

// SupportedLocales returns the supported locales, sorted.
func (m *Manager) SupportedLocales() []string {
	locales := make([]string, 0, len(m.supported))
	for locale := range m.supported {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// IsSupported reports whether the locale is in the supported set.
func (m *Manager) IsSupported(locale string) bool {
	_, ok := m.supported[locale]
	return ok
}

// SetCurrentLocale switches the active locale. The switch is validated
// against the supported set and persisted; a persistence failure is logged
// but does not fail the switch. Switching to the already-active locale is
// a no-op and fires no notification.
func (m *Manager) SetCurrentLocale(ctx context.Context, locale string) error {
	if !m.IsSupported(locale) {
		return ErrUnsupportedLocale
	}

	m.mu.Lock()
	old := m.current
	if old == locale {
		m.mu.Unlock()
		return nil
	}
	m.current = locale
	m.mu.Unlock()

	if m.prefs != nil {
		if err := m.prefs.SetLocale(ctx, locale); err != nil {
			m.logger.WarnContext(ctx, "failed to persist locale preference", "locale", locale, "error", err)
		}
	}

	m.notify(func(o Observer) { o.OnLocaleChange(old, locale) })
	return nil
}

// InitialLocale resolves the locale to start with: the persisted
// preference when present and still supported, the default otherwise.
// There is no implicit environment detection.
func (m *Manager) InitialLocale(ctx context.Context) string {
	if m.prefs == nil {
		return m.cfg.DefaultLocale
	}
	locale, err := m.prefs.Locale(ctx)
	if err != nil {
		m.logger.WarnContext(ctx, "failed to read locale preference", "error", err)
		return m.cfg.DefaultLocale
	}
	if locale == "" || !m.IsSupported(locale) {
		return m.cfg.DefaultLocale
	}
	return locale
}

// StartLoading records an in-flight load and notifies observers.
func (m *Manager) StartLoading(lc LoadingContext) {
	m.mu.Lock()
	m.loading[lc.Dimension][lc.key()] = struct{}{}
	m.mu.Unlock()

	m.notify(func(o Observer) { o.OnLoadingStart(lc) })
}

// CompleteLoading clears an in-flight load and notifies observers. A
// successful locale load also marks the locale loaded, so a locale is
// never in both the loaded and loading sets.
func (m *Manager) CompleteLoading(lc LoadingContext, ok bool) {
	m.mu.Lock()
	delete(m.loading[lc.Dimension], lc.key())
	if ok && lc.Dimension == DimensionLocale {
		m.loaded[lc.Locale] = struct{}{}
	}
	m.mu.Unlock()

	m.notify(func(o Observer) { o.OnLoadingComplete(lc, ok) })
}

// MarkLoaded records a locale as fully loaded without a loading cycle,
// e.g. after a preload settled elsewhere.
func (m *Manager) MarkLoaded(locale string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaded[locale] = struct{}{}
}

// IsLoaded reports whether a locale's payload has been loaded.
func (m *Manager) IsLoaded(locale string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.loaded[locale]
	return ok
}

// LoadedLocales returns loaded locales, sorted.
func (m *Manager) LoadedLocales() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	locales := make([]string, 0, len(m.loaded))
	for locale := range m.loaded {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// IsLoading reports whether anything is loading in any dimension.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, set := range m.loading {
		if len(set) > 0 {
			return true
		}
	}
	return false
}

// Loading returns the in-flight load keys for one dimension, sorted.
func (m *Manager) Loading(dim Dimension) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.loading[dim]))
	for key := range m.loading[dim] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// AddObserver registers an observer and returns its subscription id.
func (m *Manager) AddObserver(o Observer) string {
	id := uuid.NewString()
	m.mu.Lock()
	m.observers[id] = o
	m.mu.Unlock()
	return id
}

// RemoveObserver drops the subscription with the given id.
func (m *Manager) RemoveObserver(id string) {
	m.mu.Lock()
	delete(m.observers, id)
	m.mu.Unlock()
}

// NotifyError fans an error out to observers.
func (m *Manager) NotifyError(err error) {
	m.notify(func(o Observer) { o.OnError(err) })
}

// Reset restores the initial state: default locale active, nothing loaded,
// nothing loading. Observers and the preference store stay registered.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.cfg.DefaultLocale
	m.loaded = make(map[string]struct{})
	m.loading = map[Dimension]map[string]struct{}{
		DimensionLocale:  {},
		DimensionSection: {},
		DimensionModule:  {},
	}
}

// notify calls fn for every registered observer, recovering panics so one
// broken observer cannot poison the fan-out.
func (m *Manager) notify(fn func(Observer)) {
	m.mu.RLock()
	observers := make([]Observer, 0, len(m.observers))
	for _, o := range m.observers {
		observers = append(observers, o)
	}
	m.mu.RUnlock()

	for _, o := range observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					m.logger.Error("observer panicked", "panic", r)
				}
			}()
			fn(o)
		}()
	}
}
