package loader

import (
	"context"
	"io"
	"log/slog"

	"github.com/dmitrymomot/lazyi18n/pkg/cache"
	"github.com/dmitrymomot/lazyi18n/pkg/i18nerr"
	"github.com/dmitrymomot/lazyi18n/pkg/recovery"
)

// KeyLoader resolves individual dotted keys ("section.key") against the key
// cache tier, falling back to a full-locale load on a miss. It never
// returns an error: a key that cannot be resolved degrades to the key
// string itself so rendering always has something to show.
type KeyLoader struct {
	loader *Loader
	caches *cache.Manager
	exec   *recovery.Executor
	logger *slog.Logger
}

// KeyLoaderOption configures a KeyLoader.
type KeyLoaderOption func(*KeyLoader)

// WithKeyLoaderLogger sets the key loader's logger. Nil is ignored.
func WithKeyLoaderLogger(logger *slog.Logger) KeyLoaderOption {
	return func(k *KeyLoader) {
		if logger != nil {
			k.logger = logger
		}
	}
}

// NewKeyLoader creates a KeyLoader on top of an existing Loader.
func NewKeyLoader(loader *Loader, caches *cache.Manager, exec *recovery.Executor, opts ...KeyLoaderOption) *KeyLoader {
	k := &KeyLoader{
		loader: loader,
		caches: caches,
		exec:   exec,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// LoadKey resolves one dotted key for a locale. Resolution order: key cache
// tier, then a full-locale load. Missing keys return the key string and are
// never cached, so a later payload update can still supply the real value.
func (k *KeyLoader) LoadKey(ctx context.Context, locale, key string) string {
	if v, ok := k.caches.GetKey(locale, key); ok {
		return v
	}

	payload, err := k.loader.Load(ctx, locale)
	if err != nil {
		keyErr := i18nerr.NewKeyError(locale, key, err)
		var recovered string
		ok := k.exec.Execute(ctx, keyErr, func(ctx context.Context, s recovery.Strategy) (bool, error) {
			target := locale
			if s.Action == recovery.ActionFallback {
				if s.Locale == "" || s.Locale == locale {
					return false, nil
				}
				target = s.Locale
			}
			p, ferr := k.loader.Load(ctx, target)
			if ferr != nil {
				return false, ferr
			}
			v, found := p.Resolve(key)
			if !found {
				return false, ErrKeyNotFound
			}
			recovered = v
			return true, nil
		})
		if !ok || recovered == "" {
			return key
		}
		k.caches.SetKey(locale, key, recovered)
		return recovered
	}

	v, ok := payload.Resolve(key)
	if !ok {
		k.logger.DebugContext(ctx, "translation key missing", "locale", locale, "key", key)
		return key
	}
	k.caches.SetKey(locale, key, v)
	return v
}
