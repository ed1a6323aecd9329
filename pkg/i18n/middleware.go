package i18n

import (
	"net/http"
	"slices"
	"strings"
)

// maxLocaleLength bounds locale codes from untrusted sources. RFC 5646
// recommends 35 characters as the practical maximum.
const maxLocaleLength = 35

// MiddlewareConfig controls where the middleware looks for the request
// locale. Sources are checked in order: query parameter, cookie,
// Accept-Language header.
type MiddlewareConfig struct {
	CookieName     string
	QueryParamName string
}

// MiddlewareOption configures the middleware.
type MiddlewareOption func(*MiddlewareConfig)

// WithCookieName sets the cookie carrying the locale preference
// (default "locale").
func WithCookieName(name string) MiddlewareOption {
	return func(c *MiddlewareConfig) {
		if name != "" {
			c.CookieName = name
		}
	}
}

// WithQueryParamName sets the query parameter carrying the locale
// (default "lang").
func WithQueryParamName(name string) MiddlewareOption {
	return func(c *MiddlewareConfig) {
		if name != "" {
			c.QueryParamName = name
		}
	}
}

// Middleware negotiates the request locale and stores it in the request
// context, where the runtime's translation methods pick it up. Explicit
// choices (query parameter, cookie) win over Accept-Language; anything
// unsupported falls back to the runtime's current locale.
func Middleware(rt *Runtime, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := MiddlewareConfig{
		CookieName:     "locale",
		QueryParamName: "lang",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	supported := rt.SupportedLocales()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := matchSupported(r.URL.Query().Get(cfg.QueryParamName), supported)
			if locale == "" {
				if c, err := r.Cookie(cfg.CookieName); err == nil {
					locale = matchSupported(c.Value, supported)
				}
			}
			if locale == "" {
				locale = NegotiateLocale(r.Header.Get("Accept-Language"), supported, rt.CurrentLocale())
			}
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), locale)))
		})
	}
}

// matchSupported validates an explicit locale value against the supported
// set, accepting a base-language match ("en-US" -> "en"). Returns an empty
// string when nothing matches.
func matchSupported(locale string, supported []string) string {
	if locale == "" || len(locale) > maxLocaleLength {
		return ""
	}
	locale = strings.ToLower(locale)
	if slices.Contains(supported, locale) {
		return locale
	}
	if base, _, ok := strings.Cut(locale, "-"); ok && slices.Contains(supported, base) {
		return base
	}
	return ""
}
