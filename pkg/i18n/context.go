package i18n

import "context"

type localeContextKey struct{}

// WithLocale stores a locale in the context. The runtime's translation
// methods prefer a context locale over the globally active one, which lets
// each HTTP request carry its own language.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// LocaleFromContext returns the locale stored in the context, or an empty
// string when none was set.
func LocaleFromContext(ctx context.Context) string {
	locale, _ := ctx.Value(localeContextKey{}).(string)
	return locale
}
