// Package i18n is the public facade of the lazy-loading translation
// runtime. It wires the cache tiers, loader, recovery policy, and state
// manager into a single Runtime with a small surface: initialize, switch
// locale, translate.
//
// Translations load on demand. The initial and fallback locales are
// fetched eagerly during Initialize; everything else arrives lazily when a
// key or section first asks for it, with configured locales warmed in the
// background after a short delay. Lookup never fails at the call site: a
// missing translation degrades to the key string and a broken locale is
// served from the fallback.
//
// Basic set-up from environment variables:
//
//	cfg, err := i18n.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//	rt, err := i18n.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer rt.Destroy()
//
//	if err := rt.Initialize(ctx); err != nil {
//		log.Fatal(err)
//	}
//	greeting := rt.T(ctx, "common.hello")
//
// HTTP services can mount Middleware to negotiate the request locale from
// a cookie, query parameter, or the Accept-Language header and carry it
// through the request context.
package i18n
