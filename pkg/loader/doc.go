// Package loader fetches, parses, and orchestrates translation payloads on
// demand.
//
// The Loader resolves a (locale, section) target to a payload: concurrent
// callers for the same in-flight target share one network request, cache
// tiers are consulted before the network, and failures route through the
// recovery executor so a broken locale degrades to its fallback instead of
// surfacing an error to the UI.
//
// On top of it sit three collaborators. KeyLoader resolves a single dotted
// key, degrading silently to the key string itself when the translation is
// missing. Orchestrator wraps loads with cache accounting and timing
// counters and derives the runtime's performance metrics. Preloader warms
// configured locales in the background with settle semantics, so one
// locale's failure never aborts the batch.
package loader
