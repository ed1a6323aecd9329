// Package redis connects the runtime's optional Redis backends: the
// shared cache tier (cache.RedisStore) and the locale preference store
// (state.RedisPreferenceStore).
//
// Connect retries until the server answers a ping or the configured
// timeout expires, so a runtime starting alongside Redis in the same
// deployment does not crash-loop on ordering. Healthcheck plugs into
// liveness probes.
package redis
