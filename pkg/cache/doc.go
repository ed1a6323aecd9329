// Package cache provides the tiered translation cache: three independently
// configured stores at locale, section, and key granularity composed behind
// a single Manager.
//
// Every entry carries a creation timestamp and a TTL. An expired entry is
// logically absent even while still physically stored; it is deleted lazily
// on access and proactively by a periodic cleanup sweep.
//
// Two eviction policies are provided. The frequency-biased LFU store evicts
// the entry with the lowest hits-per-second-of-age (ties broken by age) and
// backs the locale and key tiers. The LRU store evicts the least recently
// accessed entry and backs the section tier, where access patterns are
// uneven enough that recency ordering wins. A Redis-backed store can be
// swapped into any tier to share cached payloads between processes; it
// delegates expiry and eviction to Redis itself.
//
// The Manager offers typed convenience methods per tier plus ClearAll and a
// selective ClearLocale that removes only the given locale's entries across
// all three tiers.
package cache
