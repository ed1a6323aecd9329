// Package recovery maps translation error categories to declarative
// recovery strategies and executes them against caller-supplied callbacks.
//
// A Strategy is one of four actions: retry with a bounded attempt count and
// delay, fallback to a designated locale, skip (proceed as if recovery
// succeeded), or abort (surface the failure). The category-to-strategy
// mapping lives in a Policy table that can be overridden at runtime, e.g.
// for tests or tenant-specific behavior:
//
//	policy := recovery.NewPolicy("en")
//	policy.Set(i18nerr.CategoryNetwork, recovery.Retry(5, 2*time.Second))
//
// The Executor runs exactly one strategy per raised error and records every
// execution in the error tracker so the recovery success rate can be derived.
package recovery
