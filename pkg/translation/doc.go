// Package translation defines the translation payload data model shared by
// the cache, loader, and facade layers.
//
// A Payload is the full translation document for a single locale: top-level
// keys are section names, each mapping to a flat key-to-string object.
// Payloads are loaded wholesale from a single resource and treated as
// immutable once loaded.
package translation
