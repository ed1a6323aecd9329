// Package i18nerr defines the typed error taxonomy for the translation
// runtime and a bounded tracker that aggregates raised errors for
// observability surfaces.
//
// Every error carries an immutable Context describing where it was raised
// (locale, key, section, module, operation) and a unique identifier assigned
// at construction. Errors may wrap an underlying cause, preserved through
// Unwrap so errors.Is/errors.As keep working across layers.
//
// Errors are classified into a small fixed vocabulary of categories. The
// recovery layer maps categories, not individual errors, to strategies:
//
//	err := i18nerr.NewLoadError("fr", cause)
//	i18nerr.CategoryOf(err) // CategoryTranslationLoad
//
// The Tracker keeps an append-only FIFO log bounded by a configured size,
// per-category and per-locale counters, plus recovery attempt/success
// counters from which the recovery success rate is derived on read.
package i18nerr
