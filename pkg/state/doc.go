// Package state tracks the runtime's locale state: the active locale, which
// locales are loaded, and what is currently loading across the locale,
// section, and module dimensions.
//
// The Manager is the single writer of this state. Locale switches are
// validated against the supported set, persisted through an optional
// PreferenceStore, and announced to registered observers. Observer panics
// are contained so one misbehaving listener cannot take down a notification
// fan-out.
package state
