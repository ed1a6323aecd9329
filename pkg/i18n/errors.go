package i18n

import "errors"

var (
	// ErrNotInitialized is returned by operations that need a completed
	// Initialize call.
	ErrNotInitialized = errors.New("i18n: runtime not initialized")
	// ErrUnsupportedLocale is returned when a locale switch or preload
	// targets a locale outside the supported set.
	ErrUnsupportedLocale = errors.New("i18n: unsupported locale")
	// ErrDestroyed is returned by operations on a destroyed runtime.
	ErrDestroyed = errors.New("i18n: runtime destroyed")
)
