package loader

import "errors"

var (
	// ErrEmptyPayload is returned when a document parses cleanly but
	// contains no sections.
	ErrEmptyPayload = errors.New("loader: empty translation payload")
	// ErrMalformedPayload is returned when a document cannot be decoded
	// into the section/key/value shape.
	ErrMalformedPayload = errors.New("loader: malformed translation payload")
	// ErrSectionNotFound is returned when a fetched payload does not
	// contain the requested section.
	ErrSectionNotFound = errors.New("loader: section not found in payload")
	// ErrKeyNotFound is returned when a payload does not contain the
	// requested dotted key.
	ErrKeyNotFound = errors.New("loader: key not found in payload")
	// ErrUnsupportedLocale is returned for locales outside the configured
	// supported set.
	ErrUnsupportedLocale = errors.New("loader: unsupported locale")
)
