package i18nerr

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category classifies errors for recovery-policy lookup. The vocabulary is
// fixed; CategoryUnknown is returned for errors raised outside this package.
type Category string

const (
	CategoryNetwork         Category = "network"
	CategoryTranslationLoad Category = "translation_load"
	CategoryTranslationKey  Category = "translation_key"
	CategorySectionLoad     Category = "section_load"
	CategoryModuleLoad      Category = "module_load"
	CategoryCache           Category = "cache"
	CategoryConfiguration   Category = "configuration"
	CategoryUnknown         Category = "unknown"
)

// newID builds a stable, random-suffixed identifier assigned once at
// construction, e.g. "translation_load_1719243932000_1a2b3c4d".
func newID(cat Category) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%d_%s", cat, time.Now().UnixMilli(), suffix)
}

// LoadError indicates that a whole locale payload could not be loaded.
type LoadError struct {
	ID      string
	Locale  string
	Cause   error
	Context Context
}

// NewLoadError creates a LoadError for the given locale wrapping cause.
func NewLoadError(locale string, cause error) *LoadError {
	return &LoadError{
		ID:     newID(CategoryTranslationLoad),
		Locale: locale,
		Cause:  cause,
		Context: Context{
			Locale:    locale,
			Operation: "load_locale",
			Timestamp: time.Now(),
		},
	}
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load translations for locale %q: %v", e.Locale, e.Cause)
	}
	return fmt.Sprintf("failed to load translations for locale %q", e.Locale)
}

func (e *LoadError) Unwrap() error { return e.Cause }
func (e *LoadError) Category() Category { return CategoryTranslationLoad }
func (e *LoadError) ErrorContext() Context { return e.Context }
func (e *LoadError) ErrorID() string { return e.ID }

// KeyError indicates that a specific translation key could not be resolved.
type KeyError struct {
	ID      string
	Locale  string
	Key     string
	Cause   error
	Context Context
}

// NewKeyError creates a KeyError for the given locale and dotted key.
func NewKeyError(locale, key string, cause error) *KeyError {
	return &KeyError{
		ID:     newID(CategoryTranslationKey),
		Locale: locale,
		Key:    key,
		Cause:  cause,
		Context: Context{
			Locale:    locale,
			Key:       key,
			Operation: "resolve_key",
			Timestamp: time.Now(),
		},
	}
}

func (e *KeyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to resolve key %q for locale %q: %v", e.Key, e.Locale, e.Cause)
	}
	return fmt.Sprintf("failed to resolve key %q for locale %q", e.Key, e.Locale)
}

func (e *KeyError) Unwrap() error { return e.Cause }
func (e *KeyError) Category() Category { return CategoryTranslationKey }
func (e *KeyError) ErrorContext() Context { return e.Context }
func (e *KeyError) ErrorID() string { return e.ID }

// SectionError indicates that a named section of a locale failed to load.
type SectionError struct {
	ID      string
	Locale  string
	Section string
	Cause   error
	Context Context
}

// NewSectionError creates a SectionError for the given locale and section.
func NewSectionError(locale, section string, cause error) *SectionError {
	return &SectionError{
		ID:      newID(CategorySectionLoad),
		Locale:  locale,
		Section: section,
		Cause:   cause,
		Context: Context{
			Locale:    locale,
			Section:   section,
			Operation: "load_section",
			Timestamp: time.Now(),
		},
	}
}

func (e *SectionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load section %q for locale %q: %v", e.Section, e.Locale, e.Cause)
	}
	return fmt.Sprintf("failed to load section %q for locale %q", e.Section, e.Locale)
}

func (e *SectionError) Unwrap() error { return e.Cause }
func (e *SectionError) Category() Category { return CategorySectionLoad }
func (e *SectionError) ErrorContext() Context { return e.Context }
func (e *SectionError) ErrorID() string { return e.ID }

// ModuleError indicates that a named translation module failed to load.
type ModuleError struct {
	ID      string
	Module  string
	Locale  string
	Cause   error
	Context Context
}

// NewModuleError creates a ModuleError for the given module and locale.
func NewModuleError(module, locale string, cause error) *ModuleError {
	return &ModuleError{
		ID:     newID(CategoryModuleLoad),
		Module: module,
		Locale: locale,
		Cause:  cause,
		Context: Context{
			Locale:    locale,
			Module:    module,
			Operation: "load_module",
			Timestamp: time.Now(),
		},
	}
}

func (e *ModuleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load module %q for locale %q: %v", e.Module, e.Locale, e.Cause)
	}
	return fmt.Sprintf("failed to load module %q for locale %q", e.Module, e.Locale)
}

func (e *ModuleError) Unwrap() error { return e.Cause }
func (e *ModuleError) Category() Category { return CategoryModuleLoad }
func (e *ModuleError) ErrorContext() Context { return e.Context }
func (e *ModuleError) ErrorID() string { return e.ID }

// NetworkError indicates a transport-level failure (connection refused,
// non-2xx response, malformed body, timeout).
type NetworkError struct {
	ID        string
	Operation string
	URL       string
	Cause     error
	Context   Context
}

// NewNetworkError creates a NetworkError for the given operation and URL.
func NewNetworkError(operation, url string, cause error) *NetworkError {
	return &NetworkError{
		ID:        newID(CategoryNetwork),
		Operation: operation,
		URL:       url,
		Cause:     cause,
		Context: Context{
			Operation: operation,
			Timestamp: time.Now(),
		},
	}
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("network error during %s (%s): %v", e.Operation, e.URL, e.Cause)
	}
	return fmt.Sprintf("network error during %s (%s)", e.Operation, e.URL)
}

func (e *NetworkError) Unwrap() error { return e.Cause }
func (e *NetworkError) Category() Category { return CategoryNetwork }
func (e *NetworkError) ErrorContext() Context { return e.Context }
func (e *NetworkError) ErrorID() string { return e.ID }

// CacheError indicates a cache-operation failure.
type CacheError struct {
	ID        string
	Operation string
	CacheKey  string
	Cause     error
	Context   Context
}

// NewCacheError creates a CacheError for the given operation and cache key.
func NewCacheError(operation, cacheKey string, cause error) *CacheError {
	return &CacheError{
		ID:        newID(CategoryCache),
		Operation: operation,
		CacheKey:  cacheKey,
		Cause:     cause,
		Context: Context{
			Key:       cacheKey,
			Operation: operation,
			Timestamp: time.Now(),
		},
	}
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache %s failed for %q: %v", e.Operation, e.CacheKey, e.Cause)
	}
	return fmt.Sprintf("cache %s failed for %q", e.Operation, e.CacheKey)
}

func (e *CacheError) Unwrap() error { return e.Cause }
func (e *CacheError) Category() Category { return CategoryCache }
func (e *CacheError) ErrorContext() Context { return e.Context }
func (e *CacheError) ErrorID() string { return e.ID }

// ConfigError indicates an invalid runtime configuration. Configuration
// errors signal a programming or setup mistake rather than a transient
// condition and map to the abort strategy by default.
type ConfigError struct {
	ID      string
	Field   string
	Reason  string
	Context Context
}

// NewConfigError creates a ConfigError for the given field and reason.
func NewConfigError(field, reason string) *ConfigError {
	return &ConfigError{
		ID:     newID(CategoryConfiguration),
		Field:  field,
		Reason: reason,
		Context: Context{
			Operation: "configure",
			Timestamp: time.Now(),
		},
	}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration for %q: %s", e.Field, e.Reason)
}

func (e *ConfigError) Category() Category { return CategoryConfiguration }
func (e *ConfigError) ErrorContext() Context { return e.Context }
func (e *ConfigError) ErrorID() string { return e.ID }

// categorized is implemented by every typed error above.
type categorized interface {
	Category() Category
}

// CategoryOf classifies any error into the recovery vocabulary. When typed
// errors wrap each other, the outermost one determines the category. Errors
// raised outside this taxonomy classify as CategoryUnknown.
func CategoryOf(err error) Category {
	if err == nil {
		return CategoryUnknown
	}
	var c categorized
	if errors.As(err, &c) {
		return c.Category()
	}
	return CategoryUnknown
}
