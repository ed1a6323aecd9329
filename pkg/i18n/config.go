package i18n

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/lazyi18n/pkg/cache"
	"github.com/dmitrymomot/lazyi18n/pkg/i18nerr"
)

// Config declares the runtime's locale universe, translation source, and
// cache sizing. All fields have environment bindings so a zero-config
// deployment works from variables alone.
type Config struct {
	DefaultLocale    string   `env:"I18N_DEFAULT_LOCALE" envDefault:"en"`
	FallbackLocale   string   `env:"I18N_FALLBACK_LOCALE" envDefault:"en"`
	SupportedLocales []string `env:"I18N_SUPPORTED_LOCALES" envDefault:"en" envSeparator:","`

	// SourceURL is the base URL translation documents are fetched from as
	// {SourceURL}/{locale}.{SourceFormat}. Optional when a custom Fetcher
	// is supplied via WithFetcher.
	SourceURL    string `env:"I18N_SOURCE_URL"`
	SourceFormat string `env:"I18N_SOURCE_FORMAT" envDefault:"json"`

	// PreloadLocales are warmed in the background after Initialize,
	// PreloadDelay after the eager phase so they never compete with it.
	PreloadLocales []string      `env:"I18N_PRELOAD_LOCALES" envSeparator:","`
	PreloadDelay   time.Duration `env:"I18N_PRELOAD_DELAY" envDefault:"2s"`

	// TrackerMaxLog bounds the error tracker's recent-error log.
	TrackerMaxLog int `env:"I18N_TRACKER_MAX_LOG" envDefault:"100"`

	Cache cache.Config
}

// LoadConfig reads Config from the environment, loading a .env file first
// when one is present.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, i18nerr.NewConfigError("environment", err.Error())
	}
	return cfg, nil
}

// DefaultConfig returns the documented defaults without touching the
// environment.
func DefaultConfig() Config {
	return Config{
		DefaultLocale:    "en",
		FallbackLocale:   "en",
		SupportedLocales: []string{"en"},
		SourceFormat:     "json",
		PreloadDelay:     2 * time.Second,
		TrackerMaxLog:    i18nerr.DefaultMaxLog,
		Cache:            cache.DefaultConfig(),
	}
}

// validate checks the parts of Config the state and cache layers do not
// validate themselves.
func (c Config) validate() error {
	switch c.SourceFormat {
	case "json", "yaml", "yml":
	default:
		return i18nerr.NewConfigError("SourceFormat", "must be json, yaml, or yml")
	}
	return nil
}
