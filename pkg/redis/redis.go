package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrInvalidConnectionURL is returned when the connection URL cannot
	// be parsed.
	ErrInvalidConnectionURL = errors.New("redis: invalid connection URL")
	// ErrNotReady is returned when the server did not answer a ping
	// within the configured attempts.
	ErrNotReady = errors.New("redis: server did not become ready")
	// ErrHealthcheckFailed wraps ping failures from Healthcheck.
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)

// Config describes the connection, populated from the environment.
type Config struct {
	ConnectionURL  string        `env:"I18N_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"I18N_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"I18N_REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"I18N_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// Connect dials the server described by cfg, retrying RetryAttempts times
// with RetryInterval between attempts, all bounded by ConnectTimeout. The
// returned client is ready for use with the Redis cache tier and the
// Redis preference store.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidConnectionURL, err)
	}

	for range max(cfg.RetryAttempts, 1) {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}
	return nil, ErrNotReady
}

// Healthcheck returns a probe function reporting whether the server still
// answers pings.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
