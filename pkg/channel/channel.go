// Package channel defines the shared key/value channel two clients use to
// exchange the game state.
package channel

import (
	"context"
	"errors"
	"time"
)

type (
	// Channel is a plain put/get store without any ordering guarantees
	// across keys. A Put replaces the value stored under the key.
	Channel interface {
		Put(ctx context.Context, key string, value []byte) error
		// Get returns ErrNotFound if nothing is stored under key
		Get(ctx context.Context, key string) ([]byte, error)
		Close() error
	}

	Config struct {
		// entries older than this may be removed by the channel (0: keep)
		TTL time.Duration
		// timeout of a single request
		Timeout time.Duration
	}
	Option func(*Config)
)

var ErrNotFound = errors.New("key not found")

func WithTTL(d time.Duration) Option {
	return func(c *Config) {
		c.TTL = d
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// NewConfig returns the config with defaults applied
func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		TTL:     24 * time.Hour,
		Timeout: 5 * time.Second,
	}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}
