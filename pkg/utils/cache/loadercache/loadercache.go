// Package loadercache provides an expiring cache that fills itself through a
// loader function on a miss.
package loadercache

import (
	"context"
	"sync"
	"time"

	"github.com/mpapenbr/pitwall-go/log"
	"github.com/mpapenbr/pitwall-go/pkg/utils/cache"
)

type (
	Option[K comparable, V any]     func(*settings[K, V])
	LoaderFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

	settings[K comparable, V any] struct {
		ttl    time.Duration
		loader LoaderFunc[K, V]
		log    *log.Logger
	}
	entry[V any] struct {
		value   V
		validTo time.Time
	}
	// pending load shared by concurrent readers of the same key
	call[V any] struct {
		done  chan struct{}
		value V
		err   error
	}
	loaderCache[K comparable, V any] struct {
		settings[K, V]
		mu       sync.Mutex
		entries  map[K]entry[V]
		inflight map[K]*call[V]
	}
)

func WithExpiration[K comparable, V any](ttl time.Duration) Option[K, V] {
	return func(s *settings[K, V]) { s.ttl = ttl }
}

// WithLoader sets the function called on a cache miss. Errors are not cached.
func WithLoader[K comparable, V any](lf LoaderFunc[K, V]) Option[K, V] {
	return func(s *settings[K, V]) { s.loader = lf }
}

func WithLogger[K comparable, V any](l *log.Logger) Option[K, V] {
	return func(s *settings[K, V]) { s.log = l }
}

func New[K comparable, V any](opts ...Option[K, V]) cache.Cache[K, V] {
	s := settings[K, V]{ttl: 5 * time.Minute, log: log.Default().Named("cache")}
	for _, opt := range opts {
		opt(&s)
	}
	return &loaderCache[K, V]{
		settings: s,
		entries:  map[K]entry[V]{},
		inflight: map[K]*call[V]{},
	}
}

// Get returns the cached value or loads it. Concurrent misses on the same key
// share a single loader call. The loader runs without holding the lock.
func (c *loaderCache[K, V]) Get(ctx context.Context, key K) (V, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		if time.Now().Before(e.validTo) {
			c.mu.Unlock()
			return e.value, nil
		}
		delete(c.entries, key)
	}
	if c.loader == nil {
		c.mu.Unlock()
		var zero V
		return zero, cache.ErrCacheMiss
	}
	if p, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		return c.await(ctx, p)
	}
	p := &call[V]{done: make(chan struct{})}
	c.inflight[key] = p
	c.mu.Unlock()

	p.value, p.err = c.loader(ctx, key)
	c.log.Debug("loaded", log.Any("key", key), log.ErrorField(p.err))

	c.mu.Lock()
	delete(c.inflight, key)
	if p.err == nil {
		c.entries[key] = entry[V]{value: p.value, validTo: time.Now().Add(c.ttl)}
	}
	c.mu.Unlock()
	close(p.done)
	return p.value, p.err
}

func (c *loaderCache[K, V]) await(ctx context.Context, p *call[V]) (V, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

func (c *loaderCache[K, V]) Set(_ context.Context, key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, validTo: time.Now().Add(c.ttl)}
}

func (c *loaderCache[K, V]) Invalidate(_ context.Context, key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.log.Debug("invalidated", log.Any("key", key), log.Int("remaining", len(c.entries)))
}

func (c *loaderCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
