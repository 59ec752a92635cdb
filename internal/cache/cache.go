// Package cache is a bounded LRU with per-key request coalescing.
//
// Get refreshes recency, Set evicts the single least recently used entry on
// overflow, and Coalesce guarantees at most one in-flight computation per
// key. All operations are safe for concurrent use.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/KirkDiggler/dex-api/internal/errors"
)

// DefaultCapacity is used when Config.Capacity is zero.
const DefaultCapacity = 100

// Config configures a Cache
type Config struct {
	// Name labels log lines.
	Name     string
	Capacity int
	Logger   *slog.Logger
}

// Validate ensures the capacity is usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Capacity < 0 {
		vb.Fieldf("Capacity", "must not be negative, got %d", c.Capacity)
	}
	return vb.Build()
}

// Cache stores values of type V by composite string key.
type Cache[V any] struct {
	name   string
	store  *lru.Cache[string, V]
	group  singleflight.Group
	logger *slog.Logger
}

// New creates a cache. A nil config uses defaults.
func New[V any](cfg *Config) (*Cache[V], error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid cache config")
	}

	capacity := cfg.Capacity
	if capacity == 0 {
		capacity = DefaultCapacity
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Cache[V]{name: cfg.Name, logger: logger}
	store, err := lru.NewWithEvict[string, V](capacity, func(key string, _ V) {
		c.logger.Debug("cache eviction", "cache", c.name, "key", key)
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to create lru")
	}
	c.store = store
	return c, nil
}

// Get returns the cached value and marks it most recently used.
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.store.Get(key)
}

// Set inserts or replaces the value and marks it most recently used.
func (c *Cache[V]) Set(key string, value V) {
	c.store.Add(key, value)
}

// Len is the number of stored entries.
func (c *Cache[V]) Len() int {
	return c.store.Len()
}

// Reset drops every stored entry. In-flight computations are not
// interrupted; their results land in the emptied cache.
func (c *Cache[V]) Reset() {
	c.store.Purge()
	c.logger.Debug("cache reset", "cache", c.name)
}

// Coalesce runs fn for key unless a computation for key is already in
// flight, in which case it waits for that one. fn runs detached from the
// caller's cancellation; a caller whose ctx ends gets ctx.Err() while fn
// keeps running for the remaining waiters. Coalesce does not store the
// result.
func (c *Cache[V]) Coalesce(ctx context.Context, key string, fn func(context.Context) (V, error)) (V, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		return fn(detached)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero V
			return zero, res.Err
		}
		if res.Shared {
			c.logger.Debug("coalesced request", "cache", c.name, "key", key)
		}
		return res.Val.(V), nil
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// GetOrCompute returns the cached value for key, computing and storing it
// through Coalesce on a miss. Failures are not cached.
func (c *Cache[V]) GetOrCompute(ctx context.Context, key string, fn func(context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	return c.Coalesce(ctx, key, func(ctx context.Context) (V, error) {
		// Another flight may have stored the value after our miss.
		if v, ok := c.store.Peek(key); ok {
			return v, nil
		}
		v, err := fn(ctx)
		if err != nil {
			return v, err
		}
		c.Set(key, v)
		return v, nil
	})
}

// Key joins an operation name and its arguments with underscores, for
// example Key("search", "pika", true, 20) is "search_pika_true_20".
func Key(op string, args ...any) string {
	if len(args) == 0 {
		return op
	}
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, op)
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	return strings.Join(parts, "_")
}
