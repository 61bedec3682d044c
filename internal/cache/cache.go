// Package cache stores short-lived lookups such as resolved permission sets.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrCacheMiss is returned when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache defines the cache interface
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// Clear removes every key matching a glob pattern.
	Clear(ctx context.Context, pattern string) error
	Close() error
}

// Options select and configure a backend.
type Options struct {
	Type          string // memory or redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// New builds the backend named by opts.Type.
func New(opts Options) (Cache, error) {
	switch opts.Type {
	case "", "memory":
		return NewMemoryCache(time.Minute), nil
	case "redis":
		return NewRedisCache(opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
	default:
		return nil, fmt.Errorf("unknown cache type %q", opts.Type)
	}
}

// Shared reports whether c is visible to every process configured with the
// same backend. A memory cache belongs to its own process.
func Shared(c Cache) bool {
	_, ok := c.(*RedisCache)
	return ok
}

// Key joins parts into a namespaced cache key.
func Key(parts ...string) string {
	return "hms:" + strings.Join(parts, ":")
}

// GetJSON decodes the cached value at key into v.
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	raw, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return c.Set(ctx, key, raw, ttl)
}
