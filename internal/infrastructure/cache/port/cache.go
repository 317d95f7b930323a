package port

import (
	"context"
	"time"
)

// Cache is the contract for the short-lived read-through caches used by
// the API, currently just the participant roster. Implementations must be
// concurrency-safe and context-aware.
type Cache interface {
	// Get fetches the value stored at key, or ErrMiss when absent/expired.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key for the given TTL. Zero or negative TTL
	// means no expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes the given keys. Deleting an absent key is not an error.
	Del(ctx context.Context, keys ...string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ErrMiss signals a cache miss in a typed way so callers can tell misses
// apart from transport errors.
var ErrMiss = errMiss{}

type errMiss struct{}

func (errMiss) Error() string { return "cache: miss" }
