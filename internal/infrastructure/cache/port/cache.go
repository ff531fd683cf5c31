package port

import (
	"context"
	"errors"
	"time"
)

// Cache is the minimal key-value contract used to memoize counterpart
// profile lookups in the inbox. Implementations must be concurrency-safe.
// Values are strings; callers own serialization.
type Cache interface {
	// Get fetches the value for key. Misses are reported as ErrMiss so
	// callers can tell them apart from transport errors.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key. Zero or negative TTL means no expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Close releases any resources held by the cache.
	Close() error
}

// ErrMiss signals a cache miss.
var ErrMiss = errors.New("cache: miss")
