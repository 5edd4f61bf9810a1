// Package cache stores rendered artifacts between runs.
//
// Laying out a large tree with Graphviz is the slowest thing arbor does, and
// the output depends only on the DOT source and the output format. Results
// are therefore keyed by a hash of both and kept under the user's cache
// directory. A [NullCache] disables caching.
package cache

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by [Fetch] when the compute function is skipped
// and nothing is cached. Get itself reports misses through its bool result.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the stored bytes and whether the key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// ArtifactKey returns the cache key for rendering dot in the given format.
func ArtifactKey(dot []byte, format string) string {
	return "artifact:" + format + ":" + Hash(dot)
}

// Fetch returns the cached value for key, or calls compute, stores its result
// and returns it. The bool result reports whether the value came from the
// cache. A failing Set is not fatal: the computed value is still returned.
func Fetch(ctx context.Context, c Cache, key string, compute func() ([]byte, error)) ([]byte, bool, error) {
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}
	if compute == nil {
		return nil, false, ErrCacheMiss
	}
	data, err := compute()
	if err != nil {
		return nil, false, err
	}
	_ = c.Set(ctx, key, data)
	return data, false, nil
}
