// Package cache provides pluggable byte caches used to memoize data-source
// fetches and rendered artifacts.
//
// Three backends are provided:
//   - FileCache: directory-backed cache for CLI usage
//   - RedisCache: Redis-backed cache for server deployments
//   - NullCache: no-op cache for tests or when caching is disabled
//
// Keys are built with the Keyer, which hashes the identifying inputs
// (file path, modification time, genome range, render options) so that any
// change to the inputs invalidates the entry.
package cache

import (
	"context"
	"time"
)

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// DefaultTTL is the default lifetime for fetch-result entries.
const DefaultTTL = 24 * time.Hour

// Keyer builds cache keys for the different entry types.
type Keyer struct{}

// NewKeyer creates a Keyer.
func NewKeyer() Keyer { return Keyer{} }

// FetchKey builds a key for a data-source fetch result.
// The source file's modification time participates in the key so edits to
// the underlying file invalidate stale entries.
func (Keyer) FetchKey(path string, mtime int64, grange string) string {
	return hashKey("fetch", path, mtime, grange)
}

// ArtifactKey builds a key for a rendered artifact.
func (Keyer) ArtifactKey(configHash, grange, format string) string {
	return hashKey("artifact", configHash, grange, format)
}
