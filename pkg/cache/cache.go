// Package cache stores computed placement results.
//
// Results of static scenarios are deterministic, so the CLI and the API cache
// them keyed by a hash of the scenario. Backends:
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON file per entry under the XDG cache directory
//   - [RedisCache]: shared cache for API deployments
package cache

import (
	"context"
	"time"
)

// TTLResult is how long a computed result stays cached.
const TTLResult = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
