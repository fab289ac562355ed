// Package cache stores fetched GitHub data and rendered documents between
// runs.
//
// All backends implement [Cache]:
//   - [FileCache]: one JSON envelope per key under the user cache directory
//     (CLI default)
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: disables caching (--no-cache)
//
// Keys are built by a [Keyer] so that backends never need to know what
// they hold.
package cache

import (
	"context"
	"time"
)

// Default lifetimes for cached entries.
const (
	StatsTTL     = time.Hour
	LanguagesTTL = 6 * time.Hour
	HTTPTTL      = time.Hour
	ArtifactTTL  = 10 * time.Minute
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// A ttl of zero stores the entry without expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
