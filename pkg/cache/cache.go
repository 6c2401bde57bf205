// Package cache provides pluggable byte caches and key derivation for the
// layout pipeline. Laying out a large panorama graph is the expensive stage,
// so computed layouts are cached keyed on the document hash and the layout
// options; parsed documents can be cached too when they come from a remote
// store.
//
// Three backends are provided:
//   - FileCache: directory-backed, for CLI usage
//   - RedisCache: Redis-backed, for multi-instance server deployments
//   - NullCache: no-op, for tests or when caching is disabled
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached artifact kind.
const (
	// DefaultDocumentTTL is how long parsed documents stay cached.
	DefaultDocumentTTL = 24 * time.Hour

	// DefaultLayoutTTL is how long computed layouts stay cached. Layouts are
	// deterministic for a given document hash and options, so they can live
	// long; the TTL only bounds disk growth.
	DefaultLayoutTTL = 7 * 24 * time.Hour
)

// Cache is a byte-oriented cache with TTL support.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present
	// and unexpired; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// LayoutKeyOpts are the layout parameters that affect the computed result
// and therefore participate in the cache key.
type LayoutKeyOpts struct {
	Seed       uint64
	Iterations int
}

// Keyer generates cache keys for the pipeline's cacheable artifacts.
type Keyer interface {
	// DocumentKey generates a key for a parsed document, from the hash of
	// its raw bytes.
	DocumentKey(docHash string) string

	// LayoutKey generates a key for a computed layout.
	LayoutKey(docHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer is the standard key generation scheme. Keys are
// "kind:sha256(parts)" so they are safe for both filesystems and Redis.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DocumentKey generates a key for a parsed document.
func (k *DefaultKeyer) DocumentKey(docHash string) string {
	return hashKey("doc", docHash)
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts.Seed, opts.Iterations)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
