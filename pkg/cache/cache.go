// Package cache provides pluggable caching for pipeline stages.
//
// Three backends implement the [Cache] interface:
//   - FileCache: directory-backed, for CLI usage
//   - RedisCache: shared cache for multi-instance serving
//   - NullCache: disables caching
//
// Keys are produced by a [Keyer], one method per pipeline stage, so stage
// results can be invalidated independently and different option sets never
// collide.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
// Implementations must treat a missing key as a miss, not an error.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// Keyer builds cache keys for the pipeline stages.
type Keyer interface {
	// SampleKey identifies a generated sample by its request parameters.
	SampleKey(count int, seed uint64) string

	// LayoutKey identifies a computed layout by the sample it was built
	// from and the layout options.
	LayoutKey(dataHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered artifact by the layout it was
	// rendered from and the render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that affect layout computation.
type LayoutKeyOpts struct {
	Strategy string
}

// ArtifactKeyOpts are the options that affect artifact rendering.
type ArtifactKeyOpts struct {
	Format    string
	Style     string
	Conflicts bool
	Labels    bool
	Nodelink  bool
	Detailed  bool
	Scale     float64
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// SampleKey generates a key for sample caching.
func (k *DefaultKeyer) SampleKey(count int, seed uint64) string {
	return hashKey("sample", count, seed)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(dataHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", dataHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
