// Package cache stores rendered chart artifacts and sankey layouts.
//
// Backends share the [Cache] interface: a byte store with per-entry TTLs.
// [FileCache] is used by the CLI, [RedisCache] and [MongoCache] by servers
// that share a cache between replicas, and [NullCache] disables caching.
// [Open] selects a backend from a URL-like string.
//
// Keys are derived by a [Keyer] from the content hash of the chart and the
// options that affect the output, so two requests that would produce the
// same bytes share one entry.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	// TTLArtifact is how long rendered outputs are kept.
	TTLArtifact = 24 * time.Hour

	// TTLLayout is how long sankey layouts are kept.
	TTLLayout = 24 * time.Hour
)

// Cache is a byte store with expiring entries. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns the stored data and true, or false on a miss. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// LayoutKeyOpts are the options that change a sankey layout.
type LayoutKeyOpts struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	NodeWidth   float64 `json:"node_width,omitempty"`
	NodePadding float64 `json:"node_padding,omitempty"`
	Detailed    bool    `json:"detailed,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a rendered output of the chart with
	// the given content hash.
	ArtifactKey(chartHash string, opts ArtifactKeyOpts) string

	// LayoutKey returns the key of a sankey layout of the graph with the
	// given content hash.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer hashes the hash and options into a prefixed key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(chartHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", chartHash, opts)
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

var _ Keyer = DefaultKeyer{}
