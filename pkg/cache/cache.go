// Package cache provides caching for computed grid layouts and rendered
// artifacts.
//
// The Cache interface abstracts the storage backend:
//   - file: File-based cache for CLI usage
//   - redis: Redis-backed cache for server deployments
//   - null: No-op cache for testing or when caching is disabled
//
// Keys are produced by a Keyer so that all callers agree on the key layout.
// Layout keys are derived from the tree content hash and the placement
// options; identical trees with identical options hit the same entry
// regardless of who computed them.
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached layer. Trees change rarely; layouts and
// artifacts are cheap to recompute and expire faster.
const (
	TTLTree     = 24 * time.Hour
	TTLLayout   = 6 * time.Hour
	TTLArtifact = 6 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A non-positive TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts captures the placement inputs that affect a computed layout.
type LayoutKeyOpts struct {
	ColHeaderDepth int     `json:"col_header_depth"`
	RowHeaderDepth int     `json:"row_header_depth"`
	CellWidth      float64 `json:"cell_width"`
	CellHeight     float64 `json:"cell_height"`
	HeaderWidth    float64 `json:"header_width"`
	HeaderHeight   float64 `json:"header_height"`
}

// ArtifactKeyOpts captures the rendering inputs that affect an exported
// artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"` // dot, svg, png
	Theme  string `json:"theme"`
}

// Keyer generates cache keys for the different cached layers.
type Keyer interface {
	// TreeKey generates a key for a parsed axis tree by content hash.
	TreeKey(contentHash string) string

	// LayoutKey generates a key for a computed grid layout.
	LayoutKey(treeHash, mappingHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

func (k *DefaultKeyer) TreeKey(contentHash string) string {
	return "tree:" + contentHash
}

func (k *DefaultKeyer) LayoutKey(treeHash, mappingHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, mappingHash, opts)
}

func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
