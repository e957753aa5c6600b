// Package cache provides caching for pipeline stages and rendered artifacts.
//
// The cache stores opaque byte blobs under string keys. Backends exist for
// local files (CLI), Redis and MongoDB (server deployments), and a no-op
// null cache. Keys are generated by a Keyer so every consumer derives them
// the same way from content hashes and parameters.
package cache

import (
	"context"
	"time"
)

// TTLs per blob kind. Layouts are pure functions of mesh and parameters so
// they keep well; artifacts embed styling that changes more often.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte-blob cache with TTL support.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss;
// errors are reserved for backend failures, never for absent keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts are the parameters that distinguish one unwrap layout from
// another for the same mesh.
type LayoutKeyOpts struct {
	TextureW, TextureH int
	CellW, CellH       int
	Rotate             bool
	Offset             bool
	DoubleHalves       bool
	Coplanar           bool
	Random             bool
	Subdiv             bool
	Seed               uint64
	Faces              []int
	SelectAll          bool
}

// ArtifactKeyOpts are the parameters that distinguish rendered artifacts
// built from the same layout.
type ArtifactKeyOpts struct {
	Format   string
	Scale    float64
	Grid     bool
	Labels   bool
	Detailed bool
}

// Keyer generates cache keys. Implementations must be deterministic:
// equal inputs always produce equal keys.
type Keyer interface {
	// LayoutKey generates a key for a computed layout, derived from the
	// content hash of the input mesh and the unwrap parameters.
	LayoutKey(meshHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, derived from
	// the layout hash and render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(meshHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", meshHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
