package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/brickuv/pkg/cache"
	"github.com/matzehuels/brickuv/pkg/layout"
	"github.com/matzehuels/brickuv/pkg/mesh"
	"github.com/matzehuels/brickuv/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → unwrap → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	m, meshHash, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.MeshHash = meshHash
	result.Stats.FaceCount = m.FaceCount()
	result.Stats.SelectedCount = len(m.SelectedFaces())

	// Stage 2: Unwrap
	unwrapStart := time.Now()
	l, layoutHit, err := r.UnwrapWithCacheInfo(ctx, m, meshHash, opts)
	if err != nil {
		return nil, fmt.Errorf("unwrap: %w", err)
	}
	result.Layout = l
	result.Stats.UnwrapTime = time.Since(unwrapStart)
	result.Stats.IslandCount = len(l.Islands)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("unwrapped selection",
		"faces", l.FaceCount(),
		"islands", len(l.Islands),
		"duration", result.Stats.UnwrapTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, renderedHash, err := r.RenderWithCacheInfo(ctx, l, m, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.LayoutHash = renderedHash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads and selects the input mesh, reporting timing through the
// pipeline hooks.
func (r *Runner) Load(ctx context.Context, opts Options) (*mesh.Mesh, string, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, "", err
	}
	r.applyLogger(&opts)

	source := opts.Input
	if source == "" {
		source = "<inline>"
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)

	start := time.Now()
	m, meshHash, err := Load(opts)
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnLoadComplete(ctx, source, 0, elapsed, err)
		return nil, "", err
	}
	hooks.OnLoadComplete(ctx, source, m.FaceCount(), elapsed, nil)

	r.Logger.Info("loaded mesh",
		"source", source,
		"faces", m.FaceCount(),
		"selected", len(m.SelectedFaces()),
		"duration", elapsed)

	return m, meshHash, nil
}

// UnwrapWithCacheInfo computes a layout with caching and returns cache hit
// info. On a hit the cached UVs are written back onto the mesh so the OBJ
// artifact stays consistent with the layout.
func (r *Runner) UnwrapWithCacheInfo(ctx context.Context, m *mesh.Mesh, meshHash string, opts Options) (layout.Layout, bool, error) {
	if err := opts.ValidateForUnwrap(); err != nil {
		return layout.Layout{}, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(meshHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := layout.Unmarshal(data)
			if err == nil {
				if err := cached.ApplyTo(m); err == nil {
					observability.Cache().OnCacheHit(ctx, "layout")
					return cached, true, nil // Cache hit
				}
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	// Unwrap
	l, err := Unwrap(ctx, m, meshHash, opts)
	if err != nil {
		return layout.Layout{}, false, err
	}

	// Cache the result
	if !opts.Refresh {
		if data, err := layout.Marshal(l); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return l, false, nil // Cache miss
}

// Unwrap is a convenience wrapper that calls UnwrapWithCacheInfo and discards the cache hit info.
func (r *Runner) Unwrap(ctx context.Context, m *mesh.Mesh, meshHash string, opts Options) (layout.Layout, error) {
	l, _, err := r.UnwrapWithCacheInfo(ctx, m, meshHash, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info together with the layout hash the artifact keys were derived from.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, m *mesh.Mesh, opts Options) (map[string][]byte, bool, string, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, "", err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	layoutData, err := layout.Marshal(l)
	if err != nil {
		return nil, false, "", fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	// Try to get all formats from cache. The OBJ artifact depends on the
	// source mesh, not just the layout, so it is never served from cache.
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		if format == FormatOBJ {
			allCached = false
			break
		}
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, layoutHash, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := Render(l, m, opts)
	if err != nil {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, "", err
	}

	// Cache each format
	for format, data := range rendered {
		if format == FormatOBJ {
			continue
		}
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return rendered, false, layoutHash, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, m *mesh.Mesh, opts Options) (map[string][]byte, error) {
	artifacts, _, _, err := r.RenderWithCacheInfo(ctx, l, m, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
