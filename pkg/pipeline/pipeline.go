// Package pipeline provides the core unwrap pipeline for BrickUV.
//
// This package implements the complete load → unwrap → render pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a quad mesh from a Wavefront OBJ file and select faces
//  2. Unwrap: Discover islands and assign brick-pattern UVs
//  3. Render: Generate output in various formats (OBJ, JSON, atlas, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "wall.obj",
//	    Formats: []string{"obj", "atlas-svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["atlas-svg"]
//
// Run individual stages:
//
//	// Load only
//	m, hash, err := runner.Load(opts)
//
//	// Unwrap an existing mesh
//	l, err := runner.Unwrap(ctx, m, hash, opts)
//
//	// Render with an existing layout
//	artifacts, err := runner.Render(ctx, l, m, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/brickuv/pkg/brick"
	"github.com/matzehuels/brickuv/pkg/cache"
	"github.com/matzehuels/brickuv/pkg/errors"
	"github.com/matzehuels/brickuv/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultTextureSize is the default atlas edge length in texels.
	// Matches the common 128x128 brick atlas the texture packs ship with.
	DefaultTextureSize = 128

	// DefaultCellSize is the default brick cell edge length in texels.
	DefaultCellSize = 8

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultScale is the default atlas render scale in pixels per texel.
	DefaultScale = 4.0
)

// Format constants for output formats.
const (
	FormatOBJ      = layout.FormatOBJ
	FormatJSON     = layout.FormatJSON
	FormatAtlasSVG = layout.FormatAtlasSVG
	FormatAtlasPNG = layout.FormatAtlasPNG
	FormatDOT      = layout.FormatDOT
	FormatDOTSVG   = layout.FormatDOTSVG
	FormatDOTPNG   = layout.FormatDOTPNG
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatOBJ:      true,
	FormatJSON:     true,
	FormatAtlasSVG: true,
	FormatAtlasPNG: true,
	FormatDOT:      true,
	FormatDOTSVG:   true,
	FormatDOTPNG:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the unwrap pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Input     string `json:"input,omitempty"` // Path to OBJ file
	OBJ       string `json:"obj,omitempty"`   // Inline OBJ source (API requests)
	Faces     []int  `json:"faces,omitempty"` // Face indices to unwrap; empty selects all
	SelectAll bool   `json:"select_all,omitempty"`

	// Unwrap options
	TextureW int    `json:"texture_w,omitempty"`
	TextureH int    `json:"texture_h,omitempty"`
	CellW    int    `json:"cell_w,omitempty"`
	CellH    int    `json:"cell_h,omitempty"`
	Rotate   bool   `json:"rotate,omitempty"`
	Offset   bool   `json:"offset,omitempty"`
	Coplanar bool   `json:"coplanar,omitempty"`
	Subdiv   bool   `json:"subdiv,omitempty"`
	Seed     uint64 `json:"seed,omitempty"`

	// SkipDoubleHalves disables half-brick merging (default: false = merge).
	SkipDoubleHalves bool `json:"skip_double_halves,omitempty"`
	// FixedOrigin pins every island to atlas tile (0,0) instead of drawing
	// a random origin per island (default: false = random).
	FixedOrigin bool `json:"fixed_origin,omitempty"`

	Refresh bool `json:"refresh,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`    // Atlas render scale (px/texel)
	Grid     bool     `json:"grid,omitempty"`     // Draw cell grid on the atlas
	Labels   bool     `json:"labels,omitempty"`   // Draw face indices on the atlas
	Detailed bool     `json:"detailed,omitempty"` // Detailed labels on adjacency graphs

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed unwrap layout.
	Layout layout.Layout

	// MeshHash is the content hash of the input mesh.
	MeshHash string

	// LayoutHash is the content hash of the serialized layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FaceCount     int
	SelectedCount int
	IslandCount   int
	LoadTime      time.Duration
	UnwrapTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if err := errors.ValidateFormat(format); err != nil {
		return err
	}
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: obj, json, atlas-svg, atlas-png, dot, dot-svg, dot-png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForUnwrap(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for mesh loading.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" && o.OBJ == "" {
		return fmt.Errorf("input or obj is required")
	}
	if o.Input != "" && o.OBJ != "" {
		return fmt.Errorf("input and obj are mutually exclusive")
	}
	if err := errors.ValidateFaceList(o.Faces); err != nil {
		return err
	}
	if len(o.Faces) > 0 && o.SelectAll {
		return fmt.Errorf("faces and select_all are mutually exclusive")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetUnwrapDefaults sets default values for the unwrap stage.
func (o *Options) SetUnwrapDefaults() {
	if o.TextureW == 0 {
		o.TextureW = DefaultTextureSize
	}
	if o.TextureH == 0 {
		o.TextureH = DefaultTextureSize
	}
	if o.CellW == 0 {
		o.CellW = DefaultCellSize
	}
	if o.CellH == 0 {
		o.CellH = DefaultCellSize
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForUnwrap validates and sets defaults for the unwrap stage.
func (o *Options) ValidateForUnwrap() error {
	o.SetUnwrapDefaults()
	return o.ToParams().Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetUnwrapDefaults()
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// UseDoubleHalves returns whether half-brick merging is enabled.
func (o *Options) UseDoubleHalves() bool {
	return !o.SkipDoubleHalves
}

// Randomize returns whether per-island origins are randomized.
func (o *Options) Randomize() bool {
	return !o.FixedOrigin
}

// ToParams converts the options into unwrap parameters.
func (o *Options) ToParams() brick.Params {
	return brick.Params{
		TextureSize:  brick.Vec2i{X: o.TextureW, Y: o.TextureH},
		CellSize:     brick.Vec2i{X: o.CellW, Y: o.CellH},
		Rotate:       o.Rotate,
		Offset:       o.Offset,
		DoubleHalves: o.UseDoubleHalves(),
		Coplanar:     o.Coplanar,
		Random:       o.Randomize(),
		Subdiv:       o.Subdiv,
		Seed:         o.Seed,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		TextureW:     o.TextureW,
		TextureH:     o.TextureH,
		CellW:        o.CellW,
		CellH:        o.CellH,
		Rotate:       o.Rotate,
		Offset:       o.Offset,
		DoubleHalves: o.UseDoubleHalves(),
		Coplanar:     o.Coplanar,
		Random:       o.Randomize(),
		Subdiv:       o.Subdiv,
		Seed:         o.Seed,
		Faces:        o.Faces,
		SelectAll:    o.SelectAll,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Scale:    o.Scale,
		Grid:     o.Grid,
		Labels:   o.Labels,
		Detailed: o.Detailed,
	}
}
