package brick

import "errors"

var (
	// ErrInvalidTextureSize is returned by [Params.Validate] when the atlas
	// dimensions are not strictly positive.
	ErrInvalidTextureSize = errors.New("texture size must be positive")

	// ErrInvalidCellSize is returned by [Params.Validate] when the cell
	// dimensions are not strictly positive.
	ErrInvalidCellSize = errors.New("cell size must be positive")

	// ErrCellLargerThanTexture is returned by [Params.Validate] when a cell
	// does not fit inside the texture atlas.
	ErrCellLargerThanTexture = errors.New("cell size exceeds texture size")
)

// Vec2i is an integer 2D size or coordinate pair.
type Vec2i struct {
	X, Y int
}

// Params is the immutable per-invocation configuration for the unwrap.
//
// TextureSize and CellSize are in texel units: an atlas of TextureSize.X by
// TextureSize.Y texels is tiled by bricks of CellSize.X by CellSize.Y
// texels. The boolean switches correspond one-to-one to the operator
// options exposed to users.
type Params struct {
	// TextureSize is the atlas dimensions in texels.
	TextureSize Vec2i
	// CellSize is the size of one brick cell in texels.
	CellSize Vec2i

	// Rotate swaps the tiling axis and walks UV corners in reverse loop
	// order, producing vertically-running bond.
	Rotate bool
	// Offset shifts the running-bond stagger by one cell.
	Offset bool
	// DoubleHalves merges half-width border bricks into double-width
	// neighbors so islands never end on a stray half brick.
	DoubleHalves bool
	// Coplanar pre-expands the selection to all coplanar faces before
	// islands are discovered.
	Coplanar bool
	// Random draws a per-island atlas origin (even-aligned to preserve
	// bond parity) instead of starting every island at tile (0,0).
	Random bool
	// Subdiv groups CellSize faces into one brick cell instead of mapping
	// each face to its own cell.
	Subdiv bool

	// Seed drives the per-island atlas origin draw when Random is set.
	// Equal seeds produce identical layouts.
	Seed uint64
}

// Subdivs returns the number of faces per cell along each axis: CellSize
// when subdivision is enabled, (1,1) otherwise. The tiling engine is
// parameterized solely by this value, so the subdivided and per-face
// variants share one code path.
func (p Params) Subdivs() Vec2i {
	if p.Subdiv {
		return p.CellSize
	}
	return Vec2i{1, 1}
}

// Validate checks that the sizes describe a usable atlas.
func (p Params) Validate() error {
	if p.TextureSize.X <= 0 || p.TextureSize.Y <= 0 {
		return ErrInvalidTextureSize
	}
	if p.CellSize.X <= 0 || p.CellSize.Y <= 0 {
		return ErrInvalidCellSize
	}
	if p.CellSize.X > p.TextureSize.X || p.CellSize.Y > p.TextureSize.Y {
		return ErrCellLargerThanTexture
	}
	return nil
}

// DefaultParams returns the operator defaults: a 128x128 atlas of 8x8
// bricks with double-half merging and randomized island origins enabled.
func DefaultParams() Params {
	return Params{
		TextureSize:  Vec2i{128, 128},
		CellSize:     Vec2i{8, 8},
		DoubleHalves: true,
		Random:       true,
		Seed:         42,
	}
}
