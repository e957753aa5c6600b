package brick

import (
	"math/rand/v2"

	"github.com/matzehuels/brickuv/pkg/mesh"
)

// textureSpan maps a cell at atlas column x, row y to the texture span it
// samples. Width is 1 cell unless double-halves widens a border cell to a
// full brick: a cell is widened when it is both ends of its run, or when
// its parity phase faces the matching end. Widening on the odd phase also
// shifts the span one cell left so the brick stays seam-aligned.
func (p Params) textureSpan(x, y int, isStart, isEnd bool) (texX, texY, width int) {
	width = 1
	if p.DoubleHalves {
		off := 0
		if p.Offset {
			off = 1
		}
		phase := mod2(x+y+off) == 1
		if (isStart && isEnd) || (isStart && phase) || (isEnd && !phase) {
			width = 2
			if phase {
				x--
			}
		}
	}
	if p.Offset {
		x++
	}
	return x, y, width
}

func mod2(v int) int {
	return ((v % 2) + 2) % 2
}

// uvAt converts a face corner inside a texture span to a UV coordinate.
// The half-texel bias keeps samples off cell boundaries, and V is flipped
// so texture row 0 is at the top.
func (p Params) uvAt(texX, texY, width, faceX, faceY int) mesh.UV {
	s := p.Subdivs()
	u := (0.5 + (float64(texX)+float64(width)*float64(faceX)/float64(s.X))*float64(p.CellSize.X)) / float64(p.TextureSize.X)
	v := (0.5 + (float64(texY)+float64(faceY)/float64(s.Y))*float64(p.CellSize.Y)) / float64(p.TextureSize.Y)
	return mesh.UV{U: u, V: 1 - v}
}

// evenOrigin draws an even origin cell in [0, n).
func evenOrigin(rng *rand.Rand, n int) int {
	if n <= 1 {
		return 0
	}
	return 2 * rng.IntN((n+1)/2)
}

// Apply assigns UVs to every loop of the island's faces. Each cell picks
// its texture span from its atlas position (shifted by a random even
// origin when enabled), then each face corner is interpolated into the
// span. With rotation enabled the island is laid out transposed: atlas
// axes swap, the run ends become the bottom/top borders, and corners are
// visited clockwise so the bricks read sideways.
func (isl *Island) Apply(m *mesh.Mesh, p Params, rng *rand.Rand) {
	var xOrg, yOrg int
	if p.Random && rng != nil {
		xOrg = evenOrigin(rng, p.TextureSize.X/p.CellSize.X)
		yOrg = evenOrigin(rng, p.TextureSize.Y/p.CellSize.Y)
	}
	for cy := range isl.cells {
		for cx, cell := range isl.cells[cy] {
			if cell == nil {
				continue
			}
			var texX, texY, width int
			if p.Rotate {
				texX, texY, width = p.textureSpan(xOrg+cy, yOrg+cx, cell.Ends[SideBottom], cell.Ends[SideTop])
			} else {
				texX, texY, width = p.textureSpan(xOrg+cx, yOrg+cy, cell.Ends[SideLeft], cell.Ends[SideRight])
			}
			for _, cf := range cell.Faces {
				fx, fy := cf.X, cf.Y
				if p.Rotate {
					fx, fy = fy, fx
				}
				corners := [4][2]int{{fx, fy}, {fx + 1, fy}, {fx + 1, fy + 1}, {fx, fy + 1}}
				l := cf.Loop
				for _, c := range corners {
					m.SetUV(l, p.uvAt(texX, texY, width, c[0], c[1]))
					if p.Rotate {
						l = m.Prev(l)
					} else {
						l = m.Next(l)
					}
				}
			}
		}
	}
}
