package brick

import (
	"errors"

	"github.com/matzehuels/brickuv/pkg/mesh"
)

// ErrFaceNotSelected is returned when an island traversal reaches a face
// that is connected to the selection but not part of it. Islands must be
// bounded by deselected faces or open mesh borders.
var ErrFaceNotSelected = errors.New("brick: island traversal reached an unselected face")

// Grid sides in counter-clockwise order starting at the bottom edge.
// Cell.Ends and the twin tables below are indexed by these.
const (
	SideBottom = 0
	SideRight  = 1
	SideTop    = 2
	SideLeft   = 3
)

// Crossing edge i of a face lands on the twin loop of the neighbour.
// Advancing the twin by twinAdjust[i] yields the neighbour's own bottom
// loop, so the (x, y) assignment below keeps every face consistently
// oriented. twinDelta gives the grid step taken by the crossing.
var (
	twinAdjust = [4]int{2, 1, 0, 3}
	twinDeltaX = [4]int{0, 1, 0, -1}
	twinDeltaY = [4]int{-1, 0, 1, 0}
)

// gridItem records the bottom loop of a placed face together with its
// signed grid coordinate relative to the seed face.
type gridItem struct {
	loop mesh.LoopID
	x, y int
}

// faceGrid is the result of flood-filling one connected selection
// component: every face keyed by identity, plus the placed items and the
// bounding box of their coordinates.
type faceGrid struct {
	faces                  map[mesh.FaceID]struct{}
	items                  []gridItem
	minX, minY, maxX, maxY int
}

// buildGrid walks quad adjacency from seed, assigning integer (x, y)
// coordinates to every reachable selected face. The walk is iterative; a
// face is claimed when popped, so duplicate stack entries are harmless.
func buildGrid(m *mesh.Mesh, seed mesh.LoopID) (*faceGrid, error) {
	g := &faceGrid{faces: make(map[mesh.FaceID]struct{})}
	stack := []gridItem{{loop: seed}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		f := m.LoopFace(it.loop)
		if !m.Selected(f) {
			return nil, ErrFaceNotSelected
		}
		if _, claimed := g.faces[f]; claimed {
			continue
		}
		g.faces[f] = struct{}{}
		g.items = append(g.items, it)
		g.minX = min(g.minX, it.x)
		g.minY = min(g.minY, it.y)
		g.maxX = max(g.maxX, it.x)
		g.maxY = max(g.maxY, it.y)

		l := it.loop
		for side := range 4 {
			if twin, ok := m.Radial(l); ok {
				if tf := m.LoopFace(twin); m.Selected(tf) {
					if _, claimed := g.faces[tf]; !claimed {
						stack = append(stack, gridItem{
							loop: advance(m, twin, twinAdjust[side]),
							x:    it.x + twinDeltaX[side],
							y:    it.y + twinDeltaY[side],
						})
					}
				}
			}
			l = m.Next(l)
		}
	}
	return g, nil
}

// advance steps a loop n times around its face.
func advance(m *mesh.Mesh, l mesh.LoopID, n int) mesh.LoopID {
	for range n {
		l = m.Next(l)
	}
	return l
}

// bottomLoop picks the canonical starting loop of a face: the loop whose
// vertex is lexicographically smallest by (z, y, x). For axis-aligned
// brickwork this is the lower-left corner, making the loop that follows
// it run along the bottom edge.
func bottomLoop(m *mesh.Mesh, f mesh.FaceID) mesh.LoopID {
	best := m.FaceLoop(f)
	bv := m.Vertex(m.LoopVertIndex(best))
	l := m.Next(best)
	for range 3 {
		if v := m.Vertex(m.LoopVertIndex(l)); vertLess(v, bv) {
			best, bv = l, v
		}
		l = m.Next(l)
	}
	return best
}

func vertLess(a, b mesh.Vec3) bool {
	if a.Z != b.Z {
		return a.Z < b.Z
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

// CellFace is one face within a cell: its bottom loop and its offset
// inside the cell, in faces.
type CellFace struct {
	Loop mesh.LoopID
	X, Y int
}

// Cell groups the faces that share one texture cell. Ends marks, per
// side, whether the cell sits on the island border (no occupied cell
// beyond it).
type Cell struct {
	Faces []CellFace
	Ends  [4]bool
}

// Island is one connected component of the selection arranged on a cell
// grid. Cells are addressed [y][x] from the bottom-left; holes are nil.
type Island struct {
	faces map[mesh.FaceID]struct{}
	cells [][]*Cell
}

// BuildIsland discovers the island containing seed and groups its faces
// into cells of subdivs.X by subdivs.Y faces. It fails with
// ErrFaceNotSelected when the flood fill escapes the selection.
func BuildIsland(m *mesh.Mesh, seed mesh.FaceID, subdivs Vec2i) (*Island, error) {
	grid, err := buildGrid(m, bottomLoop(m, seed))
	if err != nil {
		return nil, err
	}

	w := 1 + grid.maxX - grid.minX
	h := 1 + grid.maxY - grid.minY
	cw := (w + subdivs.X - 1) / subdivs.X
	ch := (h + subdivs.Y - 1) / subdivs.Y

	cells := make([][]*Cell, ch)
	for y := range cells {
		cells[y] = make([]*Cell, cw)
	}
	for _, it := range grid.items {
		fx := it.x - grid.minX
		fy := it.y - grid.minY
		cell := cells[fy/subdivs.Y][fx/subdivs.X]
		if cell == nil {
			cell = &Cell{}
			cells[fy/subdivs.Y][fx/subdivs.X] = cell
		}
		cell.Faces = append(cell.Faces, CellFace{Loop: it.loop, X: fx % subdivs.X, Y: fy % subdivs.Y})
	}

	for cy := range cells {
		for cx, cell := range cells[cy] {
			if cell == nil {
				continue
			}
			cell.Ends[SideBottom] = cy == 0 || cells[cy-1][cx] == nil
			cell.Ends[SideRight] = cx == cw-1 || cells[cy][cx+1] == nil
			cell.Ends[SideTop] = cy == ch-1 || cells[cy+1][cx] == nil
			cell.Ends[SideLeft] = cx == 0 || cells[cy][cx-1] == nil
		}
	}

	return &Island{faces: grid.faces, cells: cells}, nil
}

// Contains reports whether f belongs to the island.
func (isl *Island) Contains(f mesh.FaceID) bool {
	_, ok := isl.faces[f]
	return ok
}

// FaceCount returns the number of faces in the island.
func (isl *Island) FaceCount() int { return len(isl.faces) }

// Size returns the cell grid dimensions (width, height).
func (isl *Island) Size() Vec2i {
	if len(isl.cells) == 0 {
		return Vec2i{}
	}
	return Vec2i{X: len(isl.cells[0]), Y: len(isl.cells)}
}

// CellAt returns the cell at grid position (x, y), or nil for a hole.
func (isl *Island) CellAt(x, y int) *Cell { return isl.cells[y][x] }
