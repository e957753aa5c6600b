package mesh

import "errors"

var (
	// ErrVertexOutOfRange is returned by [Mesh.AddQuad] when a corner index
	// does not refer to a vertex previously added with [Mesh.AddVertex].
	ErrVertexOutOfRange = errors.New("vertex index out of range")

	// ErrDegenerateQuad is returned by [Mesh.AddQuad] when two corners of a
	// quad reference the same vertex. Degenerate faces would produce
	// zero-length edges and break radial adjacency.
	ErrDegenerateQuad = errors.New("degenerate quad: repeated vertex")
)

// Vec3 is a 3D point or direction.
type Vec3 struct {
	X, Y, Z float64
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product of v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// UV is a 2D texture coordinate.
type UV struct {
	U, V float64
}

// FaceID identifies a face within a mesh.
type FaceID int32

// LoopID identifies a loop (face corner) within a mesh.
type LoopID int32

// InvalidLoop is the LoopID used for absent radial twins (boundary edges).
const InvalidLoop LoopID = -1

// loopsPerFace is fixed: only quads are supported.
const loopsPerFace = 4

type face struct {
	loop     LoopID // first loop (corner 0)
	selected bool
}

type loop struct {
	vert   int32
	face   FaceID
	next   LoopID
	prev   LoopID
	radial LoopID // InvalidLoop on boundary edges
}

// Mesh is an arena of vertices, quad faces, and loops.
// The zero value is not usable - use [New].
type Mesh struct {
	verts []Vec3
	faces []face
	loops []loop
	uvs   []UV
}

// New creates an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(p Vec3) int {
	m.verts = append(m.verts, p)
	return len(m.verts) - 1
}

// AddQuad appends a quad face with the given corner vertices in CCW order
// and returns its FaceID. Four loops are created, one per corner, with
// next/prev links closed into a cycle. Radial twins are not set until
// [Mesh.BuildAdjacency] is called.
//
// Returns ErrVertexOutOfRange for an unknown vertex index and
// ErrDegenerateQuad when corners repeat.
func (m *Mesh) AddQuad(a, b, c, d int) (FaceID, error) {
	corners := [loopsPerFace]int{a, b, c, d}
	for i, v := range corners {
		if v < 0 || v >= len(m.verts) {
			return 0, ErrVertexOutOfRange
		}
		for j := 0; j < i; j++ {
			if corners[j] == v {
				return 0, ErrDegenerateQuad
			}
		}
	}

	f := FaceID(len(m.faces))
	base := LoopID(len(m.loops))
	m.faces = append(m.faces, face{loop: base})

	for i := 0; i < loopsPerFace; i++ {
		m.loops = append(m.loops, loop{
			vert:   int32(corners[i]),
			face:   f,
			next:   base + LoopID((i+1)%loopsPerFace),
			prev:   base + LoopID((i+loopsPerFace-1)%loopsPerFace),
			radial: InvalidLoop,
		})
		m.uvs = append(m.uvs, UV{})
	}
	return f, nil
}

// BuildAdjacency links radial twins for all loops sharing an edge.
// It must be called after the last AddQuad and before traversal.
//
// Edges are keyed by their unordered vertex pair. On a 2-manifold mesh each
// interior edge is shared by exactly two loops, which become twins of each
// other. On non-manifold edges (three or more faces) only the first two
// loops are paired; the rest keep no twin and behave like boundary loops.
func (m *Mesh) BuildAdjacency() {
	type edge struct{ lo, hi int32 }

	byEdge := make(map[edge]LoopID, len(m.loops))
	for i := range m.loops {
		l := LoopID(i)
		a := m.loops[i].vert
		b := m.loops[m.loops[i].next].vert
		if a > b {
			a, b = b, a
		}
		key := edge{a, b}

		twin, seen := byEdge[key]
		if !seen {
			byEdge[key] = l
			continue
		}
		if twin != InvalidLoop && m.loops[twin].radial == InvalidLoop {
			m.loops[l].radial = twin
			m.loops[twin].radial = l
			byEdge[key] = InvalidLoop // edge saturated
		}
	}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.verts) }

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int { return len(m.faces) }

// Vertex returns the position of the vertex with the given index.
func (m *Mesh) Vertex(i int) Vec3 { return m.verts[i] }

// FaceLoop returns the first loop (corner 0) of the face.
func (m *Mesh) FaceLoop(f FaceID) LoopID { return m.faces[f].loop }

// FaceVerts returns the four corner vertex indices of the face in CCW order.
func (m *Mesh) FaceVerts(f FaceID) [4]int {
	var out [4]int
	l := m.faces[f].loop
	for i := 0; i < loopsPerFace; i++ {
		out[i] = int(m.loops[l].vert)
		l = m.loops[l].next
	}
	return out
}

// Next returns the next loop in the face cycle (CCW).
func (m *Mesh) Next(l LoopID) LoopID { return m.loops[l].next }

// Prev returns the previous loop in the face cycle.
func (m *Mesh) Prev(l LoopID) LoopID { return m.loops[l].prev }

// Radial returns the radial twin of l (the loop on the opposite side of the
// shared edge, belonging to the adjacent face) and true, or InvalidLoop and
// false for a boundary edge.
func (m *Mesh) Radial(l LoopID) (LoopID, bool) {
	t := m.loops[l].radial
	return t, t != InvalidLoop
}

// LoopVert returns the position of the loop's corner vertex.
func (m *Mesh) LoopVert(l LoopID) Vec3 { return m.verts[m.loops[l].vert] }

// LoopVertIndex returns the vertex index of the loop's corner.
func (m *Mesh) LoopVertIndex(l LoopID) int { return int(m.loops[l].vert) }

// LoopFace returns the face owning the loop.
func (m *Mesh) LoopFace(l LoopID) FaceID { return m.loops[l].face }

// Selected reports whether the face is selected.
func (m *Mesh) Selected(f FaceID) bool { return m.faces[f].selected }

// SetSelected sets the face's selection flag.
func (m *Mesh) SetSelected(f FaceID, sel bool) { m.faces[f].selected = sel }

// SetUV writes the loop's texture coordinate.
func (m *Mesh) SetUV(l LoopID, uv UV) { m.uvs[l] = uv }

// LoopUV returns the loop's texture coordinate.
func (m *Mesh) LoopUV(l LoopID) UV { return m.uvs[l] }

// FaceNormal returns the (unnormalized) normal of the face, computed from
// its first three corners. Callers needing a unit normal should normalize.
func (m *Mesh) FaceNormal(f FaceID) Vec3 {
	l0 := m.faces[f].loop
	l1 := m.loops[l0].next
	l2 := m.loops[l1].next
	a := m.verts[m.loops[l0].vert]
	b := m.verts[m.loops[l1].vert]
	c := m.verts[m.loops[l2].vert]
	return b.Sub(a).Cross(c.Sub(a))
}
