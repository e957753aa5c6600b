package mesh

import (
	"errors"
	"math"
)

// ErrUnknownFace is returned by [Mesh.SelectFaces] when a face index does
// not exist in the mesh.
var ErrUnknownFace = errors.New("unknown face index")

// DefaultCoplanarEpsilon is the tolerance used by [Mesh.SelectCoplanar] for
// comparing face planes (both normal direction and plane offset).
const DefaultCoplanarEpsilon = 1e-4

// SelectAll marks every face as selected.
func (m *Mesh) SelectAll() {
	for i := range m.faces {
		m.faces[i].selected = true
	}
}

// SelectNone clears all selection flags.
func (m *Mesh) SelectNone() {
	for i := range m.faces {
		m.faces[i].selected = false
	}
}

// SelectFaces marks the given face indices as selected, leaving all other
// flags untouched. Returns ErrUnknownFace on the first out-of-range index.
func (m *Mesh) SelectFaces(indices []int) error {
	for _, i := range indices {
		if i < 0 || i >= len(m.faces) {
			return ErrUnknownFace
		}
		m.faces[i].selected = true
	}
	return nil
}

// SelectedFaces returns the IDs of all selected faces in ascending order.
func (m *Mesh) SelectedFaces() []FaceID {
	var out []FaceID
	for i := range m.faces {
		if m.faces[i].selected {
			out = append(out, FaceID(i))
		}
	}
	return out
}

// SelectCoplanar expands the current selection to every face lying on the
// same plane as some already-selected face, within eps. This is the
// "select similar coplanar" bulk operation of mesh editors: clicking one
// face of a wall selects the whole wall, including disconnected patches.
//
// Two faces are coplanar when their unit normals agree (up to sign is NOT
// accepted - flipped faces tile differently) and their plane offsets along
// that normal agree, both within eps. Pass eps <= 0 to use
// [DefaultCoplanarEpsilon].
func (m *Mesh) SelectCoplanar(eps float64) {
	if eps <= 0 {
		eps = DefaultCoplanarEpsilon
	}

	type plane struct {
		n Vec3    // unit normal
		d float64 // offset: n · p for points p on the plane
	}

	var planes []plane
	for i := range m.faces {
		if !m.faces[i].selected {
			continue
		}
		if p, ok := m.facePlane(FaceID(i)); ok {
			planes = append(planes, plane{p.n, p.d})
		}
	}

	for i := range m.faces {
		if m.faces[i].selected {
			continue
		}
		p, ok := m.facePlane(FaceID(i))
		if !ok {
			continue
		}
		for _, q := range planes {
			dn := p.n.Sub(q.n)
			if dn.Dot(dn) <= eps*eps && math.Abs(p.d-q.d) <= eps {
				m.faces[i].selected = true
				break
			}
		}
	}
}

type facePlaneResult struct {
	n Vec3
	d float64
}

// facePlane returns the unit-normal plane of the face, or false for a face
// with a zero-area corner (no meaningful normal).
func (m *Mesh) facePlane(f FaceID) (facePlaneResult, bool) {
	n := m.FaceNormal(f)
	len2 := n.Dot(n)
	if len2 == 0 {
		return facePlaneResult{}, false
	}
	inv := 1 / math.Sqrt(len2)
	n = Vec3{n.X * inv, n.Y * inv, n.Z * inv}
	p := m.LoopVert(m.faces[f].loop)
	return facePlaneResult{n: n, d: n.Dot(p)}, true
}
