package mesh

import (
	"errors"
	"testing"
)

// quadStrip builds a 1-row strip of n quads in the XY plane at z=0, with
// adjacency built. Vertices are laid out on a unit grid.
func quadStrip(t *testing.T, n int) *Mesh {
	t.Helper()
	m := New()
	for y := 0; y <= 1; y++ {
		for x := 0; x <= n; x++ {
			m.AddVertex(Vec3{X: float64(x), Y: float64(y)})
		}
	}
	for x := 0; x < n; x++ {
		if _, err := m.AddQuad(x, x+1, n+1+x+1, n+1+x); err != nil {
			t.Fatalf("AddQuad(%d) error: %v", x, err)
		}
	}
	m.BuildAdjacency()
	return m
}

func TestAddQuad_VertexOutOfRange(t *testing.T) {
	m := New()
	m.AddVertex(Vec3{})
	m.AddVertex(Vec3{X: 1})
	m.AddVertex(Vec3{Y: 1})

	if _, err := m.AddQuad(0, 1, 2, 3); !errors.Is(err, ErrVertexOutOfRange) {
		t.Errorf("AddQuad() error = %v, want ErrVertexOutOfRange", err)
	}
	if _, err := m.AddQuad(0, 1, 2, -1); !errors.Is(err, ErrVertexOutOfRange) {
		t.Errorf("AddQuad() error = %v, want ErrVertexOutOfRange", err)
	}
}

func TestAddQuad_Degenerate(t *testing.T) {
	m := New()
	for i := 0; i < 4; i++ {
		m.AddVertex(Vec3{X: float64(i)})
	}
	if _, err := m.AddQuad(0, 1, 1, 2); !errors.Is(err, ErrDegenerateQuad) {
		t.Errorf("AddQuad() error = %v, want ErrDegenerateQuad", err)
	}
}

func TestNextPrev_Cycle(t *testing.T) {
	m := quadStrip(t, 1)
	l := m.FaceLoop(0)
	if got := m.Next(m.Next(m.Next(m.Next(l)))); got != l {
		t.Errorf("Next^4 = %d, want %d", got, l)
	}
	if got := m.Prev(m.Next(l)); got != l {
		t.Errorf("Prev(Next(l)) = %d, want %d", got, l)
	}
}

func TestBuildAdjacency_Strip(t *testing.T) {
	m := quadStrip(t, 2)

	// Right edge of face 0 is loop 1 (corner 1 -> corner 2); it must twin
	// with the left edge of face 1, and the twin relation is symmetric.
	right := m.Next(m.FaceLoop(0))
	twin, ok := m.Radial(right)
	if !ok {
		t.Fatal("Radial(right edge) not found, want twin in face 1")
	}
	if got := m.LoopFace(twin); got != 1 {
		t.Errorf("LoopFace(twin) = %d, want 1", got)
	}
	back, ok := m.Radial(twin)
	if !ok || back != right {
		t.Errorf("Radial(twin) = %d, %v; want %d, true", back, ok, right)
	}

	// The bottom edge of face 0 is on the mesh border.
	if _, ok := m.Radial(m.FaceLoop(0)); ok {
		t.Error("Radial(border edge) = ok, want no twin")
	}
}

func TestBuildAdjacency_NonManifold(t *testing.T) {
	// Three quads fanning around one shared edge (verts 0-1).
	m := New()
	m.AddVertex(Vec3{})                 // 0
	m.AddVertex(Vec3{X: 1})             // 1
	m.AddVertex(Vec3{X: 1, Y: 1})       // 2
	m.AddVertex(Vec3{Y: 1})             // 3
	m.AddVertex(Vec3{X: 1, Z: 1})       // 4
	m.AddVertex(Vec3{Z: 1})             // 5
	m.AddVertex(Vec3{X: 1, Y: -1})      // 6
	m.AddVertex(Vec3{Y: -1})            // 7
	mustQuad(t, m, 0, 1, 2, 3)
	mustQuad(t, m, 1, 0, 5, 4)
	mustQuad(t, m, 0, 1, 6, 7)
	m.BuildAdjacency()

	paired := 0
	for f := FaceID(0); f < 3; f++ {
		l := m.FaceLoop(f)
		for i := 0; i < 4; i++ {
			if _, ok := m.Radial(l); ok {
				paired++
			}
			l = m.Next(l)
		}
	}
	// Only the first two loops on the shared edge pair up.
	if paired != 2 {
		t.Errorf("paired loops = %d, want 2", paired)
	}
}

func mustQuad(t *testing.T, m *Mesh, a, b, c, d int) FaceID {
	t.Helper()
	f, err := m.AddQuad(a, b, c, d)
	if err != nil {
		t.Fatalf("AddQuad(%d,%d,%d,%d) error: %v", a, b, c, d, err)
	}
	return f
}

func TestFaceVerts_Order(t *testing.T) {
	m := quadStrip(t, 1)
	got := m.FaceVerts(0)
	want := [4]int{0, 1, 3, 2}
	if got != want {
		t.Errorf("FaceVerts(0) = %v, want %v", got, want)
	}
}

func TestFaceNormal_PlanarQuad(t *testing.T) {
	m := quadStrip(t, 1)
	n := m.FaceNormal(0)
	if n.X != 0 || n.Y != 0 || n.Z <= 0 {
		t.Errorf("FaceNormal(0) = %+v, want +Z", n)
	}
}

func TestSelectFaces(t *testing.T) {
	m := quadStrip(t, 3)
	if err := m.SelectFaces([]int{0, 2}); err != nil {
		t.Fatalf("SelectFaces() error: %v", err)
	}
	got := m.SelectedFaces()
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("SelectedFaces() = %v, want [0 2]", got)
	}
	if err := m.SelectFaces([]int{99}); !errors.Is(err, ErrUnknownFace) {
		t.Errorf("SelectFaces(99) error = %v, want ErrUnknownFace", err)
	}
}

func TestSelectCoplanar(t *testing.T) {
	// Two coplanar quads plus one standing upright; expanding from face 0
	// must pick up face 1 but not the upright face.
	m := New()
	m.AddVertex(Vec3{})                 // 0
	m.AddVertex(Vec3{X: 1})             // 1
	m.AddVertex(Vec3{X: 2})             // 2
	m.AddVertex(Vec3{Y: 1})             // 3
	m.AddVertex(Vec3{X: 1, Y: 1})       // 4
	m.AddVertex(Vec3{X: 2, Y: 1})       // 5
	m.AddVertex(Vec3{X: 2, Z: 1})       // 6
	m.AddVertex(Vec3{X: 2, Y: 1, Z: 1}) // 7
	mustQuad(t, m, 0, 1, 4, 3)
	mustQuad(t, m, 1, 2, 5, 4)
	mustQuad(t, m, 2, 6, 7, 5)
	m.BuildAdjacency()

	m.SetSelected(0, true)
	m.SelectCoplanar(DefaultCoplanarEpsilon)

	got := m.SelectedFaces()
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("SelectedFaces() = %v, want [0 1]", got)
	}
}
