package mesh

import (
	"errors"
	"strings"
	"testing"
)

const cubeTopOBJ = `# two quads
v 0 0 0
v 1 0 0
v 2 0 0
v 0 1 0
v 1 1 0
v 2 1 0
f 1 2 5 4
f 2/1 3/2 6/3 5/4
`

func TestReadOBJ_Quads(t *testing.T) {
	m, err := ReadOBJ(strings.NewReader(cubeTopOBJ))
	if err != nil {
		t.Fatalf("ReadOBJ() error: %v", err)
	}
	if m.VertexCount() != 6 {
		t.Errorf("VertexCount() = %d, want 6", m.VertexCount())
	}
	if m.FaceCount() != 2 {
		t.Errorf("FaceCount() = %d, want 2", m.FaceCount())
	}
	if got, want := m.FaceVerts(1), [4]int{1, 2, 5, 4}; got != want {
		t.Errorf("FaceVerts(1) = %v, want %v", got, want)
	}

	// Adjacency is built: the shared edge 2-5 links the two faces.
	l := m.Next(m.FaceLoop(0))
	twin, ok := m.Radial(l)
	if !ok || m.LoopFace(twin) != 1 {
		t.Errorf("Radial(shared edge) = %v, %v; want loop in face 1", twin, ok)
	}
}

func TestReadOBJ_NegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f -4 -3 -2 -1
`
	m, err := ReadOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadOBJ() error: %v", err)
	}
	if got, want := m.FaceVerts(0), [4]int{0, 1, 2, 3}; got != want {
		t.Errorf("FaceVerts(0) = %v, want %v", got, want)
	}
}

func TestReadOBJ_RejectsTriangles(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	if _, err := ReadOBJ(strings.NewReader(src)); !errors.Is(err, ErrNonQuadFace) {
		t.Errorf("ReadOBJ() error = %v, want ErrNonQuadFace", err)
	}
}

func TestReadOBJ_RejectsBadIndex(t *testing.T) {
	src := `v 0 0 0
f 1 2 3 4
`
	if _, err := ReadOBJ(strings.NewReader(src)); !errors.Is(err, ErrVertexOutOfRange) {
		t.Errorf("ReadOBJ() error = %v, want ErrVertexOutOfRange", err)
	}
}

func TestWriteOBJ_RoundTrip(t *testing.T) {
	m, err := ReadOBJ(strings.NewReader(cubeTopOBJ))
	if err != nil {
		t.Fatalf("ReadOBJ() error: %v", err)
	}
	l := m.FaceLoop(0)
	m.SetUV(l, UV{U: 0.25, V: 0.75})

	var sb strings.Builder
	if err := m.WriteOBJ(&sb); err != nil {
		t.Fatalf("WriteOBJ() error: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "vt 0.25 0.75") {
		t.Errorf("WriteOBJ() output missing written UV:\n%s", out)
	}

	back, err := ReadOBJ(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ReadOBJ(round trip) error: %v", err)
	}
	if back.FaceCount() != m.FaceCount() || back.VertexCount() != m.VertexCount() {
		t.Errorf("round trip: %d faces / %d verts, want %d / %d",
			back.FaceCount(), back.VertexCount(), m.FaceCount(), m.VertexCount())
	}
	if got, want := back.FaceVerts(1), m.FaceVerts(1); got != want {
		t.Errorf("round trip FaceVerts(1) = %v, want %v", got, want)
	}
}
