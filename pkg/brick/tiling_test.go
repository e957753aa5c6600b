package brick

import (
	"math"
	"testing"

	"github.com/matzehuels/brickuv/pkg/mesh"
)

// fixedParams returns defaults with randomization off so spans start at
// the atlas origin.
func fixedParams() Params {
	p := DefaultParams()
	p.Random = false
	return p
}

// faceUVs collects the UVs of a face keyed by corner vertex index, so
// assertions are independent of which loop the island placed first.
func faceUVs(m *mesh.Mesh, f mesh.FaceID) map[int]mesh.UV {
	out := make(map[int]mesh.UV, 4)
	l := m.FaceLoop(f)
	for i := 0; i < 4; i++ {
		out[m.LoopVertIndex(l)] = m.LoopUV(l)
		l = m.Next(l)
	}
	return out
}

func uvNear(a, b mesh.UV) bool {
	const eps = 1e-12
	return math.Abs(a.U-b.U) < eps && math.Abs(a.V-b.V) < eps
}

func TestTextureSpan_DoubleHalves(t *testing.T) {
	p := fixedParams()
	tests := []struct {
		name           string
		x, y           int
		isStart, isEnd bool
		wantX, wantW   int
	}{
		{"interior even", 2, 0, false, false, 2, 1},
		{"interior odd", 3, 0, false, false, 3, 1},
		{"start on even phase", 0, 0, true, false, 0, 1},
		{"start on odd phase widens", 1, 0, true, false, 0, 2},
		{"end on even phase widens", 2, 0, false, true, 2, 2},
		{"end on odd phase", 3, 0, false, true, 3, 1},
		{"isolated cell widens", 0, 0, true, true, 0, 2},
		{"isolated on odd phase shifts", 1, 0, true, true, 0, 2},
		{"row parity flips phase", 0, 1, true, false, -1, 2},
	}
	for _, tt := range tests {
		gotX, gotY, gotW := p.textureSpan(tt.x, tt.y, tt.isStart, tt.isEnd)
		if gotX != tt.wantX || gotY != tt.y || gotW != tt.wantW {
			t.Errorf("%s: textureSpan(%d,%d,%v,%v) = (%d,%d,%d), want (%d,%d,%d)",
				tt.name, tt.x, tt.y, tt.isStart, tt.isEnd, gotX, gotY, gotW, tt.wantX, tt.y, tt.wantW)
		}
	}
}

func TestTextureSpan_DoubleHalvesOff(t *testing.T) {
	p := fixedParams()
	p.DoubleHalves = false
	for x := 0; x < 4; x++ {
		if _, _, w := p.textureSpan(x, 0, true, true); w != 1 {
			t.Errorf("textureSpan(%d) width = %d, want 1", x, w)
		}
	}
}

func TestTextureSpan_Offset(t *testing.T) {
	p := fixedParams()
	p.Offset = true
	// Offset flips the phase and shifts every span one cell right.
	gotX, _, gotW := p.textureSpan(0, 0, true, false)
	if gotX != 0 || gotW != 2 {
		t.Errorf("textureSpan(0,0,start) = (%d, w=%d), want (0, w=2)", gotX, gotW)
	}
	gotX, _, gotW = p.textureSpan(2, 0, false, false)
	if gotX != 3 || gotW != 1 {
		t.Errorf("textureSpan(2,0) = (%d, w=%d), want (3, w=1)", gotX, gotW)
	}
}

func TestUnwrap_TwoFaceStrip(t *testing.T) {
	// Two cells side by side form exactly one brick: neither border cell is
	// widened because the brick seam falls on the even phase. With a
	// 128x128 texture and 8x8 cells the corner UVs are exact.
	m := planeGrid(t, 2, 1)
	p := fixedParams()

	islands, err := Unwrap(m, p)
	if err != nil {
		t.Fatalf("Unwrap() error: %v", err)
	}
	if len(islands) != 1 {
		t.Fatalf("Unwrap() = %d islands, want 1", len(islands))
	}

	vLow := 1 - 0.5/128  // face corner y=0
	vHigh := 1 - 8.5/128 // face corner y=1

	f0 := faceUVs(m, 0)
	want0 := map[int]mesh.UV{
		0: {U: 0.5 / 128, V: vLow},
		1: {U: 8.5 / 128, V: vLow},
		4: {U: 8.5 / 128, V: vHigh},
		3: {U: 0.5 / 128, V: vHigh},
	}
	for vert, want := range want0 {
		if got := f0[vert]; !uvNear(got, want) {
			t.Errorf("face 0 vert %d UV = %+v, want %+v", vert, got, want)
		}
	}

	f1 := faceUVs(m, 1)
	want1 := map[int]mesh.UV{
		1: {U: 8.5 / 128, V: vLow},
		2: {U: 16.5 / 128, V: vLow},
		5: {U: 16.5 / 128, V: vHigh},
		4: {U: 8.5 / 128, V: vHigh},
	}
	for vert, want := range want1 {
		if got := f1[vert]; !uvNear(got, want) {
			t.Errorf("face 1 vert %d UV = %+v, want %+v", vert, got, want)
		}
	}
}

func TestUnwrap_IsolatedFaceWidens(t *testing.T) {
	// A single cell is both start and end of its run, so double-halves
	// stretches it over a whole brick (two cells wide).
	m := planeGrid(t, 1, 1)
	p := fixedParams()

	if _, err := Unwrap(m, p); err != nil {
		t.Fatalf("Unwrap() error: %v", err)
	}
	f := faceUVs(m, 0)
	if got, want := f[1].U, 16.5/128.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("right corner U = %v, want %v", got, want)
	}
	if got, want := f[0].U, 0.5/128.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("left corner U = %v, want %v", got, want)
	}
}

func TestUnwrap_Rotate(t *testing.T) {
	// Rotation transposes the layout: a single face maps U to the mesh Y
	// axis and V to the mesh X axis.
	m := planeGrid(t, 1, 1)
	p := fixedParams()
	p.DoubleHalves = false
	p.Rotate = true

	if _, err := Unwrap(m, p); err != nil {
		t.Fatalf("Unwrap() error: %v", err)
	}
	f := faceUVs(m, 0)
	// Vert 1 is (1,0): one step along mesh X, which rotation maps to V.
	if want := (mesh.UV{U: 0.5 / 128, V: 1 - 8.5/128}); !uvNear(f[1], want) {
		t.Errorf("vert 1 UV = %+v, want %+v", f[1], want)
	}
	// Vert 2 is (0,1): one step along mesh Y, mapped to U.
	if want := (mesh.UV{U: 8.5 / 128, V: 1 - 0.5/128}); !uvNear(f[2], want) {
		t.Errorf("vert 2 UV = %+v, want %+v", f[2], want)
	}
}

func TestUnwrap_WindingInvariant(t *testing.T) {
	// Same geometry, different authoring winding start: UVs per vertex
	// must match, since the canonical bottom loop anchors the layout.
	build := func(rotated bool) *mesh.Mesh {
		m := mesh.New()
		for y := 0; y <= 2; y++ {
			for x := 0; x <= 1; x++ {
				m.AddVertex(mesh.Vec3{X: float64(x), Y: float64(y)})
			}
		}
		if rotated {
			m.AddQuad(3, 2, 0, 1)
			m.AddQuad(4, 2, 3, 5)
		} else {
			m.AddQuad(0, 1, 3, 2)
			m.AddQuad(2, 3, 5, 4)
		}
		m.BuildAdjacency()
		m.SelectAll()
		return m
	}

	p := fixedParams()
	a := build(false)
	b := build(true)
	if _, err := Unwrap(a, p); err != nil {
		t.Fatalf("Unwrap(a) error: %v", err)
	}
	if _, err := Unwrap(b, p); err != nil {
		t.Fatalf("Unwrap(b) error: %v", err)
	}

	for f := mesh.FaceID(0); f < 2; f++ {
		ua, ub := faceUVs(a, f), faceUVs(b, f)
		for vert, uv := range ua {
			if !uvNear(uv, ub[vert]) {
				t.Errorf("face %d vert %d: UV %+v vs %+v", f, vert, uv, ub[vert])
			}
		}
	}
}

func TestApply_SeedDeterminism(t *testing.T) {
	p := DefaultParams() // Random stays on
	run := func() map[int]mesh.UV {
		m := planeGrid(t, 3, 2)
		if _, err := Unwrap(m, p); err != nil {
			t.Fatalf("Unwrap() error: %v", err)
		}
		return faceUVs(m, 4)
	}
	a, b := run(), run()
	for vert, uv := range a {
		if !uvNear(uv, b[vert]) {
			t.Errorf("vert %d: UV %+v vs %+v across runs", vert, uv, b[vert])
		}
	}
}
