package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/brickuv/pkg/brick"
	"github.com/matzehuels/brickuv/pkg/mesh"
)

// unwrapStrip builds and unwraps a 2x1 quad strip with fixed parameters.
func unwrapStrip(t *testing.T) (*mesh.Mesh, []*brick.Island, brick.Params) {
	t.Helper()
	m := mesh.New()
	for y := 0; y <= 1; y++ {
		for x := 0; x <= 2; x++ {
			m.AddVertex(mesh.Vec3{X: float64(x), Y: float64(y)})
		}
	}
	m.AddQuad(0, 1, 4, 3)
	m.AddQuad(1, 2, 5, 4)
	m.BuildAdjacency()
	m.SelectAll()

	p := brick.DefaultParams()
	p.Random = false
	islands, err := brick.Unwrap(m, p)
	if err != nil {
		t.Fatalf("Unwrap() error: %v", err)
	}
	return m, islands, p
}

func TestFromIslands(t *testing.T) {
	m, islands, p := unwrapStrip(t)
	l := FromIslands(m, islands, p)

	if len(l.Islands) != 1 {
		t.Fatalf("Islands = %d, want 1", len(l.Islands))
	}
	if got, want := l.Islands[0].Size, [2]int{2, 1}; got != want {
		t.Errorf("Size = %v, want %v", got, want)
	}
	if l.FaceCount() != 2 {
		t.Errorf("FaceCount() = %d, want 2", l.FaceCount())
	}
	if got, want := l.Params.Texture, [2]int{128, 128}; got != want {
		t.Errorf("Params.Texture = %v, want %v", got, want)
	}

	// Serialized UVs match what is on the mesh, in face loop order.
	for _, f := range l.Islands[0].Faces {
		lp := m.FaceLoop(mesh.FaceID(f.Index))
		for i := 0; i < 4; i++ {
			got := m.LoopUV(lp)
			if f.UVs[i].U != got.U || f.UVs[i].V != got.V {
				t.Errorf("face %d corner %d: %+v, want %+v", f.Index, i, f.UVs[i], got)
			}
			lp = m.Next(lp)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	m, islands, p := unwrapStrip(t)
	l := FromIslands(m, islands, p)
	l.RunID = "run-1"
	l.MeshHash = "abc123"

	data, err := Marshal(l)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if back.RunID != l.RunID || back.MeshHash != l.MeshHash {
		t.Errorf("round trip identity: %q/%q, want %q/%q", back.RunID, back.MeshHash, l.RunID, l.MeshHash)
	}
	if back.Params != l.Params {
		t.Errorf("round trip Params = %+v, want %+v", back.Params, l.Params)
	}
	if len(back.Islands) != 1 || len(back.Islands[0].Faces) != 2 {
		t.Fatalf("round trip shape: %+v", back.Islands)
	}
	for i, f := range back.Islands[0].Faces {
		if f != l.Islands[0].Faces[i] {
			t.Errorf("face %d: %+v, want %+v", i, f, l.Islands[0].Faces[i])
		}
	}
}

func TestWriteReadFile(t *testing.T) {
	m, islands, p := unwrapStrip(t)
	l := FromIslands(m, islands, p)

	path := t.TempDir() + "/strip.layout.json"
	if err := WriteFile(l, path); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if back.FaceCount() != l.FaceCount() {
		t.Errorf("FaceCount() = %d, want %d", back.FaceCount(), l.FaceCount())
	}
}

func TestApplyTo(t *testing.T) {
	m, islands, p := unwrapStrip(t)
	l := FromIslands(m, islands, p)

	// A fresh copy of the same mesh gets identical UVs from the layout.
	fresh := mesh.New()
	for y := 0; y <= 1; y++ {
		for x := 0; x <= 2; x++ {
			fresh.AddVertex(mesh.Vec3{X: float64(x), Y: float64(y)})
		}
	}
	fresh.AddQuad(0, 1, 4, 3)
	fresh.AddQuad(1, 2, 5, 4)
	fresh.BuildAdjacency()

	if err := l.ApplyTo(fresh); err != nil {
		t.Fatalf("ApplyTo() error: %v", err)
	}
	for f := mesh.FaceID(0); f < 2; f++ {
		la, lb := m.FaceLoop(f), fresh.FaceLoop(f)
		for i := 0; i < 4; i++ {
			a, b := m.LoopUV(la), fresh.LoopUV(lb)
			if math.Abs(a.U-b.U) > 0 || math.Abs(a.V-b.V) > 0 {
				t.Errorf("face %d corner %d: %+v vs %+v", f, i, a, b)
			}
			la, lb = m.Next(la), fresh.Next(lb)
		}
	}

	// Out-of-range faces are rejected.
	small := mesh.New()
	small.AddVertex(mesh.Vec3{})
	small.AddVertex(mesh.Vec3{X: 1})
	small.AddVertex(mesh.Vec3{X: 1, Y: 1})
	small.AddVertex(mesh.Vec3{Y: 1})
	small.AddQuad(0, 1, 2, 3)
	if err := l.ApplyTo(small); err == nil {
		t.Error("ApplyTo(smaller mesh) = nil, want range error")
	}
}
