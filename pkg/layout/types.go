package layout

import (
	"fmt"

	"github.com/matzehuels/brickuv/pkg/brick"
	"github.com/matzehuels/brickuv/pkg/mesh"
)

// Output format slugs.
const (
	FormatOBJ      = "obj"
	FormatJSON     = "json"
	FormatAtlasSVG = "atlas-svg"
	FormatAtlasPNG = "atlas-png"
	FormatDOT      = "dot"
	FormatDOTSVG   = "dot-svg"
	FormatDOTPNG   = "dot-png"
)

// Layout is the canonical serialization format for unwrap results.
// Used for API responses, storage, caching, and cross-tool compatibility.
//
// The format is human-readable and designed for round-trip fidelity:
// unwrap → export → re-import produces identical UV assignments.
type Layout struct {
	// RunID uniquely identifies the pipeline invocation that produced
	// this layout. Empty for layouts loaded back from disk or cache.
	RunID string `json:"run_id,omitempty" bson:"run_id,omitempty"`

	// MeshHash is the content hash of the input mesh.
	MeshHash string `json:"mesh_hash,omitempty" bson:"mesh_hash,omitempty"`

	Params  Params   `json:"params" bson:"params"`
	Islands []Island `json:"islands" bson:"islands"`
}

// Params echoes the unwrap parameters the layout was generated with.
type Params struct {
	Texture      [2]int `json:"texture" bson:"texture"`
	Cell         [2]int `json:"cell" bson:"cell"`
	Rotate       bool   `json:"rotate,omitempty" bson:"rotate,omitempty"`
	Offset       bool   `json:"offset,omitempty" bson:"offset,omitempty"`
	DoubleHalves bool   `json:"double_halves,omitempty" bson:"double_halves,omitempty"`
	Coplanar     bool   `json:"coplanar,omitempty" bson:"coplanar,omitempty"`
	Random       bool   `json:"random,omitempty" bson:"random,omitempty"`
	Subdiv       bool   `json:"subdiv,omitempty" bson:"subdiv,omitempty"`
	Seed         uint64 `json:"seed,omitempty" bson:"seed,omitempty"`
}

// Island is one connected selection component with its cell grid size and
// member faces.
type Island struct {
	// Size is the cell grid dimensions (width, height).
	Size [2]int `json:"size" bson:"size"`

	Faces []Face `json:"faces" bson:"faces"`
}

// Face is one quad with its cell position and assigned corner UVs.
type Face struct {
	// Index is the face's position in the mesh face arena.
	Index int `json:"index" bson:"index"`

	// Cell is the face's cell coordinate within the island grid.
	Cell [2]int `json:"cell" bson:"cell"`

	// UVs holds the four corner texture coordinates in face loop order.
	UVs [4]UV `json:"uvs" bson:"uvs"`
}

// UV is a serialized texture coordinate.
type UV struct {
	U float64 `json:"u" bson:"u"`
	V float64 `json:"v" bson:"v"`
}

// FromIslands converts an unwrap result into the wire format. UVs are read
// from the mesh in face loop order, so re-applying the layout does not
// depend on island traversal internals.
func FromIslands(m *mesh.Mesh, islands []*brick.Island, p brick.Params) Layout {
	out := Layout{
		Params: Params{
			Texture:      [2]int{p.TextureSize.X, p.TextureSize.Y},
			Cell:         [2]int{p.CellSize.X, p.CellSize.Y},
			Rotate:       p.Rotate,
			Offset:       p.Offset,
			DoubleHalves: p.DoubleHalves,
			Coplanar:     p.Coplanar,
			Random:       p.Random,
			Subdiv:       p.Subdiv,
			Seed:         p.Seed,
		},
		Islands: make([]Island, 0, len(islands)),
	}

	for _, isl := range islands {
		size := isl.Size()
		li := Island{Size: [2]int{size.X, size.Y}, Faces: make([]Face, 0, isl.FaceCount())}
		for cy := 0; cy < size.Y; cy++ {
			for cx := 0; cx < size.X; cx++ {
				cell := isl.CellAt(cx, cy)
				if cell == nil {
					continue
				}
				for _, cf := range cell.Faces {
					f := m.LoopFace(cf.Loop)
					lf := Face{Index: int(f), Cell: [2]int{cx, cy}}
					l := m.FaceLoop(f)
					for i := 0; i < 4; i++ {
						uv := m.LoopUV(l)
						lf.UVs[i] = UV{U: uv.U, V: uv.V}
						l = m.Next(l)
					}
					li.Faces = append(li.Faces, lf)
				}
			}
		}
		out.Islands = append(out.Islands, li)
	}
	return out
}

// FaceCount returns the total number of faces across all islands.
func (l Layout) FaceCount() int {
	n := 0
	for _, isl := range l.Islands {
		n += len(isl.Faces)
	}
	return n
}

// ApplyTo writes the layout's UVs back onto a mesh. The mesh must have the
// same face arena the layout was generated from.
func (l Layout) ApplyTo(m *mesh.Mesh) error {
	for _, isl := range l.Islands {
		for _, f := range isl.Faces {
			if f.Index < 0 || f.Index >= m.FaceCount() {
				return &FaceRangeError{Index: f.Index, Faces: m.FaceCount()}
			}
			lp := m.FaceLoop(mesh.FaceID(f.Index))
			for i := 0; i < 4; i++ {
				m.SetUV(lp, mesh.UV{U: f.UVs[i].U, V: f.UVs[i].V})
				lp = m.Next(lp)
			}
		}
	}
	return nil
}

// FaceRangeError reports a layout face that does not exist in the target
// mesh.
type FaceRangeError struct {
	Index int
	Faces int
}

func (e *FaceRangeError) Error() string {
	return fmt.Sprintf("layout face %d out of range for mesh with %d faces", e.Index, e.Faces)
}
