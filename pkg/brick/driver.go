package brick

import (
	"fmt"
	"math/rand/v2"

	"github.com/matzehuels/brickuv/pkg/mesh"
)

// FindIslands partitions the selected faces of m into islands. Faces
// are visited in ascending order so the result is deterministic for a
// given mesh and selection.
func FindIslands(m *mesh.Mesh, p Params) ([]*Island, error) {
	subdivs := p.Subdivs()
	var islands []*Island
	for _, f := range m.SelectedFaces() {
		if claimed(islands, f) {
			continue
		}
		isl, err := BuildIsland(m, f, subdivs)
		if err != nil {
			return nil, fmt.Errorf("island at face %d: %w", f, err)
		}
		islands = append(islands, isl)
	}
	return islands, nil
}

func claimed(islands []*Island, f mesh.FaceID) bool {
	for _, isl := range islands {
		if isl.Contains(f) {
			return true
		}
	}
	return false
}

// Apply tiles every island onto the texture atlas. The random origin
// stream is seeded from p.Seed, so repeated runs with the same seed
// produce identical UVs.
func Apply(m *mesh.Mesh, islands []*Island, p Params) {
	rng := rand.New(rand.NewPCG(p.Seed, p.Seed^0xdeadbeef))
	for _, isl := range islands {
		isl.Apply(m, p, rng)
	}
}

// Unwrap runs the full pipeline on m's current selection: optionally
// expand it to coplanar neighbours, discover islands, and assign UVs.
// The discovered islands are returned for inspection.
func Unwrap(m *mesh.Mesh, p Params) ([]*Island, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Coplanar {
		m.SelectCoplanar(mesh.DefaultCoplanarEpsilon)
	}
	islands, err := FindIslands(m, p)
	if err != nil {
		return nil, err
	}
	Apply(m, islands, p)
	return islands, nil
}
