package brick_test

import (
	"fmt"

	"github.com/matzehuels/brickuv/pkg/brick"
	"github.com/matzehuels/brickuv/pkg/mesh"
)

func ExampleUnwrap() {
	// Build a 2x1 strip of unit quads in the XY plane
	m := mesh.New()
	v := []int{
		m.AddVertex(mesh.Vec3{X: 0, Y: 0}),
		m.AddVertex(mesh.Vec3{X: 1, Y: 0}),
		m.AddVertex(mesh.Vec3{X: 2, Y: 0}),
		m.AddVertex(mesh.Vec3{X: 0, Y: 1}),
		m.AddVertex(mesh.Vec3{X: 1, Y: 1}),
		m.AddVertex(mesh.Vec3{X: 2, Y: 1}),
	}
	_, _ = m.AddQuad(v[0], v[1], v[4], v[3])
	_, _ = m.AddQuad(v[1], v[2], v[5], v[4])
	m.BuildAdjacency()
	m.SelectAll()

	// Unwrap with a fixed origin so the layout is deterministic
	p := brick.DefaultParams()
	p.Random = false
	islands, err := brick.Unwrap(m, p)
	if err != nil {
		fmt.Println("unwrap:", err)
		return
	}

	fmt.Println("Islands:", len(islands))
	fmt.Printf("Cells: %dx%d\n", islands[0].Size().X, islands[0].Size().Y)
	fmt.Println("Faces:", islands[0].FaceCount())
	// Output:
	// Islands: 1
	// Cells: 2x1
	// Faces: 2
}

func ExampleFindIslands() {
	// Two quads that share no edge form two separate islands
	m := mesh.New()
	a := []int{
		m.AddVertex(mesh.Vec3{X: 0, Y: 0}),
		m.AddVertex(mesh.Vec3{X: 1, Y: 0}),
		m.AddVertex(mesh.Vec3{X: 1, Y: 1}),
		m.AddVertex(mesh.Vec3{X: 0, Y: 1}),
	}
	b := []int{
		m.AddVertex(mesh.Vec3{X: 5, Y: 0}),
		m.AddVertex(mesh.Vec3{X: 6, Y: 0}),
		m.AddVertex(mesh.Vec3{X: 6, Y: 1}),
		m.AddVertex(mesh.Vec3{X: 5, Y: 1}),
	}
	_, _ = m.AddQuad(a[0], a[1], a[2], a[3])
	_, _ = m.AddQuad(b[0], b[1], b[2], b[3])
	m.BuildAdjacency()
	m.SelectAll()

	islands, err := brick.FindIslands(m, brick.DefaultParams())
	if err != nil {
		fmt.Println("find islands:", err)
		return
	}

	fmt.Println("Islands:", len(islands))
	// Output:
	// Islands: 2
}
