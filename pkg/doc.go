// Package pkg provides the core libraries for BrickUV brick-wall unwrapping.
//
// # Overview
//
// BrickUV maps connected selections of quad faces onto a running-bond brick
// texture atlas, producing seamless brick-wall UVs without manual seam
// placement. The pkg directory is organized into three main areas:
//
//  1. Domain logic (mesh topology, island discovery, brick tiling)
//  2. Serialization and rendering (layouts, atlas and adjacency artifacts)
//  3. Infrastructure (caching, errors, observability, pipeline)
//
// # Architecture
//
// The typical data flow through BrickUV:
//
//	Wavefront OBJ
//	         ↓
//	    [mesh] package (quad arena + radial adjacency + selection)
//	         ↓
//	    [brick] package (island discovery + brick UV assignment)
//	         ↓
//	    [layout] package (serializable unwrap result)
//	         ↓
//	    [render] package (OBJ/JSON/atlas/DOT artifacts)
//
// # Quick Start
//
// Unwrap a mesh and export it with UVs:
//
//	import (
//	    "os"
//	    "github.com/matzehuels/brickuv/pkg/brick"
//	    "github.com/matzehuels/brickuv/pkg/mesh"
//	)
//
//	// 1. Load the mesh
//	m, _ := mesh.ImportOBJ("wall.obj")
//	m.SelectAll()
//
//	// 2. Unwrap onto the brick atlas
//	islands, _ := brick.Unwrap(m, brick.DefaultParams())
//
//	// 3. Export with texture coordinates
//	f, _ := os.Create("wall_uv.obj")
//	defer f.Close()
//	m.WriteOBJ(f)
//
// # Main Packages
//
// ## Domain Logic
//
// [mesh] - Quad-mesh arena with loop-based adjacency. Faces are cycles of
// four loops; radial twins connect loops across shared edges. Includes OBJ
// import/export and selection operations (explicit lists, select-all,
// coplanar flood fill).
//
// [brick] - The unwrap core. Discovers islands of connected selected faces,
// assigns each face an integer grid coordinate, groups faces into brick
// cells, and writes per-loop UVs tiling a running-bond brick pattern.
// Handles half-brick merging, stagger offset, rotated bond, subdivision,
// and deterministic per-island random origins.
//
// ## Serialization and Rendering
//
// [layout] - Serializable unwrap results (params echo, islands, per-face
// cell coordinates and corner UVs) with a JSON codec and file helpers.
// Layouts round-trip: unwrap → export → re-apply yields identical UVs.
//
// [render] - Artifact generation: UV atlas previews as SVG/PNG
// ([render/atlas]), island adjacency graphs as Graphviz DOT/SVG/PNG
// ([render/adjacency]), and SVG-to-PDF/PNG conversion helpers.
//
// ## Infrastructure
//
// [pipeline] - Complete unwrap pipeline (load → unwrap → render) used by
// CLI and API. Ensures consistent behavior across all entry points and
// caches layouts and artifacts by content hash.
//
// [cache] - Byte-blob caches with TTLs: file-based for the CLI, Redis and
// MongoDB for server deployments, and a null cache for tests.
//
// [errors] - Coded errors shared across surfaces, plus input validators.
//
// [observability] - Pluggable hooks for pipeline stages, cache access, and
// HTTP serving.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...         # All tests
//	go test ./pkg/brick/...   # Specific package
//
// [mesh]: https://pkg.go.dev/github.com/matzehuels/brickuv/pkg/mesh
// [brick]: https://pkg.go.dev/github.com/matzehuels/brickuv/pkg/brick
// [layout]: https://pkg.go.dev/github.com/matzehuels/brickuv/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/brickuv/pkg/render
// [render/atlas]: https://pkg.go.dev/github.com/matzehuels/brickuv/pkg/render/atlas
// [render/adjacency]: https://pkg.go.dev/github.com/matzehuels/brickuv/pkg/render/adjacency
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/brickuv/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/brickuv/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/brickuv/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/brickuv/pkg/observability
package pkg
