// Package mesh provides a minimal quad mesh with loop-based adjacency.
//
// A mesh is an arena of integer-indexed records: vertices, faces, and loops.
// Each face owns exactly four loops, one per corner, linked in CCW order.
// A loop is an oriented reference to the edge running from its corner to the
// next corner; when two faces share an edge, their loops on that edge are
// linked as radial twins. This mirrors the half-edge structure used by mesh
// editors, flattened into slices so there are no ownership cycles.
//
// # Structure
//
// For a face with corners v0..v3, loop i covers the edge v_i → v_(i+1):
//
//	     l2
//	v3 ◄──── v2
//	│         ▲
//	│ l3   l1 │
//	▼         │
//	v0 ────► v1
//	     l0
//
// Radial twins are established by [Mesh.BuildAdjacency] after all quads have
// been added. A loop on a boundary edge has no twin.
//
// # Limitations
//
// Only quadrilateral faces are supported. Triangles, n-gons, and topology
// edits (splits, dissolves) are out of scope. The mesh is not safe for
// concurrent mutation.
package mesh
