// Package layout provides serialization types for unwrap results.
//
// This package defines the canonical wire format for brickuv's layout data,
// used for JSON files, API responses, caching, and cross-tool interoperability.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Layout], [Island], [Face]: Serialization types (this package)
//   - pkg/brick.Island: Internal island representation (loop IDs, cells)
//   - pkg/mesh.Mesh: Internal mesh with per-loop UVs
//
// Use [FromIslands] to convert internal results into the wire format.
//
// # Layout Serialization
//
// Layouts use a simple JSON format:
//
//	{
//	  "run_id": "7f9c...",
//	  "mesh_hash": "a3b1...",
//	  "params": {"texture": [128, 128], "cell": [8, 8], ...},
//	  "islands": [{"size": [2, 1], "faces": [...]}]
//	}
//
// Common operations:
//
//	l, _ := layout.ReadFile("wall.layout.json")   // File → Layout
//	layout.WriteFile(l, "wall.layout.json")        // Layout → File
//	data, _ := layout.Marshal(l)                   // Layout → []byte
//	l, _ = layout.Unmarshal(data)                  // []byte → Layout
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package layout
