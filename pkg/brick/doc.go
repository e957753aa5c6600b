// Package brick computes brick-wall UV layouts for selected quad faces.
//
// The algorithm runs in three stages:
//
//  1. Island discovery: selected faces are partitioned into maximal
//     edge-connected components. A depth-first walk over radial adjacency
//     assigns every face an integer grid coordinate relative to the seed,
//     anchored at a canonical "bottom loop" chosen by vertex position so
//     results do not depend on mesh-creation winding.
//  2. Cell grouping: each island's face grid is bucketed into fixed-size
//     rectangular cells (one face per cell unless subdivision is enabled),
//     with border flags recording which sides face the island's edge.
//  3. Tiling: every cell is mapped to a rectangle in the texture atlas,
//     applying the running-bond stagger, the double-half rule that merges
//     stray half bricks at island borders into double-width neighbors, the
//     optional 90° rotation of the tiling axis, and an optional per-island
//     randomized atlas origin. The resulting normalized UVs are written to
//     the mesh's per-loop UV attribute.
//
// All state lives in explicit values - a [Params] passed in and [Island]
// results returned - so the package is reentrant and deterministic for a
// fixed seed. Computation is single-threaded and synchronous; bookkeeping
// is discarded when the islands are garbage collected.
package brick
