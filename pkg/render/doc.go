// Package render provides visualization rendering for unwrap layouts.
//
// # Overview
//
// This package contains the rendering pipeline that transforms computed
// layouts into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Texture atlas previews (in [atlas] subpackage)
//   - Island adjacency diagrams (in [adjacency] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). These are used by both
// atlas and adjacency renderers.
//
//	svg := atlas.RenderSVG(l, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Atlas Previews
//
// The [atlas] subpackage draws the UV layout over the texture grid: every
// face becomes a rectangle at its assigned texture span, colored by island,
// so brick seams and double-half widening are visible at a glance.
//
// # Adjacency Diagrams
//
// The [adjacency] subpackage renders island structure as directed graph
// diagrams using Graphviz. Cells appear as boxes clustered per island.
//
//	dot := adjacency.ToDOT(l, adjacency.Options{})
//	svg, err := adjacency.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//
// [atlas]: github.com/matzehuels/brickuv/pkg/render/atlas
// [adjacency]: github.com/matzehuels/brickuv/pkg/render/adjacency
package render
