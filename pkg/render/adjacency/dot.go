// Package adjacency renders island structure as Graphviz diagrams.
//
// Each island becomes a cluster; each occupied cell becomes a node placed
// by its grid coordinate. The diagrams are a debugging aid for selection
// and traversal issues: a mesh that should unwrap as one wall but renders
// as several clusters has a broken adjacency somewhere.
package adjacency

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/brickuv/pkg/layout"
	"github.com/matzehuels/brickuv/pkg/render"
)

// Options configures adjacency diagram rendering.
type Options struct {
	// Detailed includes cell coordinates and UV spans in node labels.
	// When false, only the face index is shown.
	Detailed bool
}

// ToDOT converts a layout to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(l layout.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph islands {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")

	for i, isl := range l.Islands {
		fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=\"island %d (%dx%d)\";\n", i, isl.Size[0], isl.Size[1])
		buf.WriteString("    style=dashed;\n")

		first := make(map[[2]int]int, len(isl.Faces)) // cell -> first face index
		var cells [][2]int
		for _, f := range isl.Faces {
			if _, seen := first[f.Cell]; !seen {
				first[f.Cell] = f.Index
				cells = append(cells, f.Cell)
			}
		}

		for _, f := range isl.Faces {
			fmt.Fprintf(&buf, "    %q [label=%q];\n", nodeID(i, f.Index), label(f, opts.Detailed))
		}

		// Edge from each cell's first face to the occupied cell above and
		// to the right, recovering the grid shape in the drawing. Cells are
		// visited in face order so the DOT output is deterministic.
		for _, cell := range cells {
			for _, d := range [][2]int{{1, 0}, {0, 1}} {
				next := [2]int{cell[0] + d[0], cell[1] + d[1]}
				if to, ok := first[next]; ok {
					fmt.Fprintf(&buf, "    %q -> %q;\n", nodeID(i, first[cell]), nodeID(i, to))
				}
			}
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(island, face int) string {
	return fmt.Sprintf("i%d_f%d", island, face)
}

func label(f layout.Face, detailed bool) string {
	if !detailed {
		return strconv.Itoa(f.Index)
	}
	return fmt.Sprintf("face %d\ncell (%d,%d)\nu %.4f..%.4f", f.Index, f.Cell[0], f.Cell[1], f.UVs[0].U, f.UVs[1].U)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderPDF renders a DOT graph to PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph to PNG via SVG conversion at the given scale.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's svg tag so the diagram scales to its
// container instead of keeping hardcoded point units.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
