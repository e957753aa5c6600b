// Package atlas renders unwrap layouts as texture-space previews.
//
// Every face is drawn as a polygon at its assigned UV position over the
// texture grid, colored by island. The previews make brick seams, stagger
// and double-half widening visible without opening a 3D tool.
package atlas

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/brickuv/pkg/layout"
	"github.com/matzehuels/brickuv/pkg/render"
)

// islandPalette cycles per island so adjacent islands read distinctly.
var islandPalette = []string{
	"#e63946", "#457b9d", "#2a9d8f", "#e9c46a",
	"#9b5de5", "#f4a261", "#00b4d8", "#6a994e",
}

// Option configures SVG rendering.
type Option func(*renderer)

type renderer struct {
	scale  float64 // pixels per texel
	grid   bool
	labels bool
}

// WithScale sets the pixels-per-texel factor (default 4).
func WithScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithGrid overlays the brick cell grid.
func WithGrid() Option { return func(r *renderer) { r.grid = true } }

// WithLabels prints the face index at each face centroid.
func WithLabels() Option { return func(r *renderer) { r.labels = true } }

// RenderSVG draws the layout over the texture atlas.
func RenderSVG(l layout.Layout, opts ...Option) []byte {
	r := renderer{scale: 4}
	for _, opt := range opts {
		opt(&r)
	}

	texW := float64(l.Params.Texture[0])
	texH := float64(l.Params.Texture[1])
	w := texW * r.scale
	h := texH * r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="#1d1d1d"/>`+"\n", w, h)

	if r.grid {
		renderGrid(&buf, l, r.scale, w, h)
	}

	for i, isl := range l.Islands {
		color := islandPalette[i%len(islandPalette)]
		for _, f := range isl.Faces {
			renderFace(&buf, f, color, r, texW, texH)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// RenderPNG renders the layout as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(l layout.Layout, opts ...Option) ([]byte, error) {
	return render.ToPNG(RenderSVG(l, opts...), 1.0)
}

func renderGrid(buf *bytes.Buffer, l layout.Layout, scale, w, h float64) {
	cellW := float64(l.Params.Cell[0]) * scale
	cellH := float64(l.Params.Cell[1]) * scale
	if cellW <= 0 || cellH <= 0 {
		return
	}
	buf.WriteString(`  <g stroke="#3a3a3a" stroke-width="1">` + "\n")
	for x := cellW; x < w; x += cellW {
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="0" x2="%.1f" y2="%.1f"/>`+"\n", x, x, h)
	}
	for y := cellH; y < h; y += cellH {
		fmt.Fprintf(buf, `    <line x1="0" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", y, w, y)
	}
	buf.WriteString("  </g>\n")
}

func renderFace(buf *bytes.Buffer, f layout.Face, color string, r renderer, texW, texH float64) {
	// V is exported with texture row 0 at the top, so the SVG y axis
	// needs the flip undone.
	var pts [4][2]float64
	var cx, cy float64
	for i, uv := range f.UVs {
		x := uv.U * texW * r.scale
		y := (1 - uv.V) * texH * r.scale
		pts[i] = [2]float64{x, y}
		cx += x / 4
		cy += y / 4
	}

	fmt.Fprintf(buf, `  <polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s" fill-opacity="0.55" stroke="%s" stroke-width="1"/>`+"\n",
		pts[0][0], pts[0][1], pts[1][0], pts[1][1], pts[2][0], pts[2][1], pts[3][0], pts[3][1], color, color)

	if r.labels {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" fill="#eeeeee" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%d</text>`+"\n",
			cx, cy, 3*r.scale, f.Index)
	}
}
