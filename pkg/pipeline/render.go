package pipeline

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/brickuv/pkg/layout"
	"github.com/matzehuels/brickuv/pkg/mesh"
	"github.com/matzehuels/brickuv/pkg/render/adjacency"
	"github.com/matzehuels/brickuv/pkg/render/atlas"
)

// =============================================================================
// Render Stage
// =============================================================================

// Render generates output artifacts in the requested formats. The mesh must
// already carry the layout's UVs; it is only consulted for the OBJ format.
func Render(l layout.Layout, m *mesh.Mesh, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		data, err := renderFormat(l, m, opts, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderFormat(l layout.Layout, m *mesh.Mesh, opts Options, format string) ([]byte, error) {
	switch format {
	case FormatOBJ:
		if m == nil {
			return nil, fmt.Errorf("obj output requires the source mesh")
		}
		var buf bytes.Buffer
		if err := m.WriteOBJ(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case FormatJSON:
		return layout.Marshal(l)

	case FormatAtlasSVG:
		return atlas.RenderSVG(l, atlasOptions(opts)...), nil

	case FormatAtlasPNG:
		return atlas.RenderPNG(l, atlasOptions(opts)...)

	case FormatDOT:
		return []byte(adjacency.ToDOT(l, adjacency.Options{Detailed: opts.Detailed})), nil

	case FormatDOTSVG:
		dot := adjacency.ToDOT(l, adjacency.Options{Detailed: opts.Detailed})
		return adjacency.RenderSVG(dot)

	case FormatDOTPNG:
		dot := adjacency.ToDOT(l, adjacency.Options{Detailed: opts.Detailed})
		return adjacency.RenderPNG(dot, 2.0)

	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// atlasOptions translates pipeline options into atlas render options.
func atlasOptions(opts Options) []atlas.Option {
	out := []atlas.Option{atlas.WithScale(opts.Scale)}
	if opts.Grid {
		out = append(out, atlas.WithGrid())
	}
	if opts.Labels {
		out = append(out, atlas.WithLabels())
	}
	return out
}
