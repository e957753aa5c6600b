package atlas

import (
	"strings"
	"testing"

	"github.com/matzehuels/brickuv/pkg/layout"
)

func testLayout() layout.Layout {
	return layout.Layout{
		Params: layout.Params{Texture: [2]int{128, 128}, Cell: [2]int{8, 8}},
		Islands: []layout.Island{{
			Size: [2]int{1, 1},
			Faces: []layout.Face{{
				Index: 0,
				Cell:  [2]int{0, 0},
				UVs: [4]layout.UV{
					{U: 0.5 / 128, V: 1 - 0.5/128},
					{U: 8.5 / 128, V: 1 - 0.5/128},
					{U: 8.5 / 128, V: 1 - 8.5/128},
					{U: 0.5 / 128, V: 1 - 8.5/128},
				},
			}},
		}},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testLayout()))

	if !strings.HasPrefix(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Fatalf("not an SVG document:\n%s", svg)
	}
	// Default scale is 4 px/texel: 128 texels -> 512 px frame.
	if !strings.Contains(svg, `viewBox="0 0 512.0 512.0"`) {
		t.Errorf("unexpected viewBox:\n%s", svg)
	}
	if !strings.Contains(svg, "<polygon") {
		t.Error("face polygon missing")
	}
	if strings.Contains(svg, "<line") {
		t.Error("grid lines present without WithGrid")
	}
	if strings.Contains(svg, "<text") {
		t.Error("labels present without WithLabels")
	}
}

func TestRenderSVG_Options(t *testing.T) {
	svg := string(RenderSVG(testLayout(), WithGrid(), WithLabels(), WithScale(2)))

	if !strings.Contains(svg, `viewBox="0 0 256.0 256.0"`) {
		t.Errorf("WithScale(2) not applied:\n%s", svg[:120])
	}
	if !strings.Contains(svg, "<line") {
		t.Error("WithGrid produced no grid lines")
	}
	if !strings.Contains(svg, ">0</text>") {
		t.Error("WithLabels produced no face label")
	}
}

func TestRenderSVG_IslandColors(t *testing.T) {
	l := testLayout()
	second := l.Islands[0]
	l.Islands = append(l.Islands, second)

	svg := string(RenderSVG(l))
	if !strings.Contains(svg, islandPalette[0]) || !strings.Contains(svg, islandPalette[1]) {
		t.Error("islands should use distinct palette entries")
	}
}
