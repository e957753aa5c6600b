package cli

import (
	"io"
	"reflect"
	"testing"

	"github.com/matzehuels/brickuv/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"obj"}},
		{"json", []string{"json"}},
		{"obj,atlas-svg,dot", []string{"obj", "atlas-svg", "dot"}},
		{"obj, json", []string{"obj", "json"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFaces(t *testing.T) {
	got, err := parseFaces("0, 4,17")
	if err != nil {
		t.Fatalf("parseFaces() error: %v", err)
	}
	if !reflect.DeepEqual(got, []int{0, 4, 17}) {
		t.Errorf("parseFaces() = %v, want [0 4 17]", got)
	}

	if got, err := parseFaces(""); err != nil || got != nil {
		t.Errorf("parseFaces(\"\") = %v, %v; want nil, nil", got, err)
	}

	if _, err := parseFaces("1,x"); err == nil {
		t.Error("parseFaces should reject non-numeric input")
	}
}

func TestUVBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "wall.obj", "wall_uv"},
		{"", "meshes/wall.obj", "meshes/wall_uv"},
		{"out.obj", "wall.obj", "out"},
		{"out_atlas.svg", "wall.obj", "out"},
		{"out", "wall.obj", "out"},
	}

	for _, tt := range tests {
		got := uvBasePath(tt.output, tt.input)
		if got != tt.want {
			t.Errorf("uvBasePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestArtifactPath(t *testing.T) {
	if got := artifactPath("wall_uv", pipeline.FormatAtlasSVG); got != "wall_uv_atlas.svg" {
		t.Errorf("artifactPath() = %q, want %q", got, "wall_uv_atlas.svg")
	}
	if got := artifactPath("wall_uv", pipeline.FormatOBJ); got != "wall_uv.obj" {
		t.Errorf("artifactPath() = %q, want %q", got, "wall_uv.obj")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"uv", "islands", "preview", "tui", "serve", "cache", "config", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing %q subcommand", name)
		}
	}
}

func TestPipelineOptionsUsesConfig(t *testing.T) {
	c := &CLI{Logger: newLogger(io.Discard, LogInfo), Config: Config{TextureW: 64, CellW: 4}}
	opts := c.pipelineOptions()

	if opts.TextureW != 64 {
		t.Errorf("TextureW = %d, want 64", opts.TextureW)
	}
	if opts.CellW != 4 {
		t.Errorf("CellW = %d, want 4", opts.CellW)
	}
	// Unset fields fall back to pipeline defaults
	if opts.TextureH != pipeline.DefaultTextureSize {
		t.Errorf("TextureH = %d, want %d", opts.TextureH, pipeline.DefaultTextureSize)
	}
	if opts.CellH != pipeline.DefaultCellSize {
		t.Errorf("CellH = %d, want %d", opts.CellH, pipeline.DefaultCellSize)
	}
}
