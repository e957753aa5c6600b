package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/brickuv/pkg/observability"
	"github.com/matzehuels/brickuv/pkg/pipeline"
)

// uvOpts holds the command-line flags for the uv command.
type uvOpts struct {
	output       string // output file (single format) or base path (multiple)
	faces        string // comma-separated face indices
	all          bool   // unwrap every face
	textureW     int    // atlas width in texels
	textureH     int    // atlas height in texels
	cellW        int    // brick cell width in texels
	cellH        int    // brick cell height in texels
	rotate       bool   // vertical running bond
	offset       bool   // shift stagger by one cell
	noHalves     bool   // disable half-brick merging
	coplanar     bool   // expand selection to coplanar faces
	fixedOrigin  bool   // pin island origins to tile (0,0)
	subdiv       bool   // group cell-size face blocks into one brick
	seed         uint64 // random seed for island origins
	formatsStr   string // comma-separated output formats
	scale        float64
	grid         bool
	labels       bool
	detailed     bool
	noCache      bool
	refresh      bool
}

// uvCommand creates the uv command, the main entry point for unwrapping.
func (c *CLI) uvCommand() *cobra.Command {
	var opts uvOpts

	cmd := &cobra.Command{
		Use:   "uv [file]",
		Short: "Unwrap a quad mesh onto a brick texture atlas",
		Long: `Unwrap reads a quad mesh from a Wavefront OBJ file, groups the selected
faces into islands of connected quads, and assigns each island UVs that tile
a running-bond brick texture. Outputs are written next to the input unless
--output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runUV(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&opts.faces, "faces", "", "comma-separated face indices to unwrap (default: all)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "unwrap every face")
	cmd.Flags().IntVar(&opts.textureW, "texture-w", 0, "atlas width in texels")
	cmd.Flags().IntVar(&opts.textureH, "texture-h", 0, "atlas height in texels")
	cmd.Flags().IntVar(&opts.cellW, "cell-w", 0, "brick cell width in texels")
	cmd.Flags().IntVar(&opts.cellH, "cell-h", 0, "brick cell height in texels")
	cmd.Flags().BoolVar(&opts.rotate, "rotate", false, "tile vertically (rotated running bond)")
	cmd.Flags().BoolVar(&opts.offset, "offset", false, "shift the running-bond stagger by one cell")
	cmd.Flags().BoolVar(&opts.noHalves, "no-double-halves", false, "keep half-width border bricks")
	cmd.Flags().BoolVar(&opts.coplanar, "coplanar", false, "expand the selection to coplanar neighbors")
	cmd.Flags().BoolVar(&opts.fixedOrigin, "fixed-origin", false, "pin every island to atlas tile (0,0)")
	cmd.Flags().BoolVar(&opts.subdiv, "subdiv", false, "group cell-size face blocks into single bricks")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for island origins")
	cmd.Flags().StringVarP(&opts.formatsStr, "format", "f", "", "output format(s): obj (default), json, atlas-svg, atlas-png, dot, dot-svg, dot-png (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "atlas render scale in pixels per texel")
	cmd.Flags().BoolVar(&opts.grid, "grid", false, "draw the cell grid on atlas renders")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw face indices on atlas renders")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "detailed labels on adjacency graphs")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the layout/artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// buildOptions converts uv flags into pipeline options.
func (c *CLI) buildOptions(input string, opts *uvOpts) (pipeline.Options, error) {
	faces, err := parseFaces(opts.faces)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("invalid --faces: %w", err)
	}

	po := c.pipelineOptions()
	po.Input = input
	po.Faces = faces
	po.SelectAll = opts.all
	if opts.textureW != 0 {
		po.TextureW = opts.textureW
	}
	if opts.textureH != 0 {
		po.TextureH = opts.textureH
	}
	if opts.cellW != 0 {
		po.CellW = opts.cellW
	}
	if opts.cellH != 0 {
		po.CellH = opts.cellH
	}
	po.Rotate = opts.rotate
	po.Offset = opts.offset
	po.SkipDoubleHalves = opts.noHalves
	po.Coplanar = opts.coplanar
	po.FixedOrigin = opts.fixedOrigin
	po.Subdiv = opts.subdiv
	if opts.seed != 0 {
		po.Seed = opts.seed
	}
	po.Formats = parseFormats(opts.formatsStr)
	po.Scale = opts.scale
	po.Grid = opts.grid
	po.Labels = opts.labels
	po.Detailed = opts.detailed
	po.Refresh = opts.refresh
	return po, nil
}

// runUV executes the full unwrap pipeline and writes the artifacts.
func (c *CLI) runUV(cmd *cobra.Command, input string, opts *uvOpts) error {
	po, err := c.buildOptions(input, opts)
	if err != nil {
		return err
	}
	if err := po.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(cmd.Context(), "Unwrapping "+filepath.Base(input))
	observability.SetPipelineHooks(&spinnerHooks{spinner: spinner})
	defer observability.Reset()
	spinner.Start()

	result, err := runner.Execute(cmd.Context(), po)
	if err != nil {
		spinner.StopWithError("Unwrap failed")
		return err
	}
	spinner.Stop()

	printSuccess("Unwrapped %d faces into %d islands", result.Layout.FaceCount(), result.Stats.IslandCount)
	printStats(result.Stats.FaceCount, result.Stats.IslandCount, result.CacheInfo.LayoutHit)

	base := uvBasePath(opts.output, input)
	single := len(po.Formats) == 1 && opts.output != ""
	for _, format := range po.Formats {
		path := artifactPath(base, format)
		if single {
			path = opts.output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	if !slices.Contains(po.Formats, pipeline.FormatAtlasSVG) && !slices.Contains(po.Formats, pipeline.FormatAtlasPNG) {
		printNextStep("Inspect the atlas", appName+" preview "+input)
	}

	return nil
}

// formatExts maps output formats to file suffixes appended to the base path.
var formatExts = map[string]string{
	pipeline.FormatOBJ:      ".obj",
	pipeline.FormatJSON:     ".json",
	pipeline.FormatAtlasSVG: "_atlas.svg",
	pipeline.FormatAtlasPNG: "_atlas.png",
	pipeline.FormatDOT:      "_islands.dot",
	pipeline.FormatDOTSVG:   "_islands.svg",
	pipeline.FormatDOTPNG:   "_islands.png",
}

// artifactPath builds the output path for one format.
func artifactPath(base, format string) string {
	return base + formatExts[format]
}

// uvBasePath derives the base output path. If output is empty the base is
// the input name with a _uv suffix, so the source mesh is never overwritten.
func uvBasePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input)) + "_uv"
	}
	ext := filepath.Ext(output)
	for _, suffix := range formatExts {
		if suffix != "" && strings.HasSuffix(output, suffix) {
			return strings.TrimSuffix(output, suffix)
		}
	}
	if ext != "" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
