package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/brickuv/pkg/pipeline"
)

// previewOpts holds the command-line flags for the preview command.
type previewOpts struct {
	output      string
	png         bool
	scale       float64
	grid        bool
	labels      bool
	seed        uint64
	fixedOrigin bool
	noCache     bool
}

// previewCommand creates the preview command for rendering the UV atlas.
func (c *CLI) previewCommand() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Render the brick atlas with island placements",
		Long: `Preview unwraps the mesh and renders the resulting UV atlas as an image,
with one color per island. Useful for checking brick alignment before
exporting the mesh.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output image path")
	cmd.Flags().BoolVar(&opts.png, "png", false, "render PNG instead of SVG (requires rsvg-convert)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "render scale in pixels per texel")
	cmd.Flags().BoolVar(&opts.grid, "grid", true, "draw the cell grid")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw face indices")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for island origins")
	cmd.Flags().BoolVar(&opts.fixedOrigin, "fixed-origin", false, "pin every island to atlas tile (0,0)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the layout/artifact cache")

	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, input string, opts *previewOpts) error {
	format := pipeline.FormatAtlasSVG
	if opts.png {
		format = pipeline.FormatAtlasPNG
	}

	po := c.pipelineOptions()
	po.Input = input
	po.Formats = []string{format}
	po.Scale = opts.scale
	po.Grid = opts.grid
	po.Labels = opts.labels
	po.FixedOrigin = opts.fixedOrigin
	if opts.seed != 0 {
		po.Seed = opts.seed
	}
	if err := po.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(cmd.Context(), "Rendering atlas")
	spinner.Start()

	result, err := runner.Execute(cmd.Context(), po)
	if err != nil {
		spinner.StopWithError("Preview failed")
		return err
	}
	spinner.Stop()

	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + formatExts[format]
	}
	if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Rendered atlas (%d islands)", result.Stats.IslandCount)
	printFile(path)
	return nil
}
