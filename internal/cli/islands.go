package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/brickuv/pkg/layout"
	"github.com/matzehuels/brickuv/pkg/render/adjacency"
)

// islandsOpts holds the command-line flags for the islands command.
type islandsOpts struct {
	faces    string
	all      bool
	coplanar bool
	subdiv   bool
	cellW    int
	cellH    int
	graph    string
	jsonOut  string
	detailed bool
}

// islandsCommand creates the islands command for inspecting island discovery
// without writing any outputs.
func (c *CLI) islandsCommand() *cobra.Command {
	var opts islandsOpts

	cmd := &cobra.Command{
		Use:   "islands [file]",
		Short: "Inspect the islands a mesh selection splits into",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runIslands(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.faces, "faces", "", "comma-separated face indices (default: all)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "inspect every face")
	cmd.Flags().BoolVar(&opts.coplanar, "coplanar", false, "expand the selection to coplanar neighbors")
	cmd.Flags().BoolVar(&opts.subdiv, "subdiv", false, "group cell-size face blocks into single bricks")
	cmd.Flags().IntVar(&opts.cellW, "cell-w", 0, "brick cell width in texels")
	cmd.Flags().IntVar(&opts.cellH, "cell-h", 0, "brick cell height in texels")
	cmd.Flags().StringVar(&opts.graph, "graph", "", "write an adjacency graph (.dot, .svg, or .png)")
	cmd.Flags().StringVar(&opts.jsonOut, "json", "", "write the discovered layout as JSON")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "detailed labels on the adjacency graph")

	return cmd
}

// runIslands loads the mesh, unwraps with caching disabled, and prints a
// per-island summary table.
func (c *CLI) runIslands(cmd *cobra.Command, input string, opts *islandsOpts) error {
	faces, err := parseFaces(opts.faces)
	if err != nil {
		return fmt.Errorf("invalid --faces: %w", err)
	}

	po := c.pipelineOptions()
	po.Input = input
	po.Faces = faces
	po.SelectAll = opts.all
	po.Coplanar = opts.coplanar
	po.Subdiv = opts.subdiv
	if opts.cellW != 0 {
		po.CellW = opts.cellW
	}
	if opts.cellH != 0 {
		po.CellH = opts.cellH
	}
	po.FixedOrigin = true // origins don't matter for inspection
	if err := po.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	m, meshHash, err := runner.Load(cmd.Context(), po)
	if err != nil {
		return err
	}
	l, err := runner.Unwrap(cmd.Context(), m, meshHash, po)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Discovered %d islands", len(l.Islands)))

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, 0, len(l.Islands))
	for i, isl := range l.Islands {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%dx%d", isl.Size[0], isl.Size[1]),
			fmt.Sprintf("%d", len(isl.Faces)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Island", "Cells", "Faces").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	fmt.Println(t.Render())
	printStats(l.FaceCount(), len(l.Islands), false)

	if opts.jsonOut != "" {
		if err := layout.WriteFile(l, opts.jsonOut); err != nil {
			return fmt.Errorf("write %s: %w", opts.jsonOut, err)
		}
		printFile(opts.jsonOut)
	}
	if opts.graph != "" {
		if err := writeGraph(l, opts.graph, opts.detailed); err != nil {
			return err
		}
		printFile(opts.graph)
	}
	return nil
}

// writeGraph renders the island adjacency graph in the format implied by the
// output extension.
func writeGraph(l layout.Layout, path string, detailed bool) error {
	dot := adjacency.ToDOT(l, adjacency.Options{Detailed: detailed})

	var data []byte
	var err error
	switch filepath.Ext(path) {
	case ".dot":
		data = []byte(dot)
	case ".svg":
		data, err = adjacency.RenderSVG(dot)
	case ".png":
		data, err = adjacency.RenderPNG(dot, 2.0)
	default:
		return fmt.Errorf("unsupported graph extension %q (want .dot, .svg, or .png)", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}
