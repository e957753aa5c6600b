package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/brickuv/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ParamsModel - Interactive unwrap parameter selection
// =============================================================================

// paramField identifies one row in the parameter picker.
type paramField int

const (
	fieldTextureW paramField = iota
	fieldTextureH
	fieldCellW
	fieldCellH
	fieldRotate
	fieldOffset
	fieldDoubleHalves
	fieldCoplanar
	fieldRandom
	fieldSubdiv
	fieldRun
	fieldCount
)

// fieldNames are the row labels, indexed by paramField.
var fieldNames = [fieldCount]string{
	"Texture width",
	"Texture height",
	"Cell width",
	"Cell height",
	"Rotate",
	"Offset",
	"Double halves",
	"Coplanar",
	"Random origins",
	"Subdivide",
	"Unwrap",
}

// size bounds for the texel fields
const (
	minTexels = 1
	maxTexels = 4096
)

// ParamsModel is the bubbletea model for interactive parameter selection.
type ParamsModel struct {
	Options  pipeline.Options
	Cursor   paramField
	Accepted bool
}

// NewParamsModel creates a parameter picker seeded with the given options.
func NewParamsModel(opts pipeline.Options) ParamsModel {
	opts.SetUnwrapDefaults()
	return ParamsModel{Options: opts}
}

func (m ParamsModel) Init() tea.Cmd {
	return nil
}

func (m ParamsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < fieldCount-1 {
			m.Cursor++
		}
	case "left", "h":
		m.adjust(false)
	case "right", "l":
		m.adjust(true)
	case " ":
		m.toggle()
	case "enter":
		if m.Cursor == fieldRun {
			m.Accepted = true
			return m, tea.Quit
		}
		m.toggle()
	}
	return m, nil
}

// adjust halves or doubles the texel field under the cursor.
func (m *ParamsModel) adjust(up bool) {
	step := func(v int) int {
		if up {
			if v*2 <= maxTexels {
				return v * 2
			}
			return v
		}
		if v/2 >= minTexels {
			return v / 2
		}
		return v
	}
	switch m.Cursor {
	case fieldTextureW:
		m.Options.TextureW = step(m.Options.TextureW)
	case fieldTextureH:
		m.Options.TextureH = step(m.Options.TextureH)
	case fieldCellW:
		m.Options.CellW = step(m.Options.CellW)
	case fieldCellH:
		m.Options.CellH = step(m.Options.CellH)
	}
}

// toggle flips the boolean field under the cursor.
func (m *ParamsModel) toggle() {
	switch m.Cursor {
	case fieldRotate:
		m.Options.Rotate = !m.Options.Rotate
	case fieldOffset:
		m.Options.Offset = !m.Options.Offset
	case fieldDoubleHalves:
		m.Options.SkipDoubleHalves = !m.Options.SkipDoubleHalves
	case fieldCoplanar:
		m.Options.Coplanar = !m.Options.Coplanar
	case fieldRandom:
		m.Options.FixedOrigin = !m.Options.FixedOrigin
	case fieldSubdiv:
		m.Options.Subdiv = !m.Options.Subdiv
	}
}

// value renders the current value of a field.
func (m ParamsModel) value(f paramField) string {
	onOff := func(v bool) string {
		if v {
			return StyleSuccess.Render("on")
		}
		return listDimStyle.Render("off")
	}
	switch f {
	case fieldTextureW:
		return fmt.Sprintf("%d px", m.Options.TextureW)
	case fieldTextureH:
		return fmt.Sprintf("%d px", m.Options.TextureH)
	case fieldCellW:
		return fmt.Sprintf("%d px", m.Options.CellW)
	case fieldCellH:
		return fmt.Sprintf("%d px", m.Options.CellH)
	case fieldRotate:
		return onOff(m.Options.Rotate)
	case fieldOffset:
		return onOff(m.Options.Offset)
	case fieldDoubleHalves:
		return onOff(m.Options.UseDoubleHalves())
	case fieldCoplanar:
		return onOff(m.Options.Coplanar)
	case fieldRandom:
		return onOff(m.Options.Randomize())
	case fieldSubdiv:
		return onOff(m.Options.Subdiv)
	}
	return ""
}

func (m ParamsModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Brick Unwrap Parameters"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ←/→ adjust  space toggle  ⏎ run  q quit"))
	b.WriteString("\n\n")

	for f := paramField(0); f < fieldCount; f++ {
		cursor := "  "
		if f == m.Cursor {
			cursor = "▸ "
		}

		var line string
		if f == fieldRun {
			line = fmt.Sprintf("%s%s", cursor, fieldNames[f])
		} else {
			line = fmt.Sprintf("%s%-16s %s", cursor, fieldNames[f], m.value(f))
		}

		if f == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// tuiCommand creates the tui command for interactive unwrapping.
func (c *CLI) tuiCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "tui [file]",
		Short: "Interactively pick unwrap parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(cmd, args[0], noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout/artifact cache")

	return cmd
}

func (c *CLI) runTUI(cmd *cobra.Command, input string, noCache bool) error {
	model := NewParamsModel(c.pipelineOptions())

	prog := tea.NewProgram(model)
	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	m, ok := final.(ParamsModel)
	if !ok || !m.Accepted {
		printInfo("Cancelled")
		return nil
	}

	po := m.Options
	po.Input = input
	po.Formats = []string{pipeline.FormatOBJ, pipeline.FormatAtlasSVG}
	if err := po.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(cmd.Context(), po)
	if err != nil {
		return err
	}

	printSuccess("Unwrapped %d faces into %d islands", result.Layout.FaceCount(), result.Stats.IslandCount)
	base := uvBasePath("", input)
	for _, format := range po.Formats {
		path := artifactPath(base, format)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
