package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/offset"
	"github.com/matzehuels/floatplace/pkg/pipeline"
	"github.com/matzehuels/floatplace/pkg/scenario"
)

var (
	exploreHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	exploreCurrent     = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	exploreNormal      = lipgloss.NewStyle().Foreground(colorWhite)
)

// exploreCommand creates the interactive explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [scenario]",
		Short: "Interactively tune an offset across all placements",
		Long: `Open a terminal view showing where the floating element lands for every
placement. Arrow keys move between placements; the offset and text direction
can be changed live.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(args)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				s.Reference = geom.Rect{X: 100, Y: 100, Width: 80, Height: 32}
				s.Floating = geom.Rect{Width: 160, Height: 48}
			}
			m, err := NewExploreModel(s, c)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// =============================================================================
// Key Bindings
// =============================================================================

type exploreKeyMap struct {
	Up, Down         key.Binding
	Direction        key.Binding
	MainUp, MainDn   key.Binding
	CrossUp, CrossDn key.Binding
	AlignUp, AlignDn key.Binding
	Reset, Quit      key.Binding
}

var exploreKeys = exploreKeyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev placement")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next placement")),
	Direction: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "ltr/rtl")),
	MainUp:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "main +1")),
	MainDn:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "main -1")),
	CrossUp:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "cross +1")),
	CrossDn:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "cross -1")),
	AlignUp:   key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "align +1")),
	AlignDn:   key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "align -1")),
	Reset:     key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset")),
	Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k exploreKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Direction, k.MainUp, k.MainDn, k.Reset, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k exploreKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Direction},
		{k.MainUp, k.MainDn, k.CrossUp, k.CrossDn, k.AlignUp, k.AlignDn},
		{k.Reset, k.Quit},
	}
}

// =============================================================================
// ExploreModel - live offset tuning
// =============================================================================

// ExploreModel is the bubbletea model behind the explore command.
type ExploreModel struct {
	Scenario scenario.Scenario
	Cursor   int
	RTL      bool
	Record   offset.Record

	help help.Model

	// script is set when the scenario's offset is dynamic; the record is
	// then not editable.
	script offset.Spec
}

// NewExploreModel creates a model starting at the scenario's placement.
func NewExploreModel(s *scenario.Scenario, c *CLI) (ExploreModel, error) {
	m := ExploreModel{Scenario: *s, RTL: s.RTL, Record: currentRecord(s.Offset), help: help.New()}
	if s.Dynamic() {
		spec, err := s.Spec(c.Logger)
		if err != nil {
			return ExploreModel{}, err
		}
		m.script = spec
	}
	for i, p := range geom.Placements {
		if p == s.Placement {
			m.Cursor = i
		}
	}
	return m, nil
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		n := len(geom.Placements)
		switch {
		case key.Matches(msg, exploreKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, exploreKeys.Up):
			m.Cursor = (m.Cursor + n - 1) % n
		case key.Matches(msg, exploreKeys.Down):
			m.Cursor = (m.Cursor + 1) % n
		case key.Matches(msg, exploreKeys.Direction):
			m.RTL = !m.RTL
		case key.Matches(msg, exploreKeys.MainUp):
			m.adjust(func(r *offset.Record) { r.MainAxis++ })
		case key.Matches(msg, exploreKeys.MainDn):
			m.adjust(func(r *offset.Record) { r.MainAxis-- })
		case key.Matches(msg, exploreKeys.CrossUp):
			m.adjust(func(r *offset.Record) { r.CrossAxis++ })
		case key.Matches(msg, exploreKeys.CrossDn):
			m.adjust(func(r *offset.Record) { r.CrossAxis-- })
		case key.Matches(msg, exploreKeys.AlignUp):
			m.adjust(func(r *offset.Record) { r.AlignmentOffset++ })
		case key.Matches(msg, exploreKeys.AlignDn):
			m.adjust(func(r *offset.Record) { r.AlignmentOffset-- })
		case key.Matches(msg, exploreKeys.Reset):
			m.adjust(func(r *offset.Record) { *r = offset.Record{} })
		}
	}
	return m, nil
}

func (m *ExploreModel) adjust(fn func(*offset.Record)) {
	if m.script == nil {
		fn(&m.Record)
	}
}

// Spec returns the offset the model currently resolves with.
func (m ExploreModel) Spec() offset.Spec {
	if m.script != nil {
		return m.script
	}
	return m.Record
}

// Placement returns the selected placement.
func (m ExploreModel) Placement() geom.Placement {
	return geom.Placements[m.Cursor]
}

// position computes the offset delta and final position for p.
func (m ExploreModel) position(p geom.Placement) (delta, pos geom.Coords) {
	rects := m.Scenario.Rects()
	delta = offset.Resolve(p, rects, m.Spec(), m.RTL)
	return delta, pipeline.InitialCoords(rects, p, m.RTL).Add(delta)
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore " + m.Scenario.Name))
	b.WriteString("\n\n")

	if m.script != nil {
		b.WriteString(styleLabel.Render("offset") + " " + StyleValue.Render("script"))
	} else {
		b.WriteString(styleLabel.Render("offset") + " " + StyleValue.Render(fmt.Sprintf("main=%g cross=%g align=%g",
			m.Record.MainAxis, m.Record.CrossAxis, m.Record.AlignmentOffset)))
	}
	b.WriteString("\n")
	b.WriteString(styleLabel.Render("direction") + " " + StyleValue.Render(direction(m.RTL)))
	b.WriteString("\n")

	rows := make([][]string, len(geom.Placements))
	for i, p := range geom.Placements {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		delta, pos := m.position(p)
		rows[i] = []string{
			cursor,
			string(p),
			fmt.Sprintf("%g, %g", delta.X, delta.Y),
			fmt.Sprintf("%g, %g", pos.X, pos.Y),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Placement", "Delta", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return exploreHeaderStyle
			case row == m.Cursor:
				return exploreCurrent
			default:
				return exploreNormal
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(m.help.View(exploreKeys))
	return b.String()
}
