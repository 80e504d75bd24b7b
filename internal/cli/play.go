package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	gocube "github.com/SeamusWaldron/gocube_solver"
	"github.com/SeamusWaldron/gocube_solver/internal/cubie"
	"github.com/SeamusWaldron/gocube_solver/internal/session"
	"github.com/SeamusWaldron/gocube_solver/internal/solver"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
	"github.com/SeamusWaldron/gocube_solver/internal/tables"
)

var playFrom string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive cube session",
	Long: `Start an interactive TUI holding one cube. Type moves in standard
notation and press Enter to apply them.

Keyboard shortcuts:
  Enter   - Apply the typed moves
  ctrl+s  - Solve the current state
  ctrl+a  - Apply the last solution found
  ctrl+r  - Reset to the starting state
  Esc     - Quit

Moves and solver runs are logged to the database given by --db.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVar(&playFrom, "from", "", "Start from this facelet string instead of solved")
	addBudgetFlags(playCmd)
}

// Messages
type solvedMsg struct {
	gen int
	sol *solver.Solution
	err error
}

type playModel struct {
	ctx     context.Context
	manager *session.Manager
	id      string

	cube     *gocube.Cube
	history  []gocube.Move
	input    string
	solution []cubie.Move
	status   string
	solving  bool
	err      error
	quitting bool

	// gen counts changes to the cube; a solve started before the latest
	// change is discarded.
	gen int
}

func newPlayModel(ctx context.Context, m *session.Manager, id string) *playModel {
	p := &playModel{ctx: ctx, manager: m, id: id}
	p.refresh()
	return p
}

func (m *playModel) Init() tea.Cmd {
	return nil
}

// refresh reloads the cube and history from the session.
func (m *playModel) refresh() {
	facelets, err := m.manager.Facelets(m.id)
	if err != nil {
		m.err = err
		return
	}
	if m.cube, err = gocube.ParseCube(facelets); err != nil {
		m.err = err
		return
	}
	if m.history, err = m.manager.History(m.ctx, m.id); err != nil {
		m.err = err
	}
}

// changed records that the cube moved on; any solution found so far no
// longer applies.
func (m *playModel) changed(status string) {
	m.gen++
	m.solution = nil
	m.status = status
	m.refresh()
}

func (m *playModel) solve() tea.Cmd {
	m.solving = true
	m.status = "Solving..."
	gen := m.gen
	return func() tea.Msg {
		sol, err := m.manager.Solve(m.ctx, m.id)
		return solvedMsg{gen: gen, sol: sol, err: err}
	}
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			m.err = nil
			if strings.TrimSpace(m.input) == "" {
				return m, nil
			}
			if _, err := m.manager.ApplyNotation(m.ctx, m.id, m.input); err != nil {
				m.err = err
				return m, nil
			}
			m.input = ""
			m.changed("")

		case tea.KeyBackspace:
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}

		case tea.KeyCtrlS:
			if !m.solving {
				m.err = nil
				return m, m.solve()
			}

		case tea.KeyCtrlA:
			if len(m.solution) > 0 {
				if _, err := m.manager.Apply(m.ctx, m.id, m.solution...); err != nil {
					m.err = err
					return m, nil
				}
				m.changed("")
			}

		case tea.KeyCtrlR:
			if err := m.manager.Reset(m.ctx, m.id); err != nil {
				m.err = err
				return m, nil
			}
			m.changed("Reset")

		case tea.KeyRunes, tea.KeySpace:
			m.input += msg.String()
		}

	case solvedMsg:
		m.solving = false
		if msg.gen != m.gen {
			m.status = "Cube changed while solving; press ctrl+s again"
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.solution = msg.sol.Moves
		m.status = fmt.Sprintf("%d moves, %d nodes, optimal: %v",
			msg.sol.Len(), msg.sol.Nodes, msg.sol.Optimal)
	}
	return m, nil
}

func (m *playModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("gocube"))
	b.WriteString(statusStyle.Render(fmt.Sprintf("  session %s", m.id[:8])))
	b.WriteString("\n\n")

	if m.cube != nil {
		b.WriteString(renderNet(m.cube))
		if m.cube.IsSolved() {
			b.WriteString(moveStyle.Render("SOLVED"))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	// Recent moves
	b.WriteString(fmt.Sprintf("Moves: %d\n", len(m.history)))
	if len(m.history) > 0 {
		start := 0
		if len(m.history) > 20 {
			start = len(m.history) - 20
			b.WriteString("... ")
		}
		b.WriteString(moveStyle.Render(gocube.FormatMoves(m.history[start:])))
		b.WriteString("\n")
		last := m.history[len(m.history)-1]
		b.WriteString(statusStyle.Render(fmt.Sprintf("last move %s at %s", last, last.Time.Local().Format(time.TimeOnly))))
		b.WriteString("\n")
	}

	if len(m.solution) > 0 {
		b.WriteString("\nSolution: ")
		b.WriteString(moveStyle.Render(cubie.FormatMoves(m.solution)))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	// Error
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n> " + m.input + "\n\n")
	b.WriteString(helpStyle.Render("Enter=apply  ctrl+s=solve  ctrl+a=apply solution  ctrl+r=reset  esc=quit"))
	b.WriteString("\n")
	return b.String()
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Debug("logging session", "database", db.DSN())

	s, err := solver.New(tables.Default(), solverOptions(cmd))
	if err != nil {
		return err
	}
	manager := session.NewManager(db, s, nil)
	id, err := manager.Create(ctx, playFrom)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newPlayModel(ctx, manager, id), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
