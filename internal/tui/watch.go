// Package tui is a live terminal view of a Hamiltonian system being
// integrated step by step.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/hamiltonian"
	"github.com/san-kum/hamsim/internal/integrators"
	"github.com/san-kum/hamsim/internal/viz"
)

const (
	historyCapacity = 600
	frameInterval   = time.Second / 30
	maxSubsteps     = 64
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Options configures a watch session.
type Options struct {
	Title  string
	Labels []string
	Method string
	Dt     float64
	// Substeps is the number of integrator steps per frame.
	Substeps int
}

// Model is the bubbletea model of a watch session.
type Model struct {
	sys      *hamiltonian.System
	stepper  dynamo.Stepper
	initial  dynamo.Point
	x        dynamo.Point
	t, dt    float64
	substeps int
	title    string
	labels   []string

	e0       float64
	energies []float64
	qs, ps   []float64
	paused   bool
	showHelp bool
	width    int
}

// NewModel validates the inputs and prepares a paused-at-zero session.
func NewModel(sys *hamiltonian.System, initial dynamo.Point, opts Options) (*Model, error) {
	const op = "tui.NewModel"
	if opts.Dt <= 0 {
		return nil, dynamo.Configf(op, "dt must be positive, got %g", opts.Dt)
	}
	if initial.DOF() != sys.DOF() || len(initial.P) != len(initial.Q) {
		return nil, dynamo.Configf(op, "initial state has %d dof, system has %d", initial.DOF(), sys.DOF())
	}
	if opts.Method == "" {
		opts.Method = integrators.MethodVerlet
	}
	stepper, err := integrators.New(opts.Method)
	if err != nil {
		return nil, err
	}
	if opts.Substeps < 1 {
		opts.Substeps = 1
	}
	if opts.Title == "" {
		opts.Title = sys.Name()
	}

	m := &Model{
		sys:      sys,
		stepper:  stepper,
		initial:  initial.Clone(),
		dt:       opts.Dt,
		substeps: min(opts.Substeps, maxSubsteps),
		title:    opts.Title,
		labels:   opts.Labels,
		width:    80,
	}
	m.reset()
	return m, nil
}

func (m *Model) Init() tea.Cmd { return tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.reset()
		case "n":
			if m.paused {
				m.advance()
			}
		case "+", "=":
			m.substeps = min(m.substeps*2, maxSubsteps)
		case "-", "_":
			m.substeps = max(m.substeps/2, 1)
		case "t":
			viz.NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		if !m.paused {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) reset() {
	m.x = m.initial.Clone()
	m.t = 0
	m.e0 = m.sys.Energy(m.x)
	m.energies = m.energies[:0]
	m.qs = m.qs[:0]
	m.ps = m.ps[:0]
	m.record()
}

// advance integrates one frame worth of steps.
func (m *Model) advance() {
	for i := 0; i < m.substeps; i++ {
		m.x = m.stepper.Step(m.sys, m.x, m.dt)
		m.t += m.dt
	}
	m.record()
}

func (m *Model) record() {
	m.energies = appendCapped(m.energies, m.sys.Energy(m.x))
	m.qs = appendCapped(m.qs, m.x.Q[0])
	m.ps = appendCapped(m.ps, m.x.P[0])
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[len(s)-historyCapacity:]
	}
	return s
}

// Time returns the simulated time.
func (m *Model) Time() float64 { return m.t }

// State returns a copy of the current phase-space point.
func (m *Model) State() dynamo.Point { return m.x.Clone() }

// Drift is the relative deviation of the current energy from H(0), or the
// absolute deviation when H(0) is zero.
func (m *Model) Drift() float64 {
	e := m.energies[len(m.energies)-1]
	scale := m.e0
	if scale < 0 {
		scale = -scale
	}
	if scale == 0 {
		scale = 1
	}
	d := (e - m.e0) / scale
	if d < 0 {
		d = -d
	}
	return d
}

func (m *Model) label(i int, momentum bool) string {
	if i < len(m.labels) {
		if momentum {
			return "p_" + m.labels[i]
		}
		return m.labels[i]
	}
	if momentum {
		return fmt.Sprintf("p%d", i)
	}
	return fmt.Sprintf("q%d", i)
}

func (m *Model) View() string {
	var stats strings.Builder
	status := "RUNNING"
	if m.paused {
		status = "PAUSED"
	}
	stats.WriteString(viz.Title().Render(strings.ToUpper(m.title)) + "\n")
	stats.WriteString(viz.Help().Render(status) + "\n\n")
	stats.WriteString(viz.KeyValue("time", fmt.Sprintf("%.3f", m.t)) + "\n")
	stats.WriteString(viz.KeyValue("dt", fmt.Sprintf("%g x %d", m.dt, m.substeps)) + "\n")
	stats.WriteString(viz.KeyValue("method", m.stepper.Name()) + "\n")
	stats.WriteString(viz.KeyValue("energy", fmt.Sprintf("%.8g", m.energies[len(m.energies)-1])) + "\n")
	stats.WriteString(viz.Label().Render("drift") + viz.Drift(m.Drift()) + "\n\n")
	for i := range m.x.Q {
		if i >= 4 {
			stats.WriteString(viz.Help().Render(fmt.Sprintf("... %d more", len(m.x.Q)-4)) + "\n")
			break
		}
		stats.WriteString(viz.KeyValue(m.label(i, false), fmt.Sprintf("%+.4f", m.x.Q[i])) + "\n")
		stats.WriteString(viz.KeyValue(m.label(i, true), fmt.Sprintf("%+.4f", m.x.P[i])) + "\n")
	}
	stats.WriteString("\n" + viz.Sparkline(m.energies, 30) + "\n")

	phase := viz.Panel().Render(
		viz.Help().Render("phase ("+m.label(0, false)+", "+m.label(0, true)+")") + "\n" +
			viz.PhasePortrait(m.qs, m.ps, 36, 12),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, phase, "  ", stats.String())

	var b strings.Builder
	b.WriteString(body + "\n")
	if len(m.energies) > 1 {
		b.WriteString(viz.EnergyPlot(m.energies, viz.PlotOptions{Width: min(m.width-12, 70), Height: 5}) + "\n")
	}
	if m.showHelp {
		b.WriteString(viz.Help().Render("space pause  n step  r reset  +/- speed  t theme  q quit") + "\n")
	} else {
		b.WriteString(viz.Help().Render("? help") + "\n")
	}
	return b.String()
}

// Run starts an interactive session on the alternate screen.
func Run(m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
