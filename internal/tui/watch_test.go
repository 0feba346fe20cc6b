package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/hamiltonian"
)

func oscillator(t *testing.T) *hamiltonian.System {
	t.Helper()
	sys, err := hamiltonian.New(1, func(q dynamo.Vector) float64 {
		return 0.5 * q[0] * q[0]
	}, hamiltonian.WithName("osc"))
	require.NoError(t, err)
	return sys
}

func start() dynamo.Point {
	return dynamo.Point{Q: dynamo.Vector{1}, P: dynamo.Vector{0}}
}

func TestNewModel_Validates(t *testing.T) {
	sys := oscillator(t)

	_, err := NewModel(sys, start(), Options{Dt: 0})
	assert.ErrorIs(t, err, dynamo.ErrConfiguration)

	_, err = NewModel(sys, dynamo.Point{Q: dynamo.Vector{1, 2}, P: dynamo.Vector{0, 0}}, Options{Dt: 0.01})
	assert.ErrorIs(t, err, dynamo.ErrConfiguration)

	_, err = NewModel(sys, start(), Options{Dt: 0.01, Method: "euler"})
	assert.ErrorIs(t, err, dynamo.ErrUnknownMethod)
}

func TestModel_TickAdvancesAndMatchesEvolve(t *testing.T) {
	sys := oscillator(t)
	m, err := NewModel(sys, start(), Options{Dt: 0.01, Substeps: 10})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		_, cmd := m.Update(tickMsg{})
		assert.NotNil(t, cmd)
	}
	assert.InDelta(t, 1.0, m.Time(), 1e-9)

	traj, err := sys.Evolve(start(), 1, 0.01)
	require.NoError(t, err)
	assert.InDelta(t, traj.Final().Q[0], m.State().Q[0], 1e-12)
	assert.Less(t, m.Drift(), 1e-3)
}

func TestModel_PauseStepReset(t *testing.T) {
	m, err := NewModel(oscillator(t), start(), Options{Dt: 0.1})
	require.NoError(t, err)

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m.Update(tickMsg{})
	assert.Zero(t, m.Time())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.InDelta(t, 0.1, m.Time(), 1e-12)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Zero(t, m.Time())
	assert.Equal(t, start(), m.State())
}

func TestModel_Quit(t *testing.T) {
	m, err := NewModel(oscillator(t), start(), Options{Dt: 0.1})
	require.NoError(t, err)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_View(t *testing.T) {
	m, err := NewModel(oscillator(t), start(), Options{Dt: 0.1, Labels: []string{"x"}})
	require.NoError(t, err)
	m.Update(tickMsg{})

	out := m.View()
	assert.Contains(t, out, "OSC")
	assert.Contains(t, out, "p_x")
	assert.Contains(t, out, "verlet")
}

func TestAppendCapped(t *testing.T) {
	var s []float64
	for i := 0; i < historyCapacity+5; i++ {
		s = appendCapped(s, float64(i))
	}
	assert.Len(t, s, historyCapacity)
	assert.Equal(t, 5.0, s[0])
}
