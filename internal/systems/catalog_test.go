package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/hamsim/internal/compiler"
	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/hamiltonian"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Names(t *testing.T) {
	assert.Equal(t,
		[]string{"chain", "double_well", "harmonic", "henon_heiles", "kepler", "pendulum"},
		Default().Names())
}

func TestDefault_EveryEntryConservesEnergy(t *testing.T) {
	c := Default()
	for _, name := range c.Names() {
		t.Run(name, func(t *testing.T) {
			m, err := c.Build(name)
			require.NoError(t, err)
			require.Equal(t, m.DOF(), m.Initial.DOF())

			traj, err := m.Evolve(m.Initial, 5, 0.001)
			require.NoError(t, err)
			assert.Less(t, traj.MaxRelativeDrift(m.Hamiltonian), 1e-3)
		})
	}
}

func TestGet_Unknown(t *testing.T) {
	_, err := Default().Get("lorenz")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dynamo.ErrUnknownSystem))
	assert.True(t, errors.Is(err, dynamo.ErrConfiguration))
}

func TestRegister(t *testing.T) {
	c := NewCatalog()
	e := Entry{Name: "free", Define: func() compiler.Definition {
		return compiler.Definition{
			Name:        "free",
			Coordinates: []string{"x"},
			Potential:   func(compiler.Coords) float64 { return 0 },
		}
	}}
	require.NoError(t, c.Register(e))
	assert.Error(t, c.Register(e))
	assert.Error(t, c.Register(Entry{Name: "nodef"}))

	m, err := c.Build("free")
	require.NoError(t, err)
	assert.Equal(t, dynamo.Vector{0}, m.Initial.Q)
}

func TestBuild_WithParams(t *testing.T) {
	m, err := Default().Build("harmonic", compiler.WithParams(map[string]float64{"k": 4}))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, m.Potential(dynamo.Vector{1}), 1e-15)
}

func TestParams_ReturnsCopy(t *testing.T) {
	c := Default()
	p, err := c.Params("pendulum")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"g": 9.81, "l": 1}, p)

	p["g"] = 0
	again, err := c.Params("pendulum")
	require.NoError(t, err)
	assert.Equal(t, 9.81, again["g"])
}

func TestChain_AnalyticForceMatchesGradient(t *testing.T) {
	m, err := Default().Build("chain", compiler.WithParams(map[string]float64{"k": 3}))
	require.NoError(t, err)
	require.True(t, m.HasAnalyticForce())

	q := dynamo.Vector{0.3, -0.1, 0.7, 0.2}
	numeric := hamiltonian.NumericForce(m.Potential, q)
	analytic := m.Force(q)
	for i := range q {
		assert.InDelta(t, numeric[i], analytic[i], 1e-5)
	}
}

func TestKepler_AnalyticForceMatchesGradient(t *testing.T) {
	m, err := Default().Build("kepler")
	require.NoError(t, err)

	q := dynamo.Vector{0.8, -0.6}
	numeric := hamiltonian.NumericForce(m.Potential, q)
	analytic := m.Force(q)
	assert.InDelta(t, numeric[0], analytic[0], 1e-5)
	assert.InDelta(t, numeric[1], analytic[1], 1e-5)
}

func TestFromExpression(t *testing.T) {
	m, h, err := FromExpression("p0^2/2 + k*q0^2/2", 1, map[string]float64{"k": 4})
	require.NoError(t, err)
	assert.True(t, h.Defined())
	assert.Equal(t, "p0^2/2 + k*q0^2/2", m.Name())
	assert.Equal(t, dynamo.Vector{-4}, m.Force(dynamo.Vector{1}))

	x0, err := dynamo.NewPoint([]float64{1}, []float64{0})
	require.NoError(t, err)
	traj, err := m.Evolve(x0, math.Pi, 0.001)
	require.NoError(t, err)
	// ω = 2, so one full period has elapsed at t = π.
	assert.InDelta(t, 1.0, traj.Final().Q[0], 1e-3)
}

func TestFromExpression_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		dof    int
		params map[string]float64
	}{
		{"syntax", "p0^2 +", 1, nil},
		{"unbound parameter", "p0^2/2 + k*q0^2", 1, nil},
		{"zero dof", "p0^2", 0, nil},
		{"non-separable", "p0^2*q0^2", 1, nil},
		{"nan parameter", "p0^2/2 + k*q0^2", 1, map[string]float64{"k": math.NaN()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := FromExpression(tt.src, tt.dof, tt.params)
			assert.True(t, errors.Is(err, dynamo.ErrConfiguration), "%v", err)
		})
	}
}
