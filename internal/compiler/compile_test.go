package compiler

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/hamiltonian"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coupledPair() Definition {
	return Definition{
		Name:        "coupled",
		Coordinates: []string{"x", "y"},
		Potential: func(q Coords) float64 {
			x, y := q.Get("x"), q.Get("y")
			k, kc := q.Param("k"), q.Param("kc")
			return 0.5*k*(x*x+y*y) + 0.5*kc*(x-y)*(x-y)
		},
		Params: map[string]float64{"k": 1, "kc": 0.3},
	}
}

func TestCompile_MatchesDirectSystem(t *testing.T) {
	dsl, err := Compile(coupledPair())
	require.NoError(t, err)

	direct, err := hamiltonian.New(2, func(q dynamo.Vector) float64 {
		x, y := q[0], q[1]
		return 0.5*1*(x*x+y*y) + 0.5*0.3*(x-y)*(x-y)
	})
	require.NoError(t, err)

	x0, err := dynamo.NewPoint([]float64{1, -0.5}, []float64{0, 0.2})
	require.NoError(t, err)

	a, err := dsl.Evolve(x0, 5, 0.01)
	require.NoError(t, err)
	b, err := direct.Evolve(x0, 5, 0.01)
	require.NoError(t, err)

	require.Equal(t, b.Len(), a.Len())
	for i := 0; i < a.Len(); i++ {
		for d := 0; d < 2; d++ {
			assert.InDelta(t, b.Q[i][d], a.Q[i][d], 1e-12)
			assert.InDelta(t, b.P[i][d], a.P[i][d], 1e-12)
		}
	}
	assert.Equal(t, "coupled", dsl.Name())
}

func TestCompile_DefaultKinetic(t *testing.T) {
	def := coupledPair()
	def.Mass = []float64{2, 4}
	sys, err := Compile(def)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/4+4.0/8, sys.Kinetic(dynamo.Vector{1, 2}), 1e-15)
}

func TestCompile_CustomKineticByMomentumName(t *testing.T) {
	def := coupledPair()
	def.Kinetic = func(p Momenta) float64 {
		px, py := p.Get("px"), p.Get("py")
		return 0.5 * (px*px + py*py) / p.Param("m")
	}
	def.Params["m"] = 2
	sys, err := Compile(def)
	require.NoError(t, err)
	assert.InDelta(t, 0.25*(9+16), sys.Kinetic(dynamo.Vector{3, 4}), 1e-15)
}

func TestCompile_AnalyticForce(t *testing.T) {
	def := Definition{
		Name:        "spring",
		Coordinates: []string{"x"},
		Potential:   func(q Coords) float64 { return 0.5 * q.Param("k") * q.Get("x") * q.Get("x") },
		Force:       func(q Coords) []float64 { return []float64{-q.Param("k") * q.At(0)} },
		Params:      map[string]float64{"k": 3},
	}
	sys, err := Compile(def)
	require.NoError(t, err)
	assert.True(t, sys.HasAnalyticForce())
	assert.Equal(t, dynamo.Vector{-6}, sys.Force(dynamo.Vector{2}))
}

func TestCompile_WithParamsOverrides(t *testing.T) {
	def := coupledPair()
	sys, err := Compile(def, WithParams(map[string]float64{"k": 5}))
	require.NoError(t, err)

	assert.InDelta(t, 5.0, sys.Potential(dynamo.Vector{1, 1}), 1e-15)
	assert.Equal(t, 1.0, def.Params["k"], "definition params must not change")
}

func TestCompile_Rejects(t *testing.T) {
	pot := func(q Coords) float64 { return q.Get("x") }
	tests := []struct {
		name string
		def  Definition
		opts []CompileOption
	}{
		{"no coordinates", Definition{Potential: pot}, nil},
		{"empty name", Definition{Coordinates: []string{"x", " "}, Potential: pot}, nil},
		{"duplicate", Definition{Coordinates: []string{"x", "x"}, Potential: pot}, nil},
		{"no potential", Definition{Coordinates: []string{"x"}}, nil},
		{"mass length", Definition{Coordinates: []string{"x"}, Potential: pot, Mass: []float64{1, 2}}, nil},
		{"zero mass", Definition{Coordinates: []string{"x"}, Potential: pot, Mass: []float64{0}}, nil},
		{"unknown coordinate", Definition{
			Coordinates: []string{"x"},
			Potential:   func(q Coords) float64 { return q.Get("z") },
		}, nil},
		{"unknown parameter", Definition{
			Coordinates: []string{"x"},
			Potential:   func(q Coords) float64 { return q.Param("g") * q.Get("x") },
		}, nil},
		{"unknown momentum", Definition{
			Coordinates: []string{"x"},
			Potential:   pot,
			Kinetic:     func(p Momenta) float64 { return p.Get("x") },
		}, nil},
		{"force length", Definition{
			Coordinates: []string{"x", "y"},
			Potential:   pot,
			Force:       func(Coords) []float64 { return []float64{0} },
		}, nil},
		{"nan parameter", Definition{Coordinates: []string{"x"}, Potential: pot},
			[]CompileOption{WithParams(map[string]float64{"k": math.NaN()})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, err := Compile(tt.def, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, sys)
			assert.True(t, errors.Is(err, dynamo.ErrConfiguration), err.Error())
		})
	}
}

func TestCompile_ReportsEveryUnknownName(t *testing.T) {
	def := Definition{
		Name:        "typo",
		Coordinates: []string{"x"},
		Potential: func(q Coords) float64 {
			return q.Get("xx") + q.Param("k") + q.Get("xx")
		},
	}
	_, err := Compile(def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coordinate xx")
	assert.Contains(t, err.Error(), "parameter k")
	assert.Equal(t, 1, strings.Count(err.Error(), "coordinate xx"))
}

func TestCompile_CatchesNamesAwayFromOrigin(t *testing.T) {
	tests := []struct {
		name    string
		def     Definition
		missing string
	}{
		{"parameter past a threshold", Definition{
			Name:        "stiffening",
			Coordinates: []string{"x"},
			Potential: func(q Coords) float64 {
				x := q.Get("x")
				if x > 0.5 {
					return q.Param("k2") * x * x
				}
				return x * x
			},
		}, "parameter k2"},
		{"coordinate on the negative side", Definition{
			Name:        "onesided",
			Coordinates: []string{"x"},
			Potential: func(q Coords) float64 {
				if x := q.Get("x"); x < -0.5 {
					return q.Get("y")
				}
				return 0
			},
		}, "coordinate y"},
		{"force with mixed signs", Definition{
			Name:        "mixed",
			Coordinates: []string{"x", "y"},
			Potential:   func(q Coords) float64 { return 0 },
			Force: func(q Coords) []float64 {
				if q.Get("x") > 0 && q.Get("y") < 0 {
					return []float64{q.Param("c"), 0}
				}
				return []float64{0, 0}
			},
		}, "parameter c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.def)
			require.Error(t, err)
			assert.ErrorIs(t, err, dynamo.ErrConfiguration)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}
