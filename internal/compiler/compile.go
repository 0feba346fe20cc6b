package compiler

import (
	"log/slog"
	"maps"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/hamiltonian"
)

type (
	KineticFunc   func(p Momenta) float64
	PotentialFunc func(q Coords) float64
	ForceFunc     func(q Coords) []float64
)

// Definition declares a separable Hamiltonian system by name.
//
// Compile checks names by evaluating Potential, Kinetic and Force at the
// origin, at ±1 in every coordinate and at one uneven state. A name read
// only in a branch none of those states reach is not caught, and Get or
// Param panics when the branch is first taken during integration.
type Definition struct {
	Name        string
	Coordinates []string
	// Kinetic defaults to Σ p²/(2m) when nil.
	Kinetic   KineticFunc
	Potential PotentialFunc
	// Force, when set, must return -∇V in coordinate order.
	Force  ForceFunc
	Mass   []float64
	Params map[string]float64
}

// Layout builds the name table for the definition's coordinates.
func (d Definition) Layout() (*Layout, error) {
	return NewLayout(d.Coordinates)
}

type compileConfig struct {
	params map[string]float64
	logger *slog.Logger
}

type CompileOption func(*compileConfig)

// WithParams overrides entries of Definition.Params.
func WithParams(params map[string]float64) CompileOption {
	return func(c *compileConfig) {
		for k, v := range params {
			c.params[k] = v
		}
	}
}

func WithLogger(l *slog.Logger) CompileOption {
	return func(c *compileConfig) { c.logger = l }
}

// Compile validates def and returns a simulatable system. Validation covers
// the coordinate list, the mass vector, parameter values, and every name the
// energy functions reference at a few fixed states (see Definition).
func Compile(def Definition, opts ...CompileOption) (*hamiltonian.System, error) {
	const op = "compiler.Compile"

	layout, err := def.Layout()
	if err != nil {
		return nil, err
	}
	if def.Potential == nil {
		return nil, dynamo.Configf(op, "system %q has no potential", def.Name)
	}

	cfg := compileConfig{params: maps.Clone(def.Params)}
	if cfg.params == nil {
		cfg.params = map[string]float64{}
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	for name, v := range cfg.params {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, dynamo.Configf(op, "parameter %q is not finite", name)
		}
	}

	if err := probeDefinition(def, layout, cfg.params); err != nil {
		return nil, err
	}

	sc := scope{layout: layout, params: cfg.params}
	potential := def.Potential
	sysOpts := []hamiltonian.Option{
		hamiltonian.WithName(def.Name),
	}
	if def.Mass != nil {
		sysOpts = append(sysOpts, hamiltonian.WithMass(def.Mass...))
	}
	if def.Kinetic != nil {
		kinetic := def.Kinetic
		sysOpts = append(sysOpts, hamiltonian.WithKinetic(func(p dynamo.Vector) float64 {
			return kinetic(Momenta{scope: sc, p: p})
		}))
	}
	if def.Force != nil {
		force := def.Force
		sysOpts = append(sysOpts, hamiltonian.WithForce(func(q dynamo.Vector) dynamo.Vector {
			return force(Coords{scope: sc, q: q})
		}))
	}
	if cfg.logger != nil {
		sysOpts = append(sysOpts, hamiltonian.WithLogger(cfg.logger))
		cfg.logger.Debug("compiled system",
			"system", def.Name,
			"coordinates", layout.Names(),
			"params", len(cfg.params),
			"analytic_force", def.Force != nil,
		)
	}

	return hamiltonian.New(layout.Len(), func(q dynamo.Vector) float64 {
		return potential(Coords{scope: sc, q: q})
	}, sysOpts...)
}

// probePoints are the states at which Compile evaluates the energy
// functions: the origin, ±1 in every coordinate and an uneven ramp.
func probePoints(n int) []dynamo.Vector {
	origin := make(dynamo.Vector, n)
	plus := make(dynamo.Vector, n)
	minus := make(dynamo.Vector, n)
	ramp := make(dynamo.Vector, n)
	for i := range n {
		plus[i], minus[i] = 1, -1
		ramp[i] = 0.5 + 0.37*float64(i)
		if i%2 == 1 {
			ramp[i] = -ramp[i]
		}
	}
	return []dynamo.Vector{origin, plus, minus, ramp}
}

func probeDefinition(def Definition, layout *Layout, params map[string]float64) error {
	const op = "compiler.Compile"

	pr := &probe{}
	sc := scope{layout: layout, params: params, probe: pr}

	for _, x := range probePoints(layout.Len()) {
		def.Potential(Coords{scope: sc, q: x})
		if def.Kinetic != nil {
			def.Kinetic(Momenta{scope: sc, p: x})
		}
		if def.Force != nil {
			f := def.Force(Coords{scope: sc, q: x})
			if len(f) != layout.Len() {
				return dynamo.Configf(op, "force of %q returns %d components, want %d", def.Name, len(f), layout.Len())
			}
		}
	}

	if len(pr.unknown) > 0 {
		return dynamo.Configf(op, "system %q references undefined %s", def.Name, strings.Join(dedupe(pr.unknown), ", "))
	}
	return nil
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := names[:0]
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
