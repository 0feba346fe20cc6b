package systems

import (
	"fmt"
	"math"

	"github.com/san-kum/hamsim/internal/algebra"
	"github.com/san-kum/hamsim/internal/compiler"
	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/hamiltonian"
	"github.com/san-kum/hamsim/internal/symbolic"
)

// FromExpression builds a model from an algebraic Hamiltonian over
// q0..q{dof-1}, p0..p{dof-1}. params are substituted into H before it is
// split into kinetic and potential parts. The initial state is the origin.
func FromExpression(src string, dof int, params map[string]float64, opts ...hamiltonian.Option) (*Model, *symbolic.Hamiltonian, error) {
	const op = "systems.FromExpression"
	e, err := algebra.Parse(src)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w: %w", op, dynamo.ErrConfiguration, err)
	}
	if len(params) > 0 {
		env := make(map[string]algebra.Expr, len(params))
		for name, v := range params {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, nil, dynamo.Configf(op, "parameter %q is not finite", name)
			}
			env[name] = algebra.Decimal(v)
		}
		e = algebra.Subs(e, env)
	}

	h, err := symbolic.New(dof)
	if err != nil {
		return nil, nil, err
	}
	h.SetHamiltonian(e)

	sys, err := h.NumericSystem(append([]hamiltonian.Option{hamiltonian.WithName(src)}, opts...)...)
	if err != nil {
		return nil, nil, err
	}
	layout, err := compiler.NewLayout(h.Coordinates())
	if err != nil {
		return nil, nil, err
	}
	zero := make(dynamo.Vector, dof)
	return &Model{
		System:  sys,
		Layout:  layout,
		Initial: dynamo.Point{Q: zero, P: zero.Clone()},
	}, h, nil
}
