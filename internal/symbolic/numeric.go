package symbolic

import (
	"fmt"

	"github.com/san-kum/hamsim/internal/algebra"
	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/hamiltonian"
)

// Split separates H into T(p) and V(q) when H = Σ p_i²/(2m_i) + V(q) with
// constant positive masses, returning the masses and V.
func (h *Hamiltonian) Split() (mass []float64, potential algebra.Expr, err error) {
	const op = "symbolic.Split"
	if err := h.require(op); err != nil {
		return nil, nil, err
	}

	zero := make(map[string]algebra.Expr, h.n)
	for _, p := range h.p {
		zero[p.Name()] = algebra.Int(0)
	}
	potential = algebra.Subs(h.h, zero)
	kinetic := algebra.Minus(h.h, potential)

	mass = make([]float64, h.n)
	rest := []algebra.Expr{kinetic}
	for i, p := range h.p {
		c := algebra.Diff(algebra.Diff(kinetic, p.Name()), p.Name())
		n, ok := c.(*algebra.Num)
		if !ok || n.Sign() <= 0 {
			return nil, nil, dynamo.Configf(op, "kinetic term is not Σ p²/2m in %s (∂²T/∂%s² = %s)", p, p, c)
		}
		mass[i] = 1 / n.Float64()
		rest = append(rest, algebra.Product(algebra.Frac(-1, 2), n, algebra.Power(p, algebra.Int(2))))
	}
	if !algebra.IsZero(algebra.Sum(rest...)) {
		return nil, nil, dynamo.Configf(op, "kinetic term %s is not diagonal", kinetic)
	}
	for _, name := range algebra.FreeSymbols(potential) {
		if !containsName(h.Coordinates(), name) {
			return nil, nil, dynamo.Configf(op, "potential depends on %s", name)
		}
	}
	return mass, potential, nil
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// NumericSystem builds a hamiltonian.System for a separable H. The
// potential is H(q, 0) and the analytic force is the compiled dp/dt. opts
// are applied after the derived mass and force, so a caller may override
// the name or logger.
func (h *Hamiltonian) NumericSystem(opts ...hamiltonian.Option) (*hamiltonian.System, error) {
	const op = "symbolic.NumericSystem"
	mass, potential, err := h.Split()
	if err != nil {
		return nil, err
	}
	_, dp, err := h.HamiltonEquations()
	if err != nil {
		return nil, err
	}

	coords := h.Coordinates()
	v, err := algebra.CompileScalar(potential, coords)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, dynamo.ErrConfiguration, err)
	}
	f, err := algebra.Compile(dp, coords)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, dynamo.ErrConfiguration, err)
	}

	all := []hamiltonian.Option{
		hamiltonian.WithName(fmt.Sprintf("symbolic(%d)", h.n)),
		hamiltonian.WithMass(mass...),
		hamiltonian.WithForce(func(q dynamo.Vector) dynamo.Vector { return f(q) }),
	}
	all = append(all, opts...)
	return hamiltonian.New(h.n, func(q dynamo.Vector) float64 { return v(q) }, all...)
}
