package symbolic

import (
	"math"

	"github.com/san-kum/hamsim/internal/algebra"
	"github.com/san-kum/hamsim/internal/dynamo"
)

func checkPositive(op string, vals map[string]float64) error {
	for name, v := range vals {
		if !(v > 0) || math.IsInf(v, 0) {
			return dynamo.Configf(op, "%s must be positive and finite, got %g", name, v)
		}
	}
	return nil
}

func checkFinite(op string, vals map[string]float64) error {
	for name, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return dynamo.Configf(op, "%s must be finite, got %g", name, v)
		}
	}
	return nil
}

// kinetic returns p²/(2m).
func kinetic(p algebra.Expr, m float64) algebra.Expr {
	return algebra.Quo(algebra.Power(p, algebra.Int(2)), algebra.Product(algebra.Int(2), algebra.Decimal(m)))
}

// spring returns ½·k·x².
func spring(x algebra.Expr, k float64) algebra.Expr {
	return algebra.Product(algebra.Frac(1, 2), algebra.Decimal(k), algebra.Power(x, algebra.Int(2)))
}

// HarmonicOscillator returns H = Σ p_i²/(2m) + ½k q_i².
func HarmonicOscillator(n int, k, m float64) (*Hamiltonian, error) {
	const op = "symbolic.HarmonicOscillator"
	if err := checkFinite(op, map[string]float64{"k": k}); err != nil {
		return nil, err
	}
	if err := checkPositive(op, map[string]float64{"m": m}); err != nil {
		return nil, err
	}
	h, err := New(n)
	if err != nil {
		return nil, err
	}

	terms := make([]algebra.Expr, 0, 2*n)
	for i := 0; i < n; i++ {
		terms = append(terms, kinetic(h.p[i], m), spring(h.q[i], k))
	}
	h.SetHamiltonian(algebra.Sum(terms...))
	return h, nil
}

// CoupledOscillators returns the harmonic oscillator plus nearest-neighbour
// springs ½k_c (q_i − q_{i+1})².
func CoupledOscillators(n int, k, kc, m float64) (*Hamiltonian, error) {
	const op = "symbolic.CoupledOscillators"
	if err := checkFinite(op, map[string]float64{"k_c": kc}); err != nil {
		return nil, err
	}
	h, err := HarmonicOscillator(n, k, m)
	if err != nil {
		return nil, err
	}

	terms := []algebra.Expr{h.h}
	for i := 0; i+1 < n; i++ {
		terms = append(terms, spring(algebra.Minus(h.q[i], h.q[i+1]), kc))
	}
	h.SetHamiltonian(algebra.Sum(terms...))
	return h, nil
}

// TranslationChain returns a free chain of n masses joined by springs,
// H = Σ p_i²/(2m) + Σ ½k (q_i − q_{i+1})². It has no walls, so total
// momentum is conserved.
func TranslationChain(n int, k, m float64) (*Hamiltonian, error) {
	const op = "symbolic.TranslationChain"
	if err := checkFinite(op, map[string]float64{"k": k}); err != nil {
		return nil, err
	}
	if err := checkPositive(op, map[string]float64{"m": m}); err != nil {
		return nil, err
	}
	h, err := New(n)
	if err != nil {
		return nil, err
	}

	terms := make([]algebra.Expr, 0, 2*n)
	for i := 0; i < n; i++ {
		terms = append(terms, kinetic(h.p[i], m))
	}
	for i := 0; i+1 < n; i++ {
		terms = append(terms, spring(algebra.Minus(h.q[i], h.q[i+1]), k))
	}
	h.SetHamiltonian(algebra.Sum(terms...))
	return h, nil
}

// Kepler returns the planar Kepler problem in polar coordinates,
// H = p_r²/(2m) + p_θ²/(2m r²) − k/r with q0 = r, q1 = θ.
func Kepler(k, m float64) (*Hamiltonian, error) {
	const op = "symbolic.Kepler"
	if err := checkPositive(op, map[string]float64{"k": k, "m": m}); err != nil {
		return nil, err
	}
	h, err := New(2)
	if err != nil {
		return nil, err
	}

	r, pr, ptheta := h.q[0], h.p[0], h.p[1]
	h.SetHamiltonian(algebra.Sum(
		kinetic(pr, m),
		algebra.Quo(kinetic(ptheta, m), algebra.Power(r, algebra.Int(2))),
		algebra.Neg(algebra.Quo(algebra.Decimal(k), r)),
	))
	return h, nil
}
