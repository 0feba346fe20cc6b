package symbolic

import (
	"fmt"
	"math"

	"github.com/san-kum/hamsim/internal/algebra"
	"github.com/san-kum/hamsim/internal/dynamo"
)

// Names of the quantities ConservedQuantities can report.
const (
	QuantityEnergy          = "energy"
	QuantityMomentum        = "momentum"
	QuantityAngularMomentum = "angular_momentum"
)

// Hamiltonian is a symbolic energy function over n canonical pairs.
type Hamiltonian struct {
	n int
	q []*algebra.Sym
	p []*algebra.Sym
	h algebra.Expr

	dq []algebra.Expr
	dp []algebra.Expr
}

// New returns an undefined Hamiltonian with n degrees of freedom.
func New(n int) (*Hamiltonian, error) {
	if n < 1 {
		return nil, dynamo.Configf("symbolic.New", "n_dof must be at least 1, got %d", n)
	}
	h := &Hamiltonian{
		n: n,
		q: make([]*algebra.Sym, n),
		p: make([]*algebra.Sym, n),
	}
	for i := 0; i < n; i++ {
		h.q[i] = algebra.Symbol(fmt.Sprintf("q%d", i))
		h.p[i] = algebra.Symbol(fmt.Sprintf("p%d", i))
	}
	return h, nil
}

func (h *Hamiltonian) DOF() int { return h.n }

// Q returns the symbol of coordinate i. It panics if i is out of range.
func (h *Hamiltonian) Q(i int) *algebra.Sym { return h.q[i] }

// P returns the symbol of momentum i. It panics if i is out of range.
func (h *Hamiltonian) P(i int) *algebra.Sym { return h.p[i] }

// Coordinates returns q0..q{n-1}.
func (h *Hamiltonian) Coordinates() []string { return names(h.q) }

// Momenta returns p0..p{n-1}.
func (h *Hamiltonian) Momenta() []string { return names(h.p) }

// State returns the phase-space variable order [q0.., p0..].
func (h *Hamiltonian) State() []string {
	return append(h.Coordinates(), h.Momenta()...)
}

func names(syms []*algebra.Sym) []string {
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = s.Name()
	}
	return out
}

func (h *Hamiltonian) Defined() bool { return h.h != nil }

// Expr returns H, or nil while undefined.
func (h *Hamiltonian) Expr() algebra.Expr { return h.h }

// SetHamiltonian stores the canonical form of e and drops every cached
// derivative. A nil e makes the Hamiltonian undefined again.
func (h *Hamiltonian) SetHamiltonian(e algebra.Expr) {
	h.dq, h.dp = nil, nil
	if e == nil {
		h.h = nil
		return
	}
	h.h = algebra.Simplify(e)
}

func (h *Hamiltonian) require(op string) error {
	if h.h == nil {
		return dynamo.Statef(op, "call SetHamiltonian first")
	}
	return nil
}

// HamiltonEquations returns dq_i/dt = ∂H/∂p_i and dp_i/dt = -∂H/∂q_i.
func (h *Hamiltonian) HamiltonEquations() (dq, dp []algebra.Expr, err error) {
	if err := h.require("symbolic.HamiltonEquations"); err != nil {
		return nil, nil, err
	}
	if h.dq == nil {
		h.dq = make([]algebra.Expr, h.n)
		for i, p := range h.p {
			h.dq[i] = algebra.Diff(h.h, p.Name())
		}
	}
	if h.dp == nil {
		h.dp = make([]algebra.Expr, h.n)
		for i, q := range h.q {
			h.dp[i] = algebra.Neg(algebra.Diff(h.h, q.Name()))
		}
	}
	return append([]algebra.Expr(nil), h.dq...), append([]algebra.Expr(nil), h.dp...), nil
}

// PoissonBracket returns {f, g} = Σ_i ∂f/∂q_i·∂g/∂p_i − ∂f/∂p_i·∂g/∂q_i.
func (h *Hamiltonian) PoissonBracket(f, g algebra.Expr) algebra.Expr {
	terms := make([]algebra.Expr, 0, 2*h.n)
	for i := 0; i < h.n; i++ {
		q, p := h.q[i].Name(), h.p[i].Name()
		terms = append(terms,
			algebra.Product(algebra.Diff(f, q), algebra.Diff(g, p)),
			algebra.Product(algebra.Int(-1), algebra.Diff(f, p), algebra.Diff(g, q)),
		)
	}
	return algebra.Sum(terms...)
}

// TotalMomentum returns Σ p_i.
func (h *Hamiltonian) TotalMomentum() algebra.Expr {
	terms := make([]algebra.Expr, h.n)
	for i, p := range h.p {
		terms[i] = p
	}
	return algebra.Sum(terms...)
}

// AngularMomentum returns q0·p1 − q1·p0. It needs at least two degrees of
// freedom.
func (h *Hamiltonian) AngularMomentum() (algebra.Expr, error) {
	if h.n < 2 {
		return nil, dynamo.Configf("symbolic.AngularMomentum", "needs 2 dof, have %d", h.n)
	}
	return algebra.Minus(
		algebra.Product(h.q[0], h.p[1]),
		algebra.Product(h.q[1], h.p[0]),
	), nil
}

// ConservedQuantities reports H as "energy", Σp as "momentum" when
// {Σp, H} = 0, and q0·p1 − q1·p0 as "angular_momentum" when n ≥ 2 and its
// bracket with H vanishes.
func (h *Hamiltonian) ConservedQuantities() (map[string]algebra.Expr, error) {
	if err := h.require("symbolic.ConservedQuantities"); err != nil {
		return nil, err
	}
	out := map[string]algebra.Expr{QuantityEnergy: h.h}

	if total := h.TotalMomentum(); algebra.IsZero(h.PoissonBracket(total, h.h)) {
		out[QuantityMomentum] = total
	}
	if l, err := h.AngularMomentum(); err == nil && algebra.IsZero(h.PoissonBracket(l, h.h)) {
		out[QuantityAngularMomentum] = l
	}
	return out, nil
}

// SymplecticMatrix returns J = [[0, I], [-I, 0]] of size 2n.
func (h *Hamiltonian) SymplecticMatrix() *algebra.Matrix {
	j := algebra.Zeros(2*h.n, 2*h.n)
	for i := 0; i < h.n; i++ {
		j.Set(i, h.n+i, algebra.Int(1))
		j.Set(h.n+i, i, algebra.Int(-1))
	}
	return j
}

// rhs returns [dq..., dp...].
func (h *Hamiltonian) rhs(op string) ([]algebra.Expr, error) {
	if err := h.require(op); err != nil {
		return nil, err
	}
	dq, dp, err := h.HamiltonEquations()
	if err != nil {
		return nil, err
	}
	return append(dq, dp...), nil
}

// EquationsOfMotion compiles the flow f(state) = dstate/dt with
// state = [q0.., p0..].
func (h *Hamiltonian) EquationsOfMotion() (algebra.VectorFunc, error) {
	const op = "symbolic.EquationsOfMotion"
	exprs, err := h.rhs(op)
	if err != nil {
		return nil, err
	}
	fn, err := algebra.Compile(exprs, h.State())
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, dynamo.ErrConfiguration, err)
	}
	return fn, nil
}

// Linearize returns the Jacobian of the flow with respect to the full state,
// evaluated at (qEq, pEq).
func (h *Hamiltonian) Linearize(qEq, pEq []float64) (*algebra.Matrix, error) {
	const op = "symbolic.Linearize"
	exprs, err := h.rhs(op)
	if err != nil {
		return nil, err
	}
	if len(qEq) != h.n || len(pEq) != h.n {
		return nil, dynamo.Configf(op, "equilibrium has len(q)=%d len(p)=%d, want %d", len(qEq), len(pEq), h.n)
	}

	env := make(map[string]float64, 2*h.n)
	for i := 0; i < h.n; i++ {
		env[h.q[i].Name()] = qEq[i]
		env[h.p[i].Name()] = pEq[i]
	}

	jac := algebra.Jacobian(exprs, h.State())
	out := algebra.Zeros(jac.Rows(), jac.Cols())
	for i := 0; i < jac.Rows(); i++ {
		for j := 0; j < jac.Cols(); j++ {
			v, err := algebra.Eval(jac.Get(i, j), env)
			if err != nil {
				return nil, fmt.Errorf("%s: entry (%d,%d): %w", op, i, j, err)
			}
			if math.IsInf(v, 0) {
				return nil, fmt.Errorf("%s: entry (%d,%d): %w: infinite", op, i, j, algebra.ErrDomain)
			}
			out.Set(i, j, algebra.Float(v))
		}
	}
	return out, nil
}
