package hamiltonian

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/hamsim/internal/dynamo"
)

// CouplingFunc is an interaction energy between the coordinates of two
// subsystems. It must not modify either argument.
type CouplingFunc func(qi, qj dynamo.Vector) float64

// Coupling attaches an interaction V to the subsystem pair (I, J). Its
// strength is read from the λ matrix given to Couple.
type Coupling struct {
	I, J int
	V    CouplingFunc
}

// Coupled is a System assembled from independent parts plus pairwise
// interactions:
//
//	H = Σ_i H_i(q_i, p_i) + Σ_{i<j} λ_ij V_ij(q_i, q_j)
//
// The state is the concatenation of the parts' states. Couplings depend on
// coordinates only, so the composite stays separable and evolves with the
// same symplectic steppers as any other System.
type Coupled struct {
	*System
	parts     []*System
	offsets   []int
	lambda    [][]float64
	couplings []Coupling
}

// Couple builds the composite of parts. lambda must be a symmetric n×n
// matrix of finite strengths for n parts; it may be nil when there are no
// couplings. Each Coupling names a distinct unordered pair of parts.
func Couple(parts []*System, lambda [][]float64, couplings []Coupling, opts ...Option) (*Coupled, error) {
	const op = "hamiltonian.Couple"
	n := len(parts)
	if n == 0 {
		return nil, dynamo.Configf(op, "no subsystems")
	}
	for i, s := range parts {
		if s == nil {
			return nil, dynamo.Configf(op, "subsystem %d is nil", i)
		}
	}
	if lambda == nil && len(couplings) > 0 {
		return nil, dynamo.Configf(op, "couplings given without a strength matrix")
	}
	if lambda != nil {
		if err := checkStrengths(op, lambda, n); err != nil {
			return nil, err
		}
	}

	seen := make(map[[2]int]bool, len(couplings))
	normalized := make([]Coupling, len(couplings))
	for k, c := range couplings {
		if c.I < 0 || c.I >= n || c.J < 0 || c.J >= n {
			return nil, dynamo.Configf(op, "coupling %d: pair (%d, %d) out of range for %d subsystems", k, c.I, c.J, n)
		}
		if c.I == c.J {
			return nil, dynamo.Configf(op, "coupling %d: subsystem %d coupled to itself", k, c.I)
		}
		if c.V == nil {
			return nil, dynamo.Configf(op, "coupling %d: nil interaction", k)
		}
		if c.I > c.J {
			c.I, c.J = c.J, c.I
		}
		key := [2]int{c.I, c.J}
		if seen[key] {
			return nil, dynamo.Configf(op, "coupling %d: pair (%d, %d) given twice", k, c.I, c.J)
		}
		seen[key] = true
		normalized[k] = c
	}

	c := &Coupled{
		parts:     append([]*System(nil), parts...),
		offsets:   make([]int, n+1),
		lambda:    cloneMatrix(lambda),
		couplings: normalized,
	}
	var (
		mass  []float64
		names = make([]string, n)
	)
	for i, s := range parts {
		c.offsets[i+1] = c.offsets[i] + s.DOF()
		mass = append(mass, s.Mass()...)
		names[i] = s.Name()
	}

	base := []Option{
		WithMass(mass...),
		WithKinetic(c.kinetic),
		WithForce(c.force),
		WithName("coupled(" + strings.Join(names, "+") + ")"),
	}
	sys, err := New(c.offsets[n], c.potential, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	c.System = sys
	return c, nil
}

func checkStrengths(op string, lambda [][]float64, n int) error {
	if len(lambda) != n {
		return dynamo.Configf(op, "strength matrix has %d rows, want %d", len(lambda), n)
	}
	for i, row := range lambda {
		if len(row) != n {
			return dynamo.Configf(op, "strength matrix row %d has %d entries, want %d", i, len(row), n)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return dynamo.Configf(op, "strength[%d][%d] is not finite", i, j)
			}
		}
	}
	for i := range lambda {
		for j := i + 1; j < n; j++ {
			if lambda[i][j] != lambda[j][i] {
				return dynamo.Configf(op, "strength matrix is not symmetric at (%d, %d)", i, j)
			}
		}
	}
	return nil
}

func cloneMatrix(m [][]float64) [][]float64 {
	if m == nil {
		return nil
	}
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Parts returns the subsystems in state order.
func (c *Coupled) Parts() []*System { return append([]*System(nil), c.parts...) }

// Offset returns the index of subsystem i's first degree of freedom in the
// composite state.
func (c *Coupled) Offset(i int) int { return c.offsets[i] }

func (c *Coupled) block(v dynamo.Vector, i int) dynamo.Vector {
	lo, hi := c.offsets[i], c.offsets[i+1]
	return v[lo:hi:hi]
}

// Split cuts a composite point into one point per subsystem. The results
// share no memory with x.
func (c *Coupled) Split(x dynamo.Point) ([]dynamo.Point, error) {
	if x.DOF() != c.DOF() || len(x.P) != len(x.Q) {
		return nil, dynamo.Configf("hamiltonian.Coupled.Split", "point has %d dof, composite has %d", x.DOF(), c.DOF())
	}
	out := make([]dynamo.Point, len(c.parts))
	for i := range c.parts {
		out[i] = dynamo.Point{Q: c.block(x.Q, i).Clone(), P: c.block(x.P, i).Clone()}
	}
	return out, nil
}

// Join concatenates one point per subsystem into a composite point.
func (c *Coupled) Join(points ...dynamo.Point) (dynamo.Point, error) {
	const op = "hamiltonian.Coupled.Join"
	if len(points) != len(c.parts) {
		return dynamo.Point{}, dynamo.Configf(op, "got %d points for %d subsystems", len(points), len(c.parts))
	}
	var q, p []float64
	for i, x := range points {
		if x.DOF() != c.parts[i].DOF() || len(x.P) != len(x.Q) {
			return dynamo.Point{}, dynamo.Configf(op, "point %d has %d dof, subsystem %q has %d",
				i, x.DOF(), c.parts[i].Name(), c.parts[i].DOF())
		}
		q = append(q, x.Q...)
		p = append(p, x.P...)
	}
	return dynamo.NewPoint(q, p)
}

// PartEnergies returns H_i for every subsystem, without interactions.
func (c *Coupled) PartEnergies(x dynamo.Point) []float64 {
	out := make([]float64, len(c.parts))
	for i, s := range c.parts {
		out[i] = s.Hamiltonian(c.block(x.Q, i), c.block(x.P, i))
	}
	return out
}

// InteractionEnergy returns Σ λ_ij V_ij(q_i, q_j).
func (c *Coupled) InteractionEnergy(q dynamo.Vector) float64 {
	v := 0.0
	for _, cp := range c.couplings {
		if lam := c.lambda[cp.I][cp.J]; lam != 0 {
			v += lam * cp.V(c.block(q, cp.I), c.block(q, cp.J))
		}
	}
	return v
}

func (c *Coupled) kinetic(p dynamo.Vector) float64 {
	t := 0.0
	for i, s := range c.parts {
		t += s.Kinetic(c.block(p, i))
	}
	return t
}

func (c *Coupled) potential(q dynamo.Vector) float64 {
	v := 0.0
	for i, s := range c.parts {
		v += s.Potential(c.block(q, i))
	}
	return v + c.InteractionEnergy(q)
}

// force uses each part's own force and a central difference of every
// interaction over the coordinates it touches.
func (c *Coupled) force(q dynamo.Vector) dynamo.Vector {
	f := make(dynamo.Vector, len(q))
	for i, s := range c.parts {
		copy(f[c.offsets[i]:c.offsets[i+1]], s.Force(c.block(q, i)))
	}
	for _, cp := range c.couplings {
		lam := c.lambda[cp.I][cp.J]
		if lam == 0 {
			continue
		}
		ni := c.parts[cp.I].DOF()
		joint := append(c.block(q, cp.I).Clone(), c.block(q, cp.J)...)
		v := cp.V
		g := NumericForce(func(x dynamo.Vector) float64 { return v(x[:ni:ni], x[ni:]) }, joint)
		for k := 0; k < ni; k++ {
			f[c.offsets[cp.I]+k] += lam * g[k]
		}
		for k := ni; k < len(g); k++ {
			f[c.offsets[cp.J]+k-ni] += lam * g[k]
		}
	}
	return f
}

// String names the composite and its coupled pairs.
func (c *Coupled) String() string {
	pairs := make([]string, len(c.couplings))
	for k, cp := range c.couplings {
		pairs[k] = fmt.Sprintf("%d-%d:%g", cp.I, cp.J, c.lambda[cp.I][cp.J])
	}
	return c.Name() + "[" + strings.Join(pairs, " ") + "]"
}
