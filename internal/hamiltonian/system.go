package hamiltonian

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/logging"
)

// PotentialFunc returns V(q). It must not modify q.
type PotentialFunc func(q dynamo.Vector) float64

// KineticFunc returns T(p). It must not modify p.
type KineticFunc func(p dynamo.Vector) float64

// ForceFunc returns -∇V(q). It must not modify q.
type ForceFunc func(q dynamo.Vector) dynamo.Vector

// System is a Hamiltonian system with separable energy H = T(p) + V(q).
type System struct {
	name      string
	dof       int
	mass      dynamo.Vector
	kinetic   KineticFunc
	potential PotentialFunc
	force     ForceFunc
	logger    *slog.Logger
}

type Option func(*System)

// WithMass sets the per-dof masses. Validation happens in New.
func WithMass(m ...float64) Option {
	return func(s *System) { s.mass = dynamo.Vector(m).Clone() }
}

// WithKinetic replaces the default Σ p²/(2m) kinetic energy. The integrator
// still advances q with p/m; a custom T only changes reported energies.
func WithKinetic(fn KineticFunc) Option {
	return func(s *System) { s.kinetic = fn }
}

// WithForce supplies an analytic -∇V, skipping the finite-difference gradient.
func WithForce(fn ForceFunc) Option {
	return func(s *System) { s.force = fn }
}

func WithName(name string) Option {
	return func(s *System) { s.name = name }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *System) { s.logger = l }
}

// New builds a system with dof degrees of freedom. potential is required.
func New(dof int, potential PotentialFunc, opts ...Option) (*System, error) {
	const op = "hamiltonian.New"
	if dof < 1 {
		return nil, dynamo.Configf(op, "dof must be at least 1, got %d", dof)
	}

	s := &System{dof: dof, potential: potential}
	for _, opt := range opts {
		opt(s)
	}

	if s.potential == nil {
		return nil, dynamo.Configf(op, "potential is not implemented")
	}
	if s.mass == nil {
		s.mass = make(dynamo.Vector, dof)
		for i := range s.mass {
			s.mass[i] = 1
		}
	}
	if len(s.mass) != dof {
		return nil, dynamo.Configf(op, "mass has %d entries, want %d", len(s.mass), dof)
	}
	for i, m := range s.mass {
		if !(m > 0) || math.IsInf(m, 0) {
			return nil, dynamo.Configf(op, "mass[%d] must be positive and finite, got %g", i, m)
		}
	}
	if s.name == "" {
		s.name = fmt.Sprintf("system(%d)", dof)
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	return s, nil
}

func (s *System) Name() string { return s.name }
func (s *System) DOF() int     { return s.dof }

// Mass returns the per-dof masses. The slice is shared; do not modify it.
func (s *System) Mass() dynamo.Vector { return s.mass }

// HasAnalyticForce reports whether Force bypasses the numeric gradient.
func (s *System) HasAnalyticForce() bool { return s.force != nil }

func (s *System) Kinetic(p dynamo.Vector) float64 {
	if s.kinetic != nil {
		return s.kinetic(p)
	}
	t := 0.0
	for i, pi := range p {
		t += pi * pi / (2 * s.mass[i])
	}
	return t
}

func (s *System) Potential(q dynamo.Vector) float64 {
	return s.potential(q)
}

func (s *System) Force(q dynamo.Vector) dynamo.Vector {
	if s.force != nil {
		return s.force(q)
	}
	return NumericForce(s.potential, q)
}

// Hamiltonian returns the total energy T(p) + V(q).
func (s *System) Hamiltonian(q, p dynamo.Vector) float64 {
	return s.Kinetic(p) + s.Potential(q)
}

// Energy evaluates the Hamiltonian at a point.
func (s *System) Energy(x dynamo.Point) float64 {
	return s.Hamiltonian(x.Q, x.P)
}
