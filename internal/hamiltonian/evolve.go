package hamiltonian

import (
	"context"
	"math"

	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/integrators"
	"github.com/san-kum/hamsim/internal/logging"
)

// MaxSteps bounds a single Evolve call so a tiny dt cannot exhaust memory.
const MaxSteps = 1 << 26

// stepGuard absorbs binary rounding in t/dt, e.g. 10/0.01. It is relative
// to t/dt so a tiny positive horizon still takes one step.
const stepGuard = 1e-9

type evolveConfig struct {
	method string
}

type EvolveOption func(*evolveConfig)

// WithMethod selects the integration method by name ("verlet", "leapfrog").
func WithMethod(method string) EvolveOption {
	return func(c *evolveConfig) { c.method = method }
}

// StepCount returns ceil(tMax/dt), the number of integrator steps Evolve
// takes for the given horizon.
func StepCount(tMax, dt float64) int {
	r := tMax / dt
	return int(math.Ceil(r - stepGuard*r))
}

// Evolve integrates from initial for ceil(tMax/dt) steps of size dt and
// returns the full trajectory including the initial point. All validation
// happens before the first step; on error no trajectory is returned.
func (s *System) Evolve(initial dynamo.Point, tMax, dt float64, opts ...EvolveOption) (*Trajectory, error) {
	const op = "hamiltonian.Evolve"

	cfg := evolveConfig{method: integrators.MethodVerlet}
	for _, opt := range opts {
		opt(&cfg)
	}

	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		return nil, dynamo.Configf(op, "dt must be positive and finite, got %g", dt)
	}
	if math.IsNaN(tMax) || math.IsInf(tMax, 0) || tMax < 0 {
		return nil, dynamo.Configf(op, "t_max must be non-negative and finite, got %g", tMax)
	}
	if len(initial.Q) != len(initial.P) {
		return nil, dynamo.Configf(op, "len(q)=%d != len(p)=%d", len(initial.Q), len(initial.P))
	}
	if initial.DOF() != s.dof {
		return nil, dynamo.Configf(op, "initial state has %d dof, system %q has %d", initial.DOF(), s.name, s.dof)
	}
	if !initial.IsValid() {
		return nil, dynamo.Configf(op, "initial state contains NaN or Inf")
	}
	if tMax/dt > MaxSteps {
		return nil, dynamo.Configf(op, "t_max/dt = %g exceeds %d steps", tMax/dt, MaxSteps)
	}

	stepper, err := integrators.New(cfg.method)
	if err != nil {
		return nil, err
	}

	n := StepCount(tMax, dt)
	s.logger.Debug("evolve",
		"system", s.name,
		"dof", s.dof,
		"method", stepper.Name(),
		"steps", n,
		"dt", dt,
	)

	traj := newTrajectory(n + 1)
	x := initial.Clone()
	traj.record(0, 0, x)

	trace := s.logger.Enabled(context.Background(), logging.LevelTrace)
	for i := 1; i <= n; i++ {
		x = stepper.Step(s, x, dt)
		traj.record(i, float64(i)*dt, x)
		if trace {
			logging.Trace(s.logger, "step", "i", i, "q", x.Q, "p", x.P)
		}
	}

	return traj, nil
}
