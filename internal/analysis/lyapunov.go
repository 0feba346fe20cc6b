package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/hamiltonian"
	"github.com/san-kum/hamsim/internal/integrators"
)

// ErrDiverged reports a trajectory that left the finite numbers.
var ErrDiverged = errors.New("analysis: trajectory diverged")

// DefaultSeparation is the initial phase-space distance between the
// reference and the shadow trajectory.
const DefaultSeparation = 1e-8

type lyapunovConfig struct {
	method     string
	separation float64
}

type Option func(*lyapunovConfig)

func WithMethod(method string) Option {
	return func(c *lyapunovConfig) { c.method = method }
}

func WithSeparation(d0 float64) Option {
	return func(c *lyapunovConfig) { c.separation = d0 }
}

// LargestLyapunov estimates the maximal Lyapunov exponent at x0. A shadow
// trajectory starts d0 away along q_0; after every step the separation d is
// accumulated as ln(d/d0) and the shadow is pulled back to distance d0
// along the current separation direction.
func LargestLyapunov(sys *hamiltonian.System, x0 dynamo.Point, tMax, dt float64, opts ...Option) (float64, error) {
	const op = "analysis.LargestLyapunov"
	cfg := lyapunovConfig{method: integrators.MethodVerlet, separation: DefaultSeparation}
	for _, opt := range opts {
		opt(&cfg)
	}

	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		return 0, dynamo.Configf(op, "dt must be positive and finite, got %g", dt)
	}
	if math.IsNaN(tMax) || math.IsInf(tMax, 0) || tMax <= 0 {
		return 0, dynamo.Configf(op, "t_max must be positive and finite, got %g", tMax)
	}
	if !(cfg.separation > 0) || math.IsInf(cfg.separation, 0) {
		return 0, dynamo.Configf(op, "separation must be positive and finite, got %g", cfg.separation)
	}
	if x0.DOF() != sys.DOF() || len(x0.P) != len(x0.Q) {
		return 0, dynamo.Configf(op, "initial state has %d dof, system has %d", x0.DOF(), sys.DOF())
	}
	if !x0.IsValid() {
		return 0, dynamo.Configf(op, "initial state contains NaN or Inf")
	}
	if tMax/dt > hamiltonian.MaxSteps {
		return 0, dynamo.Configf(op, "t_max/dt = %g exceeds %d steps", tMax/dt, hamiltonian.MaxSteps)
	}

	// Verlet caches the last force, so each trajectory needs its own stepper.
	ref, err := integrators.New(cfg.method)
	if err != nil {
		return 0, err
	}
	shadow, _ := integrators.New(cfg.method)

	x := x0.Clone()
	xs := x0.Clone()
	xs.Q[0] += cfg.separation

	n := hamiltonian.StepCount(tMax, dt)
	sumLog := 0.0
	for i := 0; i < n; i++ {
		x = ref.Step(sys, x, dt)
		xs = shadow.Step(sys, xs, dt)
		if !x.IsValid() || !xs.IsValid() {
			return 0, fmt.Errorf("%s: %w at t=%g", op, ErrDiverged, float64(i+1)*dt)
		}

		d := distance(x, xs)
		if d == 0 {
			continue
		}
		sumLog += math.Log(d / cfg.separation)
		xs = renormalize(x, xs, cfg.separation/d)
	}
	if n == 0 {
		return 0, nil
	}
	return sumLog / (float64(n) * dt), nil
}

func distance(a, b dynamo.Point) float64 {
	return math.Hypot(a.Q.Sub(b.Q).Norm(), a.P.Sub(b.P).Norm())
}

func renormalize(x, xs dynamo.Point, scale float64) dynamo.Point {
	out := dynamo.Point{Q: make(dynamo.Vector, len(x.Q)), P: make(dynamo.Vector, len(x.P))}
	for i := range x.Q {
		out.Q[i] = x.Q[i] + (xs.Q[i]-x.Q[i])*scale
		out.P[i] = x.P[i] + (xs.P[i]-x.P[i])*scale
	}
	return out
}
