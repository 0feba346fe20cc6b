package integrators

import "github.com/san-kum/hamsim/internal/dynamo"

// oscillator is V(q) = ½·k·Σq² with unit masses unless overridden.
type oscillator struct {
	k    float64
	mass dynamo.Vector
}

func newOscillator(n int, k float64) *oscillator {
	m := make(dynamo.Vector, n)
	for i := range m {
		m[i] = 1
	}
	return &oscillator{k: k, mass: m}
}

func (o *oscillator) Force(q dynamo.Vector) dynamo.Vector {
	f := make(dynamo.Vector, len(q))
	for i := range q {
		f[i] = -o.k * q[i]
	}
	return f
}

func (o *oscillator) Mass() dynamo.Vector { return o.mass }

func (o *oscillator) energy(x dynamo.Point) float64 {
	e := 0.0
	for i := range x.Q {
		e += x.P[i]*x.P[i]/(2*o.mass[i]) + 0.5*o.k*x.Q[i]*x.Q[i]
	}
	return e
}

// countingField wraps a field and counts Force evaluations.
type countingField struct {
	dynamo.ForceField
	calls int
}

func (c *countingField) Force(q dynamo.Vector) dynamo.Vector {
	c.calls++
	return c.ForceField.Force(q)
}
