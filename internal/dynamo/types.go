package dynamo

import "math"

// Vector is an ordered list of generalized coordinates or momenta.
type Vector []float64

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func (v Vector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func (v Vector) Sub(other Vector) Vector {
	result := make(Vector, len(v))
	for i := range v {
		if i < len(other) {
			result[i] = v[i] - other[i]
		} else {
			result[i] = v[i]
		}
	}
	return result
}

// ForceField supplies what a symplectic stepper needs from a system.
type ForceField interface {
	// Force returns -∇V(q). Implementations must not modify q.
	Force(q Vector) Vector
	// Mass returns the per-dof masses; callers must not modify the result.
	Mass() Vector
}

// Stepper advances a phase-space point by one timestep.
type Stepper interface {
	Name() string
	Step(f ForceField, x Point, dt float64) Point
}

// VectorField is a first-order right-hand side dx/dt = f(x).
type VectorField func(x []float64) []float64

// EnergyFunc evaluates a scalar function of phase space.
type EnergyFunc func(q, p Vector) float64
