package integrators

import "github.com/san-kum/hamsim/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta scheme for a first-order
// vector field. It is not symplectic and is never used by Evolve; it exists
// to integrate compiled symbolic equations of motion for cross-checks.
type RK4 struct {
	scratch []float64
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(f dynamo.VectorField, x []float64, dt float64) []float64 {
	n := len(x)
	if len(r.scratch) != n {
		r.scratch = make([]float64, n)
	}

	k1 := f(x)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*k1[i]
	}
	k2 := f(r.scratch)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*k2[i]
	}
	k3 := f(r.scratch)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*k3[i]
	}
	k4 := f(r.scratch)

	result := make([]float64, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}

	return result
}

// Integrate applies steps fixed steps of size dt and returns the final state.
func (r *RK4) Integrate(f dynamo.VectorField, x0 []float64, dt float64, steps int) []float64 {
	x := append([]float64(nil), x0...)
	for i := 0; i < steps; i++ {
		x = r.Step(f, x, dt)
	}
	return x
}
