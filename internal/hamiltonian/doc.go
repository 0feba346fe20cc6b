// Package hamiltonian is the numeric engine: a [System] owns the masses and
// energy functions of a Hamiltonian H(q, p) = T(p) + V(q) and evolves phase
// space points with a symplectic integrator.
//
//	sys, err := hamiltonian.New(1, func(q dynamo.Vector) float64 {
//	    return 0.5 * q[0] * q[0]
//	})
//	x0, _ := dynamo.NewPoint([]float64{1}, []float64{0})
//	traj, err := sys.Evolve(x0, 10, 0.01)
//
// A System is immutable after construction. Evolve allocates its own
// stepper, so one System may be evolved from many goroutines at once as long
// as the supplied energy functions are themselves safe for concurrent use.
package hamiltonian
