// Package dynamo provides the phase-space primitives shared by the numeric
// and symbolic halves of hamsim.
//
// The package is a leaf: it defines the value types and the small set of
// interfaces the rest of the module is written against.
//
//   - [Vector]: ordered numeric vector (positions or momenta)
//   - [Point]: a phase-space point (q, p) with len(q) == len(p)
//   - [ForceField]: anything that can produce -∇V(q) and a per-dof mass
//   - [Stepper]: one step of a symplectic integrator
//   - [Error]: operation-tagged error carrying one of the sentinel kinds
//
// # Example
//
//	pt, err := dynamo.NewPoint([]float64{1}, []float64{0})
//	if err != nil {
//	    return err
//	}
//	e := pt.Energy(sys.Hamiltonian)
//
// # Thread Safety
//
// Points are values: once returned by an integrator they are never mutated,
// so they can be shared freely between goroutines. Use [Point.Clone] before
// modifying one in place.
package dynamo
