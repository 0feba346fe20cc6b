package hamiltonian

import "github.com/san-kum/hamsim/internal/dynamo"

// FiniteDifferenceStep is the per-coordinate step of the central difference
// used when no analytic force is supplied.
const FiniteDifferenceStep = 1e-7

// NumericForce returns -∇V(q) by central differences:
//
//	F_i = -(V(q+εe_i) - V(q-εe_i)) / 2ε
//
// q is left untouched; the probes run on a private copy.
func NumericForce(potential PotentialFunc, q dynamo.Vector) dynamo.Vector {
	const eps = FiniteDifferenceStep
	probe := q.Clone()
	grad := make(dynamo.Vector, len(q))

	for i := range probe {
		orig := probe[i]

		probe[i] = orig + eps
		vPlus := potential(probe)
		probe[i] = orig - eps
		vMinus := potential(probe)
		probe[i] = orig

		grad[i] = -(vPlus - vMinus) / (2 * eps)
	}
	return grad
}
