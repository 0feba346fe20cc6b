// Package symbolic derives the dynamics of a Hamiltonian from its algebraic
// form.
//
// A Hamiltonian owns the canonical symbols q0..q{n-1} and p0..p{n-1} and an
// optional energy expression H. Once H is set it provides:
//   - Hamilton's equations dq/dt = ∂H/∂p, dp/dt = -∂H/∂q (cached)
//   - conserved quantities detected through vanishing Poisson brackets
//   - the linearization of the flow around an equilibrium
//   - a compiled right-hand side for numeric integration
//   - generated Go source for the same right-hand side
//
// Poisson brackets and the symplectic matrix need no H and work on an
// undefined Hamiltonian. Everything else returns dynamo.ErrSymbolicState
// until SetHamiltonian is called.
//
// Thread Safety: a Hamiltonian caches derivatives lazily and must not be
// shared between goroutines without external locking.
package symbolic
