// Package systems is the catalog of named Hamiltonian systems.
//
// Every entry is a compiler.Definition plus a default initial state:
//
//   - harmonic: one-dimensional spring, V = ½k x²
//   - pendulum: V = -(g/l) cos θ
//   - double_well: bistable well, V = a (x² - b)²
//   - henon_heiles: V = ½(x² + y²) + λ(x²y - y³/3)
//   - chain: four masses between fixed walls, analytic force
//   - kepler: planar central force, V = -k/r, analytic force
//
// FromExpression builds a system from an algebraic Hamiltonian instead.
package systems
