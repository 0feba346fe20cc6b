// Package compiler turns a declarative system definition into a
// hamiltonian.System.
//
// A Definition names its generalized coordinates and supplies kinetic and
// potential energy functions that read values by name:
//
//	def := compiler.Definition{
//		Name:        "pendulum",
//		Coordinates: []string{"theta"},
//		Potential: func(q compiler.Coords) float64 {
//			return -q.Param("g") * math.Cos(q.Get("theta"))
//		},
//		Params: map[string]float64{"g": 9.81},
//	}
//	sys, err := compiler.Compile(def)
//
// Coordinate x has the same index in q and p; its momentum is addressed as
// "px". Name lookups go through a Layout built once at compile time, and
// hot paths can resolve a Ref up front and use At instead of Get.
//
// Compile evaluates every energy function at a handful of fixed states,
// starting with the origin. Any name the functions ask for that the layout
// or parameter set does not define is reported then as a configuration
// error.
package compiler
