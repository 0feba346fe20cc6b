// Package algebra is a small computer algebra kernel for polynomial and
// elementary-function expressions over exact rationals.
//
// Expressions are immutable trees of:
//   - Num: exact rational constant (math/big.Rat)
//   - Sym: named symbol
//   - Add, Mul: n-ary sum and product
//   - Pow: base raised to an exponent
//   - Func: sin, cos, tan, exp, log applied to one argument
//
// Every constructor returns a canonical form: products and positive integer
// powers of sums are expanded, equal factors merge into powers, and like
// terms are collected with exact coefficients. Two expressions are equal
// exactly when their canonical forms print identically, so
//
//	algebra.IsZero(algebra.Minus(a, b))
//
// is a sound equality test for the expressions this package can build.
//
// Derivatives, substitution, evaluation and compilation to float64 closures
// operate on these canonical trees:
//
//	h, _ := algebra.Parse("p^2/2 + q^2/2")
//	dq := algebra.Diff(h, "p") // p
//	f, _ := algebra.Compile([]algebra.Expr{dq}, []string{"q", "p"})
package algebra
