// Package dual provides the forward-mode automatic-differentiation scalar
// used throughout fitgraph's density, normalization and loss computations.
//
// 🚀 What is a dual number?
//
//	A pair (v, v′) propagated through arithmetic so that after evaluating
//	f over inputs seeded with v′=1 on exactly one variable, the result
//	carries both f(x) and ∂f/∂x — no tracing runtime, no tape, just
//	ordinary function calls.
//
// The type itself is gonum's num/dual.Number; this package re-exports the
// operations the density code needs under one import and fills the gaps
// gonum leaves open (Erf for Gaussian CDFs, variadic sums, division).
//
// ⚙️ Usage:
//
//	x := dual.Var(2.0)          // seeded: derivative flows from here
//	c := dual.Const(3.0)        // constant: zero derivative
//	y := dual.Mul(x, dual.Exp(dual.Neg(x)))
//	_ = y.Real                  // value
//	_ = y.Emag                  // derivative with respect to x
//
// Why forward mode? Fit models carry tens of parameters, densities are
// scalar, and quadrature differentiates correctly only when the rule is
// independent of the seeded parameter — all of which forward mode gives
// for free, one sweep per parameter.
package dual
