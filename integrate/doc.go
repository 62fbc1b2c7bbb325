// Package integrate provides the quadrature behind every numeric
// normalization in fitgraph: fixed-order Gauss–Legendre rules over
// interval unions, in both a float64 flavor and a dual-number flavor
// that shares the exact same nodes.
//
// 🚀 Why Gauss–Legendre?
//
//	Exact for polynomials of degree ≤ 2n−1 and spectrally convergent for
//	smooth integrands — every primitive density in pdf is smooth on a
//	closed interval. Crucially, the node and weight selection depends
//	only on the interval and the order, never on parameter values, so
//	the rule commutes with differentiation: d/dθ Σ wᵢ f(xᵢ; θ) equals
//	Σ wᵢ ∂f/∂θ(xᵢ) exactly, at the discrete level. That property is
//	what makes gradient evaluation through a numeric normalization
//	trustworthy.
//
// Adaptive refinement doubles the order until two successive estimates
// agree within Tol (relative, floored at absolute Tol) or MaxOrder is
// reached. Refinement is a float64-only convenience; the dual path uses
// the fixed order so differentiation never changes the rule.
//
// The float64 path delegates to gonum's integrate/quad (with optional
// concurrent evaluation); interval unions fan out across goroutines
// via errgroup.
//
// Defaults: Order 64, MaxOrder 512, Tol 1e-10, Parallel on.
//
// Errors:
//
//	ErrBadOrder         - non-positive quadrature order.
//	ErrInfiniteInterval - quadrature over an unbounded interval; register
//	                      an analytic normalization for such domains.
package integrate
