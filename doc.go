// Package fitgraph is your in-memory toolkit for declaring parametric
// probability density functions, composing them, and fitting them to data —
// from single-Gaussian fits to simultaneous multi-channel likelihoods.
//
// 🚀 What is fitgraph?
//
//	A model-fitting core for statistical data analysis that brings together:
//		• Parameters: named, bounded scalars shared across a whole model graph
//		• Spaces: immutable, multi-axis domains with disjoint interval unions
//		• PDFs: analytic primitives (Gauss, Exponential, Uniform, Chebyshev)
//		• Combinators: fraction/yield sums, independent products, convolutions
//		• Normalization: analytic where registered, Gauss–Legendre elsewhere,
//		  memoized process-wide and invalidated eagerly on parameter change
//		• Losses: unbinned/extended likelihoods, chi-square, constraints,
//		  simultaneous fits — with dual-number gradients built in
//		• A thin adapter handing value+gradient to gonum/optimize
//
// ✨ Why choose fitgraph?
//
//   - Strict error contracts – sentinel errors for every failure mode,
//     no silent clamping, no poisoned objectives
//   - Rock-solid caching – a normalization is never observably stale
//   - Single-writer/many-reader – evaluate concurrently between updates
//   - Differentiable by construction – quadrature nodes never depend on
//     the parameters being differentiated
//
// Everything is organized under flat subpackages:
//
//	param/     — parameters, dependents, the invalidation registry
//	space/     — axes, intervals, Cartesian combination, areas
//	dataset/   — point sequences, weights, binned histograms
//	dual/      — forward-mode dual-number scalar algebra
//	integrate/ — fixed and adaptive Gauss–Legendre quadrature
//	pdf/       — model nodes, combinators, the normalization engine
//	loss/      — likelihoods, chi-square, constraints, gradients
//	minimize/  — the gonum/optimize bridge
//
// Quick sketch of a fit:
//
//	mu, _ := param.New("mu", 1.0, -1, 3)
//	sigma, _ := param.New("sigma", 4.0, 0.1, 10)
//	obs, _ := space.NewInterval1D("x", -20, 20)
//	gauss, _ := pdf.NewGauss("g", mu, sigma, obs)
//	nll, _ := loss.NewUnbinnedNLL(gauss, data, obs)
//	res, _ := minimize.Run(nll)
//
// Dive into examples/ for complete, runnable fits.
package fitgraph
