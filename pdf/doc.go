// Package pdf is the model-composition and evaluation engine: a DAG of
// density nodes — analytic primitives at the leaves, combinators above
// them — with a lazy, cached, eagerly-invalidated normalization layer.
//
// 🚀 The model graph
//
//	Leaves:       Gauss, Exponential, Uniform, Chebyshev, Primitive (bring
//	              your own density)
//	Combinators:  Sum (fractions, implicit remainder), ExtendedSum and
//	              Extend (absolute yields), Product (disjoint axes),
//	              Convolution (shared axis)
//
// Every node exposes the same capability set (the Model interface):
// an unnormalized density, its dual-number counterpart for gradients,
// and a normalization over any requested Space. Nodes are stateless —
// all mutable state lives in Parameters and in the normalization cache.
//
// ✨ Normalization resolution order:
//  1. the node's own composite formula (Sum: weighted child norms,
//     Product: product of child projections);
//  2. a registered analytic formula for the node's kind (Gauss and
//     Exponential ship CDF-difference integrals, Uniform the area);
//  3. adaptive Gauss–Legendre quadrature over the Space's intervals.
//
// Results are memoized process-wide, keyed on (node identity, parameter
// snapshot, Space identity). Parameter.SetValue invalidates every entry
// depending on that parameter before it returns; since the snapshot is
// part of the key, a stale normalization is unobservable even in
// principle. Gradient sweeps (seeded duals) bypass the cache — a cached
// float carries no derivative.
//
// ⚙️ Usage:
//
//	obs := space.MustInterval1D("x", -10, 10)
//	sig, _ := pdf.NewGauss("sig", mu, sigma, obs)
//	bkg, _ := pdf.NewExponential("bkg", slope, obs)
//	model, _ := pdf.NewSum("model", []pdf.Model{sig, bkg}, []param.Var{frac})
//	p, err := model.PDF(dataset.Point{"x": 1.2}, obs)
//
// Errors:
//
//	ErrNormalization - normalization is zero, negative or non-finite.
//	ErrFractionSum   - non-extended fractions sum past unity (tol 1e-9).
//	ErrFractionCount - need n or n-1 fractions for n children.
//	ErrAxisOverlap   - product children share an axis.
//	ErrAxisMismatch  - convolution operands not on one shared axis.
//	ErrSpaceMismatch - sum children defined over different spaces.
//	ErrNoChildren    - combinator with fewer than two children.
//	ErrNilVar        - nil parameter or child handed to a constructor.
package pdf
