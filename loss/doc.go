// Package loss turns (model, dataset, range) triples into the scalar
// objective an external minimizer drives, with gradients computed by
// dual-number sweeps through the same density and normalization code
// that produces the value.
//
// 🚀 Available losses:
//
//	UnbinnedNLL          — per-point −Σ wᵢ·log pdf(xᵢ)
//	ExtendedUnbinnedNLL  — adds the yield term ν − W·log ν
//	Chi2                 — binned Σ (nᵢ − νᵢ)² / σᵢ²
//	Simple               — a user closure over declared parameters
//
// Losses compose: Add merges two likelihoods into one simultaneous fit
// (their parameter sets may overlap — shared parameters are fit
// jointly), and Gaussian constraints attach prior penalties on single
// parameters. Adding a Simple loss is ambiguous (whose data? whose
// ranges?) and fails with ErrIncompatibleLoss, matching the intent
// checks upstream fitters perform.
//
// Evaluation contract (what a minimizer sees):
//
//	Value()            — deterministic for the current parameter values;
//	                     fails with ErrNonFiniteLoss the moment any term
//	                     goes NaN/Inf, never poisoning the objective
//	                     silently.
//	Gradient(params…)  — ∂loss/∂p for each requested (default: every
//	                     floating) parameter, one forward-mode sweep per
//	                     parameter, reproducible because quadrature
//	                     nodes never depend on the seeded parameter.
//
// Pairs evaluate concurrently (errgroup) — safe because evaluation
// mutates nothing; the single-writer epoch discipline lives with the
// caller.
//
// Errors:
//
//	ErrNonFiniteLoss    - a loss term evaluated to NaN or ±Inf.
//	ErrNotExtended      - extended NLL over a model without a yield.
//	ErrIncompatibleLoss - Add over losses that cannot merge.
//	ErrBadConstraint    - constraint with non-positive width.
package loss
