// Package param provides the mutable scalars a fit drives: independent
// Parameters with bounds, Dependents computed from other parameters, and
// the process-wide invalidation registry that keeps normalization caches
// honest.
//
// 🚀 What is a Parameter?
//
//	The single source of truth for one fit variable. Many model nodes may
//	reference the same *Parameter; the minimizer mutates it through
//	SetValue; everything downstream observes the new value immediately.
//
// ✨ Key guarantees:
//   - Bounds are law — SetValue outside [lower, upper] fails with
//     ErrOutOfBounds and leaves the prior value untouched; values are
//     never silently clamped.
//   - Dependents are always live — Value recomputes from upstream every
//     call, never caching across an upstream change.
//   - No cycles — NewDependent walks the upstream closure and fails with
//     ErrCyclicDependency at construction, not at evaluation.
//   - Eager invalidation — SetValue synchronously notifies every
//     subscribed Observer before returning, so a cache keyed on this
//     parameter can never serve a stale entry.
//
// Concurrency: the engine assumes a single writer (the minimizer loop)
// and many readers between writes. Value/Dual reads are guarded so that
// concurrent read-only evaluation is race-free.
//
// Errors:
//
//	ErrEmptyName         - parameter name is the empty string.
//	ErrInvalidBounds     - lower > upper, or initial value outside bounds.
//	ErrOutOfBounds       - SetValue outside [lower, upper].
//	ErrCyclicDependency  - dependent-parameter reference cycle.
package param
