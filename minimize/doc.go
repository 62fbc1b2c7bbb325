// Package minimize bridges a fitgraph loss to gonum/optimize. The core
// deliberately ships no optimization algorithm of its own — the loss
// exposes Value and Gradient, gonum proposes parameter points, and this
// package translates between the two worlds:
//
//   - free parameters become the optimizer's coordinate vector;
//   - out-of-bounds proposals return +Inf so line searches back off
//     (bounds are never silently clamped);
//   - loss evaluation errors surface as +Inf to the optimizer and as the
//     recorded error to the caller — the minimizer owns retry policy;
//   - the optimum is written back through SetValue and snapshotted as
//     (name, value, bounds) triples for external persistence.
//
// ⚙️ Usage:
//
//	res, err := minimize.Run(nll)
//	res, err  = minimize.Run(nll, minimize.WithMethod(&optimize.NelderMead{}))
//	for _, s := range res.Params { fmt.Println(s.Name, s.Value) }
package minimize
