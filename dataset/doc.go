// Package dataset binds observed data to a Space. The core treats data
// as an opaque ordered sequence of points (axis name → coordinate) plus
// optional per-point weights; reading files and wrangling formats is a
// job for external collaborators.
//
// Two containers are provided:
//
//   - Dataset — unbinned points for likelihood fits. Every point must lie
//     inside the binding Space; weights, when given, must match the point
//     count. Both are checked at construction.
//   - Binned  — a 1-D histogram (bin edges, counts, optional variances)
//     for chi-square fits.
//
// ⚙️ Usage:
//
//	obs := space.MustInterval1D("x", -20, 20)
//	ds, err := dataset.FromColumn(obs, "x", samples)
//	ds, err  = dataset.FromColumn(obs, "x", samples, dataset.WithWeights(w))
//
// Errors:
//
//	ErrEmptyDataset      - no points given.
//	ErrPointOutsideSpace - a point falls outside the binding Space.
//	ErrWeightLength      - len(weights) != number of points, or a
//	                       non-finite/negative weight.
//	ErrBadBinning        - fewer than two edges, unsorted edges, or a
//	                       count/variance length mismatch.
package dataset
