// Package space models the domain a PDF is normalized and evaluated over:
// an ordered set of named axes, each carrying a sorted union of disjoint
// closed intervals.
//
// 🚀 What is a Space?
//
//	The answer to "over what range is this density a probability?".
//	Every normalization, every likelihood range and every dataset binding
//	in fitgraph is expressed against a Space.
//
// ✨ Key guarantees:
//   - Immutable — a Space never changes after construction; Combine and
//     Project return new values, so Spaces are safe to alias freely.
//   - Validated at construction — overlapping intervals, duplicate axes
//     and zero-length domains fail fast with sentinel errors, never at
//     evaluation time.
//   - Identity-keyed — Key() yields a canonical string used by the
//     normalization cache, so equal domains hit the same cache entries.
//
// ⚙️ Usage:
//
//	obs, err := space.NewInterval1D("x", -20, 20)
//	xy, err  := obs.Combine(space.MustInterval1D("y", 0, 1))
//	xy.Contains(map[string]float64{"x": 3, "y": 0.5}) // true
//	xy.Area()                                          // 40
//
// Errors:
//
//	ErrNoAxes               - a Space needs at least one axis.
//	ErrDuplicateAxis        - the same axis name given twice.
//	ErrInvalidInterval      - interval with Lo > Hi, or a NaN endpoint.
//	ErrDegenerateSpace      - an axis whose total length is zero.
//	ErrOverlappingIntervals - intervals on one axis intersect or touch.
//	ErrAxisConflict         - Combine saw one axis with two different domains.
//	ErrUnknownAxis          - Project asked for an axis the Space lacks.
package space
