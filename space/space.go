package space

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Sentinel errors for space construction and composition.
var (
	// ErrNoAxes indicates a Space was requested with no axes at all.
	ErrNoAxes = errors.New("space: at least one axis required")

	// ErrDuplicateAxis indicates the same axis name appeared twice in one Space.
	ErrDuplicateAxis = errors.New("space: duplicate axis name")

	// ErrInvalidInterval indicates an interval with Lo > Hi or a NaN endpoint.
	ErrInvalidInterval = errors.New("space: invalid interval")

	// ErrDegenerateSpace indicates an axis whose total interval length is zero.
	ErrDegenerateSpace = errors.New("space: degenerate (zero-length) axis")

	// ErrOverlappingIntervals indicates intervals on one axis that intersect
	// or share an endpoint; unions must be strictly disjoint.
	ErrOverlappingIntervals = errors.New("space: overlapping intervals on axis")

	// ErrAxisConflict indicates Combine saw the same axis name with two
	// different interval sets.
	ErrAxisConflict = errors.New("space: axis defined with conflicting intervals")

	// ErrUnknownAxis indicates a projection onto an axis the Space lacks.
	ErrUnknownAxis = errors.New("space: unknown axis")
)

// Interval is a closed interval [Lo, Hi] on one axis.
// Either endpoint may be infinite.
type Interval struct {
	Lo, Hi float64
}

// Length returns Hi - Lo (possibly +Inf).
func (iv Interval) Length() float64 { return iv.Hi - iv.Lo }

// Contains reports whether x lies in [Lo, Hi].
func (iv Interval) Contains(x float64) bool { return x >= iv.Lo && x <= iv.Hi }

// Finite reports whether both endpoints are finite.
func (iv Interval) Finite() bool {
	return !math.IsInf(iv.Lo, 0) && !math.IsInf(iv.Hi, 0)
}

// Axis is a named axis with a sorted union of disjoint closed intervals.
type Axis struct {
	name      string
	intervals []Interval
}

// NewAxis builds a validated axis. Intervals are sorted by lower bound and
// must be pairwise disjoint (sharing an endpoint counts as overlap).
func NewAxis(name string, intervals ...Interval) (Axis, error) {
	if name == "" {
		return Axis{}, fmt.Errorf("%w: empty axis name", ErrUnknownAxis)
	}
	if len(intervals) == 0 {
		return Axis{}, fmt.Errorf("%w: axis %q has no intervals", ErrInvalidInterval, name)
	}
	ivs := make([]Interval, len(intervals))
	copy(ivs, intervals)
	total := 0.0
	for _, iv := range ivs {
		if math.IsNaN(iv.Lo) || math.IsNaN(iv.Hi) || iv.Lo > iv.Hi {
			return Axis{}, fmt.Errorf("%w: [%g, %g] on axis %q", ErrInvalidInterval, iv.Lo, iv.Hi, name)
		}
		total += iv.Length()
	}
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].Lo < ivs[j].Lo })
	for i := 1; i < len(ivs); i++ {
		if ivs[i].Lo <= ivs[i-1].Hi {
			return Axis{}, fmt.Errorf("%w: %q", ErrOverlappingIntervals, name)
		}
	}
	if total == 0 {
		return Axis{}, fmt.Errorf("%w: %q", ErrDegenerateSpace, name)
	}
	return Axis{name: name, intervals: ivs}, nil
}

// Name returns the axis name.
func (a Axis) Name() string { return a.name }

// Intervals returns a copy of the axis's interval union.
func (a Axis) Intervals() []Interval {
	out := make([]Interval, len(a.intervals))
	copy(out, a.intervals)
	return out
}

// Length returns the summed length of the axis's intervals.
func (a Axis) Length() float64 {
	total := 0.0
	for _, iv := range a.intervals {
		total += iv.Length()
	}
	return total
}

// Contains reports whether x falls inside the axis's interval union.
func (a Axis) Contains(x float64) bool {
	for _, iv := range a.intervals {
		if iv.Contains(x) {
			return true
		}
	}
	return false
}

// Hull returns the single interval spanning the whole axis.
func (a Axis) Hull() Interval {
	return Interval{Lo: a.intervals[0].Lo, Hi: a.intervals[len(a.intervals)-1].Hi}
}

// Finite reports whether every interval endpoint on the axis is finite.
func (a Axis) Finite() bool {
	for _, iv := range a.intervals {
		if !iv.Finite() {
			return false
		}
	}
	return true
}

func (a Axis) key() string {
	var b strings.Builder
	b.WriteString(a.name)
	for _, iv := range a.intervals {
		b.WriteByte('[')
		b.WriteString(strconv.FormatFloat(iv.Lo, 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(iv.Hi, 'g', -1, 64))
		b.WriteByte(']')
	}
	return b.String()
}

// equal reports interval-set equality with another axis of the same name.
func (a Axis) equal(b Axis) bool { return a.key() == b.key() }

// Space is an immutable, ordered set of named axes. The zero Space is
// invalid; construct via New, NewInterval1D or Combine.
type Space struct {
	axes []Axis
	key  string
}

// New builds a Space from validated axes. Axis order is preserved as given.
func New(axes ...Axis) (Space, error) {
	if len(axes) == 0 {
		return Space{}, ErrNoAxes
	}
	seen := make(map[string]struct{}, len(axes))
	own := make([]Axis, len(axes))
	copy(own, axes)
	for _, a := range own {
		if a.name == "" {
			return Space{}, fmt.Errorf("%w: unconstructed axis", ErrInvalidInterval)
		}
		if _, dup := seen[a.name]; dup {
			return Space{}, fmt.Errorf("%w: %q", ErrDuplicateAxis, a.name)
		}
		seen[a.name] = struct{}{}
	}
	return Space{axes: own, key: buildKey(own)}, nil
}

// NewInterval1D builds a one-axis Space over the closed interval [lo, hi].
func NewInterval1D(name string, lo, hi float64) (Space, error) {
	a, err := NewAxis(name, Interval{Lo: lo, Hi: hi})
	if err != nil {
		return Space{}, err
	}
	return New(a)
}

// MustInterval1D is NewInterval1D that panics on error; intended for
// tests and examples with literal bounds.
func MustInterval1D(name string, lo, hi float64) Space {
	s, err := NewInterval1D(name, lo, hi)
	if err != nil {
		panic(err)
	}
	return s
}

func buildKey(axes []Axis) string {
	parts := make([]string, len(axes))
	for i, a := range axes {
		parts[i] = a.key()
	}
	return strings.Join(parts, ";")
}

// Dim returns the number of axes.
func (s Space) Dim() int { return len(s.axes) }

// Axes returns a copy of the Space's axes in declaration order.
func (s Space) Axes() []Axis {
	out := make([]Axis, len(s.axes))
	copy(out, s.axes)
	return out
}

// Axis returns the named axis, if present.
func (s Space) Axis(name string) (Axis, bool) {
	for _, a := range s.axes {
		if a.name == name {
			return a, true
		}
	}
	return Axis{}, false
}

// AxisNames returns the axis names in declaration order.
func (s Space) AxisNames() []string {
	out := make([]string, len(s.axes))
	for i, a := range s.axes {
		out[i] = a.name
	}
	return out
}

// Key returns the canonical identity string of the Space.
// Two Spaces with identical axes (names, order, intervals) share a Key;
// the normalization cache keys on it.
func (s Space) Key() string { return s.key }

// Equal reports whether the two Spaces describe the identical domain.
func (s Space) Equal(o Space) bool { return s.key == o.key }

// Combine builds the Cartesian product of the two Spaces' axis sets.
// An axis present in both must carry identical intervals (it is kept
// once); differing intervals fail with ErrAxisConflict.
func (s Space) Combine(o Space) (Space, error) {
	merged := make([]Axis, 0, len(s.axes)+len(o.axes))
	merged = append(merged, s.axes...)
	for _, b := range o.axes {
		if a, ok := s.Axis(b.name); ok {
			if !a.equal(b) {
				return Space{}, fmt.Errorf("%w: %q", ErrAxisConflict, b.name)
			}
			continue
		}
		merged = append(merged, b)
	}
	return New(merged...)
}

// Project returns the sub-Space holding exactly the named axes, in the
// requested order. Unknown names fail with ErrUnknownAxis.
func (s Space) Project(names ...string) (Space, error) {
	if len(names) == 0 {
		return Space{}, ErrNoAxes
	}
	axes := make([]Axis, 0, len(names))
	for _, n := range names {
		a, ok := s.Axis(n)
		if !ok {
			return Space{}, fmt.Errorf("%w: %q", ErrUnknownAxis, n)
		}
		axes = append(axes, a)
	}
	return New(axes...)
}

// Contains reports whether every axis coordinate of pt falls inside that
// axis's interval union. Points missing a coordinate are outside.
func (s Space) Contains(pt map[string]float64) bool {
	for _, a := range s.axes {
		x, ok := pt[a.name]
		if !ok || !a.Contains(x) {
			return false
		}
	}
	return true
}

// Area returns the product over axes of each axis's total interval
// length. Construction guarantees a positive result; infinite axes give
// +Inf.
func (s Space) Area() float64 {
	area := 1.0
	for _, a := range s.axes {
		area *= a.Length()
	}
	return area
}

// Finite reports whether every interval on every axis is bounded —
// a precondition for numerical integration.
func (s Space) Finite() bool {
	for _, a := range s.axes {
		if !a.Finite() {
			return false
		}
	}
	return true
}
