package dataset

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/fitgraph/space"
)

// Sentinel errors for dataset construction.
var (
	// ErrEmptyDataset indicates a dataset with no points.
	ErrEmptyDataset = errors.New("dataset: no points")

	// ErrPointOutsideSpace indicates a point outside the binding Space.
	ErrPointOutsideSpace = errors.New("dataset: point outside space")

	// ErrWeightLength indicates a weights slice whose length does not
	// match the point count, or a negative/non-finite weight.
	ErrWeightLength = errors.New("dataset: bad weights")

	// ErrUnknownColumn indicates a Column request for an axis the
	// dataset's Space lacks.
	ErrUnknownColumn = errors.New("dataset: unknown column")
)

// Point maps axis names to coordinates.
type Point map[string]float64

// Option configures Dataset construction.
type Option func(*options)

type options struct {
	weights []float64
}

// WithWeights attaches one non-negative finite weight per point.
func WithWeights(w []float64) Option {
	return func(o *options) { o.weights = w }
}

// Dataset is an immutable ordered sequence of points bound to a Space.
type Dataset struct {
	sp      space.Space
	points  []Point
	weights []float64 // nil when unweighted
}

// New binds points to sp. Points and weights are copied; every point
// must lie inside sp.
func New(sp space.Space, points []Point, opts ...Option) (*Dataset, error) {
	if len(points) == 0 {
		return nil, ErrEmptyDataset
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	own := make([]Point, len(points))
	for i, pt := range points {
		if !sp.Contains(pt) {
			return nil, fmt.Errorf("%w: point %d", ErrPointOutsideSpace, i)
		}
		cp := make(Point, len(pt))
		for k, v := range pt {
			cp[k] = v
		}
		own[i] = cp
	}
	var weights []float64
	if o.weights != nil {
		if len(o.weights) != len(points) {
			return nil, fmt.Errorf("%w: %d weights for %d points", ErrWeightLength, len(o.weights), len(points))
		}
		weights = make([]float64, len(o.weights))
		for i, w := range o.weights {
			if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
				return nil, fmt.Errorf("%w: weight %d is %g", ErrWeightLength, i, w)
			}
			weights[i] = w
		}
	}
	return &Dataset{sp: sp, points: own, weights: weights}, nil
}

// FromColumn builds a 1-D dataset over the named axis from raw values —
// the common case of fitting a single observable.
func FromColumn(sp space.Space, axis string, values []float64, opts ...Option) (*Dataset, error) {
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{axis: v}
	}
	return New(sp, points, opts...)
}

// Len returns the number of points.
func (d *Dataset) Len() int { return len(d.points) }

// At returns the i-th point. The returned map must not be mutated.
func (d *Dataset) At(i int) Point { return d.points[i] }

// Weighted reports whether per-point weights were attached.
func (d *Dataset) Weighted() bool { return d.weights != nil }

// Weight returns the i-th weight, 1 for unweighted datasets.
func (d *Dataset) Weight(i int) float64 {
	if d.weights == nil {
		return 1
	}
	return d.weights[i]
}

// SumWeights returns the total weight (the point count when unweighted).
func (d *Dataset) SumWeights() float64 {
	if d.weights == nil {
		return float64(len(d.points))
	}
	total := 0.0
	for _, w := range d.weights {
		total += w
	}
	return total
}

// Space returns the binding Space.
func (d *Dataset) Space() space.Space { return d.sp }

// Column extracts one axis's coordinates across all points.
func (d *Dataset) Column(axis string) ([]float64, error) {
	if _, ok := d.sp.Axis(axis); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, axis)
	}
	out := make([]float64, len(d.points))
	for i, pt := range d.points {
		out[i] = pt[axis]
	}
	return out, nil
}
