package dataset

import (
	"errors"
	"fmt"
	"math"
)

// ErrBadBinning indicates invalid histogram structure: fewer than two
// edges, unsorted edges, or a counts/variances length mismatch.
var ErrBadBinning = errors.New("dataset: bad binning")

// Binned is an immutable 1-D histogram over one axis, for chi-square
// losses: n bins need n+1 strictly increasing edges and n counts.
type Binned struct {
	axis      string
	edges     []float64
	counts    []float64
	variances []float64 // nil → Poisson default max(count, 1)
}

// BinnedOption configures Binned construction.
type BinnedOption func(*Binned)

// WithVariances overrides the default Poisson per-bin variances.
func WithVariances(v []float64) BinnedOption {
	return func(b *Binned) { b.variances = v }
}

// NewBinned builds a validated histogram over the named axis.
func NewBinned(axis string, edges, counts []float64, opts ...BinnedOption) (*Binned, error) {
	if axis == "" {
		return nil, fmt.Errorf("%w: empty axis", ErrBadBinning)
	}
	if len(edges) < 2 || len(counts) != len(edges)-1 {
		return nil, fmt.Errorf("%w: %d edges, %d counts", ErrBadBinning, len(edges), len(counts))
	}
	for i := 1; i < len(edges); i++ {
		if !(edges[i] > edges[i-1]) {
			return nil, fmt.Errorf("%w: edges not strictly increasing at %d", ErrBadBinning, i)
		}
	}
	for i, c := range counts {
		if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
			return nil, fmt.Errorf("%w: count %d is %g", ErrBadBinning, i, c)
		}
	}
	b := &Binned{
		axis:   axis,
		edges:  append([]float64(nil), edges...),
		counts: append([]float64(nil), counts...),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.variances != nil {
		if len(b.variances) != len(b.counts) {
			return nil, fmt.Errorf("%w: %d variances for %d bins", ErrBadBinning, len(b.variances), len(b.counts))
		}
		own := append([]float64(nil), b.variances...)
		for i, v := range own {
			if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
				return nil, fmt.Errorf("%w: variance %d is %g", ErrBadBinning, i, v)
			}
		}
		b.variances = own
	}
	return b, nil
}

// Axis returns the histogram's axis name.
func (b *Binned) Axis() string { return b.axis }

// Bins returns the number of bins.
func (b *Binned) Bins() int { return len(b.counts) }

// Edges returns the i-th bin's [lo, hi) edges.
func (b *Binned) Edges(i int) (lo, hi float64) { return b.edges[i], b.edges[i+1] }

// Count returns the i-th bin content.
func (b *Binned) Count(i int) float64 { return b.counts[i] }

// Variance returns the i-th bin variance: the supplied one, or the
// Poisson default max(count, 1).
func (b *Binned) Variance(i int) float64 {
	if b.variances != nil {
		return b.variances[i]
	}
	return math.Max(b.counts[i], 1)
}

// Total returns the summed bin contents.
func (b *Binned) Total() float64 {
	total := 0.0
	for _, c := range b.counts {
		total += c
	}
	return total
}
