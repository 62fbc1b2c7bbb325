package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fitgraph/dataset"
	"github.com/katalvlaran/fitgraph/space"
)

// TestNew_Validation covers empty input, out-of-space points and
// mismatched weight vectors.
func TestNew_Validation(t *testing.T) {
	sp := space.MustInterval1D("x", 0, 1)

	_, err := dataset.New(sp, nil)
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)

	_, err = dataset.New(sp, []dataset.Point{{"x": 2}})
	assert.ErrorIs(t, err, dataset.ErrPointOutsideSpace)

	_, err = dataset.New(sp, []dataset.Point{{"x": 0.5}}, dataset.WithWeights([]float64{1, 2}))
	assert.ErrorIs(t, err, dataset.ErrWeightLength)
}

// TestUnweighted_DefaultWeight verifies every event weighs one when no
// weight vector was supplied.
func TestUnweighted_DefaultWeight(t *testing.T) {
	sp := space.MustInterval1D("x", 0, 1)
	d, err := dataset.FromColumn(sp, "x", []float64{0.1, 0.2, 0.3})
	require.NoError(t, err)

	assert.False(t, d.Weighted())
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, 1.0, d.Weight(1))
	assert.InDelta(t, 3.0, d.SumWeights(), 1e-15)
}

// TestWeighted_SumWeights verifies per-event weights round-trip and sum.
func TestWeighted_SumWeights(t *testing.T) {
	sp := space.MustInterval1D("x", 0, 1)
	d, err := dataset.FromColumn(sp, "x", []float64{0.1, 0.2}, dataset.WithWeights([]float64{0.5, 2.5}))
	require.NoError(t, err)

	assert.True(t, d.Weighted())
	assert.Equal(t, 0.5, d.Weight(0))
	assert.InDelta(t, 3.0, d.SumWeights(), 1e-15)
}

// TestColumn_Extraction verifies per-axis extraction and the
// unknown-column error.
func TestColumn_Extraction(t *testing.T) {
	xy, err := space.MustInterval1D("x", 0, 1).Combine(space.MustInterval1D("y", 0, 10))
	require.NoError(t, err)

	d, err := dataset.New(xy, []dataset.Point{{"x": 0.1, "y": 4}, {"x": 0.9, "y": 7}})
	require.NoError(t, err)

	ys, err := d.Column("y")
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 7}, ys)

	_, err = d.Column("z")
	assert.ErrorIs(t, err, dataset.ErrUnknownColumn)
}

// TestImmutability_CopiesInput verifies mutating the caller's slices
// after construction does not leak into the dataset.
func TestImmutability_CopiesInput(t *testing.T) {
	sp := space.MustInterval1D("x", 0, 1)
	pts := []dataset.Point{{"x": 0.5}}
	d, err := dataset.New(sp, pts)
	require.NoError(t, err)

	pts[0]["x"] = 0.9
	assert.Equal(t, 0.5, d.At(0)["x"])
}

// TestNewBinned_Validation covers edge monotonicity, count length and
// variance length.
func TestNewBinned_Validation(t *testing.T) {
	_, err := dataset.NewBinned("x", []float64{0, 1}, nil)
	assert.ErrorIs(t, err, dataset.ErrBadBinning, "zero bins must fail")

	_, err = dataset.NewBinned("x", []float64{0, 2, 1}, []float64{1, 2})
	assert.ErrorIs(t, err, dataset.ErrBadBinning, "non-increasing edges must fail")

	_, err = dataset.NewBinned("x", []float64{0, 1, 2}, []float64{1})
	assert.ErrorIs(t, err, dataset.ErrBadBinning, "counts must be len(edges)-1")
}

// TestBinned_Accessors verifies counts, edges, totals and the Poisson
// variance default of max(count, 1).
func TestBinned_Accessors(t *testing.T) {
	h, err := dataset.NewBinned("x", []float64{0, 1, 2, 3}, []float64{4, 0, 9})
	require.NoError(t, err)

	assert.Equal(t, "x", h.Axis())
	assert.Equal(t, 3, h.Bins())

	lo, hi := h.Edges(1)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 2.0, hi)

	assert.Equal(t, 4.0, h.Variance(0))
	assert.Equal(t, 1.0, h.Variance(1), "empty bin falls back to unit variance")
	assert.InDelta(t, 13.0, h.Total(), 1e-15)
}

// TestBinned_ExplicitVariances verifies a supplied variance vector
// overrides the Poisson default.
func TestBinned_ExplicitVariances(t *testing.T) {
	h, err := dataset.NewBinned("x", []float64{0, 1, 2}, []float64{4, 9},
		dataset.WithVariances([]float64{2, 3}))
	require.NoError(t, err)

	assert.Equal(t, 2.0, h.Variance(0))
	assert.Equal(t, 3.0, h.Variance(1))
}
