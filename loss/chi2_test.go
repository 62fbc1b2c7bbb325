package loss_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fitgraph/dataset"
	"github.com/katalvlaran/fitgraph/loss"
	"github.com/katalvlaran/fitgraph/param"
	"github.com/katalvlaran/fitgraph/pdf"
	"github.com/katalvlaran/fitgraph/space"
)

// TestChi2_PerfectFitIsZero verifies a flat model over evenly filled
// bins scores zero.
func TestChi2_PerfectFitIsZero(t *testing.T) {
	pdf.ResetCache()
	sp := space.MustInterval1D("x", 0, 2)
	u, err := pdf.NewUniform("flat", sp)
	require.NoError(t, err)

	h, err := dataset.NewBinned("x", []float64{0, 1, 2}, []float64{50, 50})
	require.NoError(t, err)

	c, err := loss.NewChi2(u, h, space.Space{})
	require.NoError(t, err)

	v, err := c.Value()
	require.NoError(t, err)
	assert.InDelta(t, 0.0, v, 1e-9)
}

// TestChi2_HandComputedResiduals checks the Pearson sum against a hand
// computation: flat prediction 50/50 against counts 40/60.
func TestChi2_HandComputedResiduals(t *testing.T) {
	pdf.ResetCache()
	sp := space.MustInterval1D("x", 0, 2)
	u, err := pdf.NewUniform("flat", sp)
	require.NoError(t, err)

	h, err := dataset.NewBinned("x", []float64{0, 1, 2}, []float64{40, 60})
	require.NoError(t, err)

	c, err := loss.NewChi2(u, h, space.Space{})
	require.NoError(t, err)

	v, err := c.Value()
	require.NoError(t, err)
	// (40−50)²/40 + (60−50)²/60 with Poisson variances.
	want := 100.0/40 + 100.0/60
	assert.InDelta(t, want, v, 1e-9)
}

// TestChi2_ExtendedYieldScalesPrediction verifies an attached yield
// replaces the histogram total as the predicted event count.
func TestChi2_ExtendedYieldScalesPrediction(t *testing.T) {
	pdf.ResetCache()
	sp := space.MustInterval1D("x", 0, 2)
	u, err := pdf.NewUniform("flat", sp)
	require.NoError(t, err)
	yield := param.MustNew("n_tot", 120, 0, 1e6)
	em, err := pdf.Extend(u, yield)
	require.NoError(t, err)

	h, err := dataset.NewBinned("x", []float64{0, 1, 2}, []float64{50, 50})
	require.NoError(t, err)

	c, err := loss.NewChi2(em, h, space.Space{})
	require.NoError(t, err)

	v, err := c.Value()
	require.NoError(t, err)
	// Prediction 60 per bin against 50 observed: 2·(−10)²/50.
	assert.InDelta(t, 4.0, v, 1e-9)
}

// TestChi2_GradientMatchesFiniteDifference cross-checks the propagated
// gradient of a Gaussian-over-histogram chi-square.
func TestChi2_GradientMatchesFiniteDifference(t *testing.T) {
	pdf.ResetCache()
	sp := space.MustInterval1D("x", -3, 3)
	mu := param.MustNew("c2_mu", 0.2, -3, 3)
	sigma := param.MustNew("c2_sigma", 1.1, 0.1, 10)
	g, err := pdf.NewGauss("peak", mu, sigma, sp)
	require.NoError(t, err)

	h, err := dataset.NewBinned("x", []float64{-3, -1, 0, 1, 3}, []float64{10, 30, 35, 12})
	require.NoError(t, err)

	c, err := loss.NewChi2(g, h, space.Space{})
	require.NoError(t, err)

	grad, err := c.Gradient(mu)
	require.NoError(t, err)
	require.Len(t, grad, 1)

	const h2 = 1e-6
	require.NoError(t, mu.SetValue(0.2 + h2))
	up, err := c.Value()
	require.NoError(t, err)
	require.NoError(t, mu.SetValue(0.2 - h2))
	down, err := c.Value()
	require.NoError(t, err)
	require.NoError(t, mu.SetValue(0.2))

	fd := (up - down) / (2 * h2)
	assert.InDelta(t, fd, grad[0], 1e-3)
}

// TestChi2_AxisMustBeInRange verifies a histogram on a foreign axis is
// rejected up front.
func TestChi2_AxisMustBeInRange(t *testing.T) {
	sp := space.MustInterval1D("x", 0, 2)
	u, err := pdf.NewUniform("flat", sp)
	require.NoError(t, err)

	h, err := dataset.NewBinned("y", []float64{0, 1, 2}, []float64{50, 50})
	require.NoError(t, err)

	_, err = loss.NewChi2(u, h, space.Space{})
	assert.ErrorIs(t, err, space.ErrUnknownAxis)
}

// TestChi2_AddNLLJoins verifies a binned and an unbinned term sum into
// one simultaneous objective.
func TestChi2_AddNLLJoins(t *testing.T) {
	pdf.ResetCache()
	sp := space.MustInterval1D("x", 0, 2)
	u, err := pdf.NewUniform("flat", sp)
	require.NoError(t, err)
	h, err := dataset.NewBinned("x", []float64{0, 1, 2}, []float64{40, 60})
	require.NoError(t, err)
	c, err := loss.NewChi2(u, h, space.Space{})
	require.NoError(t, err)

	g, d, _, _ := fixture(t, "joinri", []float64{-0.1, 0.6})
	n, err := loss.NewUnbinnedNLL(g, d, space.Space{})
	require.NoError(t, err)

	both, err := c.Add(n)
	require.NoError(t, err)

	vc, err := c.Value()
	require.NoError(t, err)
	vn, err := n.Value()
	require.NoError(t, err)
	vb, err := both.Value()
	require.NoError(t, err)
	assert.InDelta(t, vc+vn, vb, 1e-10)
}
