package loss_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fitgraph/dataset"
	"github.com/katalvlaran/fitgraph/dual"
	"github.com/katalvlaran/fitgraph/loss"
	"github.com/katalvlaran/fitgraph/param"
	"github.com/katalvlaran/fitgraph/pdf"
	"github.com/katalvlaran/fitgraph/space"
)

// fixture builds a unit Gaussian over [-5, 5] plus a small dataset.
func fixture(t *testing.T, name string, values []float64, opts ...dataset.Option) (*pdf.Gauss, *dataset.Dataset, *param.Parameter, *param.Parameter) {
	t.Helper()
	sp := space.MustInterval1D("x", -5, 5)
	mu := param.MustNew(name+"_mu", 0, -5, 5)
	sigma := param.MustNew(name+"_sigma", 1, 0.1, 10)
	g, err := pdf.NewGauss(name, mu, sigma, sp)
	require.NoError(t, err)
	d, err := dataset.FromColumn(sp, "x", values, opts...)
	require.NoError(t, err)
	return g, d, mu, sigma
}

// TestUnbinnedNLL_HandComputedValue checks −Σ log pdf against a direct
// computation from the closed-form Gaussian.
func TestUnbinnedNLL_HandComputedValue(t *testing.T) {
	pdf.ResetCache()
	values := []float64{-1, 0.5, 2}
	g, d, _, _ := fixture(t, "hand", values)

	l, err := loss.NewUnbinnedNLL(g, d, space.Space{})
	require.NoError(t, err)

	norm := math.Erf(5 / math.Sqrt2)
	want := 0.0
	for _, x := range values {
		p := math.Exp(-x*x/2) / (math.Sqrt(2*math.Pi) * norm)
		want -= math.Log(p)
	}

	got, err := l.Value()
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-10)
}

// TestNLL_GradientVanishesAtSampleMean verifies the score in μ is zero
// at the maximum-likelihood point. The fit range is symmetric around
// the mean, so the truncation term of the score cancels exactly.
func TestNLL_GradientVanishesAtSampleMean(t *testing.T) {
	pdf.ResetCache()
	values := []float64{-0.8, -0.2, 0.1, 0.9} // mean 0
	g, d, mu, _ := fixture(t, "score", values)

	l, err := loss.NewUnbinnedNLL(g, d, space.Space{})
	require.NoError(t, err)

	grad, err := l.Gradient(mu)
	require.NoError(t, err)
	require.Len(t, grad, 1)
	assert.InDelta(t, 0.0, grad[0], 1e-6)
}

// TestNLL_GradientMatchesFiniteDifference cross-checks the propagated
// gradient in μ and σ against central differences of Value.
func TestNLL_GradientMatchesFiniteDifference(t *testing.T) {
	pdf.ResetCache()
	g, d, mu, sigma := fixture(t, "fd", []float64{-1.3, 0.4, 0.7, 2.1})
	require.NoError(t, mu.SetValue(0.3))
	require.NoError(t, sigma.SetValue(1.4))

	l, err := loss.NewUnbinnedNLL(g, d, space.Space{})
	require.NoError(t, err)

	grad, err := l.Gradient(mu, sigma)
	require.NoError(t, err)
	require.Len(t, grad, 2)

	const h = 1e-6
	for i, p := range []*param.Parameter{mu, sigma} {
		base := p.Value()
		require.NoError(t, p.SetValue(base+h))
		up, err := l.Value()
		require.NoError(t, err)
		require.NoError(t, p.SetValue(base-h))
		down, err := l.Value()
		require.NoError(t, err)
		require.NoError(t, p.SetValue(base))

		fd := (up - down) / (2 * h)
		assert.InDelta(t, fd, grad[i], 1e-4, "d/d%s", p.Name())
	}
}

// TestNLL_UnitWeightsMatchUnweighted verifies an all-ones weight vector
// changes nothing.
func TestNLL_UnitWeightsMatchUnweighted(t *testing.T) {
	pdf.ResetCache()
	values := []float64{-0.5, 0.2, 1.1}
	g1, d1, _, _ := fixture(t, "uw", values)
	g2, d2, _, _ := fixture(t, "ww", values, dataset.WithWeights([]float64{1, 1, 1}))

	l1, err := loss.NewUnbinnedNLL(g1, d1, space.Space{})
	require.NoError(t, err)
	l2, err := loss.NewUnbinnedNLL(g2, d2, space.Space{})
	require.NoError(t, err)

	v1, err := l1.Value()
	require.NoError(t, err)
	v2, err := l2.Value()
	require.NoError(t, err)
	assert.InDelta(t, v1, v2, 1e-12)
}

// TestNLL_WeightsScaleContributions verifies doubling every weight
// doubles the likelihood.
func TestNLL_WeightsScaleContributions(t *testing.T) {
	pdf.ResetCache()
	values := []float64{-0.5, 0.2, 1.1}
	g1, d1, _, _ := fixture(t, "s1", values)
	g2, d2, _, _ := fixture(t, "s2", values, dataset.WithWeights([]float64{2, 2, 2}))

	l1, err := loss.NewUnbinnedNLL(g1, d1, space.Space{})
	require.NoError(t, err)
	l2, err := loss.NewUnbinnedNLL(g2, d2, space.Space{})
	require.NoError(t, err)

	v1, err := l1.Value()
	require.NoError(t, err)
	v2, err := l2.Value()
	require.NoError(t, err)
	assert.InDelta(t, 2*v1, v2, 1e-10)
}

// TestExtendedNLL_YieldTerm verifies the extended likelihood differs
// from the plain one by exactly ν − N·log ν.
func TestExtendedNLL_YieldTerm(t *testing.T) {
	pdf.ResetCache()
	values := []float64{-0.4, 0.0, 0.3, 1.2}
	g, d, _, _ := fixture(t, "ext", values)
	yield := param.MustNew("n_ext", 10, 0, 1e6)
	em, err := pdf.Extend(g, yield)
	require.NoError(t, err)

	plain, err := loss.NewUnbinnedNLL(g, d, space.Space{})
	require.NoError(t, err)
	extended, err := loss.NewExtendedUnbinnedNLL(em, d, space.Space{})
	require.NoError(t, err)

	vp, err := plain.Value()
	require.NoError(t, err)
	ve, err := extended.Value()
	require.NoError(t, err)

	want := vp + 10 - 4*math.Log(10)
	assert.InDelta(t, want, ve, 1e-10)
}

// TestExtendedNLL_RejectsPlainModel verifies the yield requirement.
func TestExtendedNLL_RejectsPlainModel(t *testing.T) {
	g, d, _, _ := fixture(t, "noext", []float64{0})
	_, err := loss.NewExtendedUnbinnedNLL(g, d, space.Space{})
	assert.ErrorIs(t, err, loss.ErrNotExtended)
}

// TestNLL_SimultaneousAdd verifies two likelihoods fuse into one whose
// value is the sum and whose parameters are the union.
func TestNLL_SimultaneousAdd(t *testing.T) {
	pdf.ResetCache()
	g1, d1, mu1, _ := fixture(t, "sim1", []float64{-0.3, 0.8})
	g2, d2, mu2, _ := fixture(t, "sim2", []float64{0.1, 0.4, 1.9})

	l1, err := loss.NewUnbinnedNLL(g1, d1, space.Space{})
	require.NoError(t, err)
	l2, err := loss.NewUnbinnedNLL(g2, d2, space.Space{})
	require.NoError(t, err)

	both, err := l1.Add(l2)
	require.NoError(t, err)

	v1, err := l1.Value()
	require.NoError(t, err)
	v2, err := l2.Value()
	require.NoError(t, err)
	vb, err := both.Value()
	require.NoError(t, err)
	assert.InDelta(t, v1+v2, vb, 1e-10)

	ps := both.Parameters()
	assert.Contains(t, ps, mu1)
	assert.Contains(t, ps, mu2)
}

// TestNLL_GaussianConstraintPenalty verifies the prior adds ½z².
func TestNLL_GaussianConstraintPenalty(t *testing.T) {
	pdf.ResetCache()
	values := []float64{-0.2, 0.6}
	g1, d1, _, _ := fixture(t, "pen1", values)
	g2, d2, mu2, _ := fixture(t, "pen2", values)

	con, err := loss.NewGaussianConstraint(mu2, 1.0, 0.5)
	require.NoError(t, err)

	bare, err := loss.NewUnbinnedNLL(g1, d1, space.Space{})
	require.NoError(t, err)
	pinned, err := loss.NewUnbinnedNLL(g2, d2, space.Space{}, loss.WithConstraints(con))
	require.NoError(t, err)

	vb, err := bare.Value()
	require.NoError(t, err)
	vp, err := pinned.Value()
	require.NoError(t, err)

	// mu2 sits at 0, prior at 1.0 ± 0.5: penalty ½·(−2)² = 2.
	assert.InDelta(t, vb+2, vp, 1e-10)
	assert.Len(t, pinned.Constraints(), 1)
}

// TestGaussianConstraint_RejectsBadWidth verifies σ > 0 is enforced.
func TestGaussianConstraint_RejectsBadWidth(t *testing.T) {
	mu := param.MustNew("gc_mu", 0, -5, 5)
	_, err := loss.NewGaussianConstraint(mu, 0, 0)
	assert.ErrorIs(t, err, loss.ErrBadConstraint)
}

// TestNLL_NonFiniteValueFails verifies a zero density inside the data
// surfaces as ErrNonFiniteLoss rather than a silent ±Inf.
func TestNLL_NonFiniteValueFails(t *testing.T) {
	pdf.ResetCache()
	sp := space.MustInterval1D("x", 0, 1)
	lin, err := pdf.NewPrimitive("lin", "", sp,
		func(pt dataset.Point, seed *param.Parameter) dual.Num {
			return dual.Const(pt["x"])
		})
	require.NoError(t, err)

	d, err := dataset.FromColumn(sp, "x", []float64{0}) // density 0 here
	require.NoError(t, err)

	l, err := loss.NewUnbinnedNLL(lin, d, space.Space{})
	require.NoError(t, err)

	_, err = l.Value()
	assert.ErrorIs(t, err, loss.ErrNonFiniteLoss)
}

// TestNLL_AddSimpleRejected verifies data-free losses never merge into
// a simultaneous fit.
func TestNLL_AddSimpleRejected(t *testing.T) {
	g, d, mu, _ := fixture(t, "nosimple", []float64{0.1})
	l, err := loss.NewUnbinnedNLL(g, d, space.Space{})
	require.NoError(t, err)

	s, err := loss.NewSimple(func(args []dual.Num) dual.Num { return args[0] }, mu)
	require.NoError(t, err)

	_, err = l.Add(s)
	assert.ErrorIs(t, err, loss.ErrIncompatibleLoss)
}
