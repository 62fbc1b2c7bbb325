package pdf_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fitgraph/param"
	"github.com/katalvlaran/fitgraph/pdf"
	"github.com/katalvlaran/fitgraph/space"
)

// TestCache_RepeatedNormalizationHits verifies the second call with
// unchanged parameters is served from the cache: bit-identical value,
// no second pass through quadrature.
func TestCache_RepeatedNormalizationHits(t *testing.T) {
	pdf.ResetCache()
	c1 := param.MustNew("cc1", 0.4, -1, 1)
	sp := space.MustInterval1D("x", 0, 3)
	ch, err := pdf.NewChebyshev("poly", []param.Var{c1}, sp)
	require.NoError(t, err)

	first, err := ch.Normalization(sp)
	require.NoError(t, err)
	after := pdf.Stats()

	second, err := ch.Normalization(sp)
	require.NoError(t, err)

	assert.Equal(t, first, second, "cached value must be bit-identical")
	assert.Equal(t, after.NumericRecomputes, pdf.Stats().NumericRecomputes, "second call must not integrate")
	assert.Equal(t, after.Hits+1, pdf.Stats().Hits)
}

// TestCache_InvalidatesOnSetValue verifies a parameter write recomputes
// the normalization on the next call.
func TestCache_InvalidatesOnSetValue(t *testing.T) {
	pdf.ResetCache()
	c1 := param.MustNew("ci1", 0.0, -1, 1)
	sp := space.MustInterval1D("x", 0, 2)
	ch, err := pdf.NewChebyshev("poly", []param.Var{c1}, sp)
	require.NoError(t, err)

	_, err = ch.Normalization(sp)
	require.NoError(t, err)
	before := pdf.Stats().NumericRecomputes

	require.NoError(t, c1.SetValue(0.5))
	_, err = ch.Normalization(sp)
	require.NoError(t, err)
	assert.Equal(t, before+1, pdf.Stats().NumericRecomputes, "write must force one recompute")
}

// TestCache_DistinctRangesDistinctEntries verifies the range is part of
// the identity: two ranges never alias.
func TestCache_DistinctRangesDistinctEntries(t *testing.T) {
	pdf.ResetCache()
	mu := param.MustNew("cr_mu", 0, -5, 5)
	sigma := param.MustNew("cr_sigma", 1, 0.1, 10)
	full := space.MustInterval1D("x", -6, 6)
	g, err := pdf.NewGauss("g", mu, sigma, full)
	require.NoError(t, err)

	nFull, err := g.Normalization(full)
	require.NoError(t, err)
	nHalf, err := g.Normalization(space.MustInterval1D("x", 0, 6))
	require.NoError(t, err)
	assert.NotEqual(t, nFull, nHalf)
}

// TestCache_ConcurrentReads hammers Normalization from many goroutines
// with fixed parameters: every result must equal the sequential one.
func TestCache_ConcurrentReads(t *testing.T) {
	pdf.ResetCache()
	c1 := param.MustNew("cg1", 0.3, -1, 1)
	c2 := param.MustNew("cg2", -0.1, -1, 1)
	sp := space.MustInterval1D("x", -1, 1)
	ch, err := pdf.NewChebyshev("poly", []param.Var{c1, c2}, sp)
	require.NoError(t, err)

	want, err := ch.Normalization(sp)
	require.NoError(t, err)

	const readers = 16
	results := make([]float64, readers)
	errs := make([]error, readers)
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = ch.Normalization(sp)
		}()
	}
	wg.Wait()

	for i := 0; i < readers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, want, results[i], "reader %d", i)
	}
}
