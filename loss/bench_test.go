package loss_test

import (
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/fitgraph/dataset"
	"github.com/katalvlaran/fitgraph/loss"
	"github.com/katalvlaran/fitgraph/param"
	"github.com/katalvlaran/fitgraph/pdf"
	"github.com/katalvlaran/fitgraph/space"
)

// benchmarkNLL builds a Gaussian likelihood over n events and times the
// given evaluation. The normalization cache is reset up front so each
// run pays the same first-call cost pattern.
func benchmarkNLL(b *testing.B, n int, eval func(l *loss.NLL) error) {
	pdf.ResetCache()
	sp := space.MustInterval1D("x", -10, 10)
	mu := param.MustNew("b_mu", 0.1, -5, 5)
	sigma := param.MustNew("b_sigma", 1.2, 0.1, 10)
	g, err := pdf.NewGauss("bench", mu, sigma, sp)
	if err != nil {
		b.Fatalf("build model: %v", err)
	}

	rng := rand.New(rand.NewPCG(3, 5))
	values := make([]float64, n)
	for i := range values {
		v := rng.NormFloat64()
		for v <= -10 || v >= 10 {
			v = rng.NormFloat64()
		}
		values[i] = v
	}
	d, err := dataset.FromColumn(sp, "x", values)
	if err != nil {
		b.Fatalf("build dataset: %v", err)
	}
	l, err := loss.NewUnbinnedNLL(g, d, space.Space{})
	if err != nil {
		b.Fatalf("build loss: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := eval(l); err != nil {
			b.Fatalf("evaluate: %v", err)
		}
	}
}

// BenchmarkNLL_Value1k times one likelihood evaluation over 1000 events.
func BenchmarkNLL_Value1k(b *testing.B) {
	benchmarkNLL(b, 1000, func(l *loss.NLL) error {
		_, err := l.Value()
		return err
	})
}

// BenchmarkNLL_Value100k times one evaluation over 100000 events.
func BenchmarkNLL_Value100k(b *testing.B) {
	benchmarkNLL(b, 100000, func(l *loss.NLL) error {
		_, err := l.Value()
		return err
	})
}

// BenchmarkNLL_Gradient1k times a full two-parameter gradient over 1000
// events: two seeded sweeps on top of the value pass.
func BenchmarkNLL_Gradient1k(b *testing.B) {
	benchmarkNLL(b, 1000, func(l *loss.NLL) error {
		_, err := l.Gradient()
		return err
	})
}
