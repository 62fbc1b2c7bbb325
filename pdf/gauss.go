package pdf

import (
	"fmt"
	"math"

	"github.com/katalvlaran/fitgraph/dataset"
	"github.com/katalvlaran/fitgraph/dual"
	"github.com/katalvlaran/fitgraph/param"
	"github.com/katalvlaran/fitgraph/space"
)

// Gauss is the one-dimensional Gaussian density
//
//	f(x) = exp(-(x-μ)² / 2σ²) / (σ√2π)
//
// with an analytic normalization (CDF difference), so it works on
// unbounded spaces too.
type Gauss struct {
	*engine
	mu, sigma param.Var
	axis      string
}

// NewGauss builds a Gaussian over a one-axis Space.
func NewGauss(name string, mu, sigma param.Var, sp space.Space) (*Gauss, error) {
	if mu == nil || sigma == nil {
		return nil, fmt.Errorf("%w: gauss %q", ErrNilVar, name)
	}
	if sp.Dim() != 1 {
		return nil, fmt.Errorf("%w: gauss %q needs 1 axis, got %d", ErrSpaceDim, name, sp.Dim())
	}
	g := &Gauss{
		engine: newEngine(name, KindGauss, sp, varParams(mu, sigma)),
		mu:     mu,
		sigma:  sigma,
		axis:   sp.AxisNames()[0],
	}
	g.engine.density = g.densityDual
	g.engine.self = g
	return g, nil
}

// Mu returns the location parameter.
func (g *Gauss) Mu() param.Var { return g.mu }

// Sigma returns the width parameter.
func (g *Gauss) Sigma() param.Var { return g.sigma }

func (g *Gauss) densityDual(pt dataset.Point, seed *param.Parameter) dual.Num {
	x := dual.Const(pt[g.axis])
	mu := g.mu.Dual(seed)
	sigma := g.sigma.Dual(seed)
	z := dual.Div(dual.Sub(x, mu), sigma)
	return dual.Div(
		dual.Exp(dual.Scale(-0.5, dual.Sqr(z))),
		dual.Scale(math.Sqrt(2*math.Pi), sigma),
	)
}

// cdfTerm is Φ-like: ½·erf((x-μ)/(σ√2)), with the infinite endpoints
// taken as their exact limits so no Inf leaks into dual arithmetic.
func (g *Gauss) cdfTerm(x float64, mu, sigma dual.Num) dual.Num {
	if math.IsInf(x, 1) {
		return dual.Const(0.5)
	}
	if math.IsInf(x, -1) {
		return dual.Const(-0.5)
	}
	z := dual.Div(dual.Sub(dual.Const(x), mu), dual.Scale(math.Sqrt2, sigma))
	return dual.Scale(0.5, dual.Erf(z))
}

func init() {
	RegisterAnalyticNormalization(KindGauss, func(m Model, sp space.Space, seed *param.Parameter) (dual.Num, error) {
		g := m.(*Gauss)
		a, ok := sp.Axis(g.axis)
		if !ok {
			return dual.Num{}, fmt.Errorf("%w: axis %q missing from %s", space.ErrUnknownAxis, g.axis, sp.Key())
		}
		mu := g.mu.Dual(seed)
		sigma := g.sigma.Dual(seed)
		var total dual.Num
		for _, iv := range a.Intervals() {
			total = dual.Add(total, dual.Sub(g.cdfTerm(iv.Hi, mu, sigma), g.cdfTerm(iv.Lo, mu, sigma)))
		}
		return total, nil
	})
}
