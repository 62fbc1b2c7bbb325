package pdf

import (
	"fmt"

	"github.com/katalvlaran/fitgraph/dataset"
	"github.com/katalvlaran/fitgraph/dual"
	"github.com/katalvlaran/fitgraph/param"
	"github.com/katalvlaran/fitgraph/space"
)

// Chebyshev is a one-dimensional polynomial density in the Chebyshev
// basis of the first kind:
//
//	f(x) = 1 + c₁T₁(u) + c₂T₂(u) + …,  u = (2x - lo - hi)/(hi - lo)
//
// over the axis hull [lo, hi]. The constant term is fixed at 1 (the
// overall scale is the normalization's job). No analytic normalization
// is registered: Chebyshev deliberately exercises the quadrature path.
// Coefficients leaving the density negative poison the log-likelihood
// downstream; that is the caller's modeling choice to make.
type Chebyshev struct {
	*engine
	coeffs []param.Var
	axis   string
	lo, hi float64
}

// NewChebyshev builds a polynomial density with the given higher-order
// coefficients (c₁, c₂, …) over a one-axis finite Space.
func NewChebyshev(name string, coeffs []param.Var, sp space.Space) (*Chebyshev, error) {
	if sp.Dim() != 1 {
		return nil, fmt.Errorf("%w: chebyshev %q needs 1 axis, got %d", ErrSpaceDim, name, sp.Dim())
	}
	if !sp.Finite() {
		return nil, fmt.Errorf("%w: chebyshev %q needs finite bounds", ErrSpaceDim, name)
	}
	for i, c := range coeffs {
		if c == nil {
			return nil, fmt.Errorf("%w: chebyshev %q coefficient %d", ErrNilVar, name, i)
		}
	}
	axis := sp.Axes()[0]
	hull := axis.Hull()
	c := &Chebyshev{
		engine: newEngine(name, "", sp, varParams(coeffs...)),
		coeffs: append([]param.Var(nil), coeffs...),
		axis:   axis.Name(),
		lo:     hull.Lo,
		hi:     hull.Hi,
	}
	c.engine.density = c.densityDual
	c.engine.self = c
	return c, nil
}

// Degree returns the polynomial degree.
func (c *Chebyshev) Degree() int { return len(c.coeffs) }

func (c *Chebyshev) densityDual(pt dataset.Point, seed *param.Parameter) dual.Num {
	u := dual.Const((2*pt[c.axis] - c.lo - c.hi) / (c.hi - c.lo))
	// T₀ = 1, T₁ = u, Tₖ = 2u·Tₖ₋₁ − Tₖ₋₂.
	total := dual.Const(1)
	prev, cur := dual.Const(1), u
	for _, coeff := range c.coeffs {
		total = dual.Add(total, dual.Mul(coeff.Dual(seed), cur))
		prev, cur = cur, dual.Sub(dual.Scale(2, dual.Mul(u, cur)), prev)
	}
	return total
}
