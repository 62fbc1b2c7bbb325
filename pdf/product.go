package pdf

import (
	"fmt"

	"github.com/katalvlaran/fitgraph/dataset"
	"github.com/katalvlaran/fitgraph/dual"
	"github.com/katalvlaran/fitgraph/param"
	"github.com/katalvlaran/fitgraph/space"
)

// Product is the independent factorization of child models over
// pairwise-disjoint axis sets:
//
//	f(x, y, …) = child₁(x)·child₂(y)·…
//
// Its space is the Cartesian combination of the children's spaces; its
// normalization factorizes into each child's normalization over its own
// projection of the target space.
type Product struct {
	*engine
	children []Model
}

// NewProduct builds the factorized model. Children sharing any axis
// fail with ErrAxisOverlap.
func NewProduct(name string, children ...Model) (*Product, error) {
	if len(children) < 2 {
		return nil, fmt.Errorf("%w: %q has %d", ErrNoChildren, name, len(children))
	}
	axisOwner := make(map[string]int)
	combined := space.Space{}
	for i, c := range children {
		if c == nil {
			return nil, fmt.Errorf("%w: %q child %d", ErrNilVar, name, i)
		}
		for _, ax := range c.Space().AxisNames() {
			if j, taken := axisOwner[ax]; taken {
				return nil, fmt.Errorf("%w: %q children %d and %d both use %q", ErrAxisOverlap, name, j, i, ax)
			}
			axisOwner[ax] = i
		}
		if i == 0 {
			combined = c.Space()
			continue
		}
		var err error
		combined, err = combined.Combine(c.Space())
		if err != nil {
			return nil, err
		}
	}
	p := &Product{children: append([]Model(nil), children...)}
	p.engine = newEngine(name, "", combined, childParams(p.children))
	p.engine.density = p.densityDual
	p.engine.analytic = p.analyticNorm
	p.engine.self = p
	return p, nil
}

// Children returns the factor models.
func (p *Product) Children() []Model { return append([]Model(nil), p.children...) }

func (p *Product) densityDual(pt dataset.Point, seed *param.Parameter) dual.Num {
	total := dual.Const(1)
	for _, c := range p.children {
		total = dual.Mul(total, c.DensityDual(pt, seed))
	}
	return total
}

func (p *Product) analyticNorm(sp space.Space, seed *param.Parameter) (dual.Num, error) {
	total := dual.Const(1)
	for _, c := range p.children {
		proj, err := sp.Project(c.Space().AxisNames()...)
		if err != nil {
			return dual.Num{}, err
		}
		n, err := c.NormalizationDual(proj, seed)
		if err != nil {
			return dual.Num{}, err
		}
		total = dual.Mul(total, n)
	}
	return total, nil
}
