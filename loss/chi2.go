package loss

import (
	"fmt"

	"github.com/katalvlaran/fitgraph/dataset"
	"github.com/katalvlaran/fitgraph/dual"
	"github.com/katalvlaran/fitgraph/integrate"
	"github.com/katalvlaran/fitgraph/param"
	"github.com/katalvlaran/fitgraph/pdf"
	"github.com/katalvlaran/fitgraph/space"
)

// chi2BinOrder is the quadrature order for per-bin density integrals;
// bins are narrow, so a modest rule is already exact in practice.
const chi2BinOrder = 32

// Chi2 is the binned chi-square loss:
//
//	Σ (nᵢ − νᵢ)² / σᵢ²,   νᵢ = ν·∫_binᵢ pdf
//
// where ν is the model's total yield when the model is extended, and
// the histogram's total content otherwise. Bins are assumed to lie
// inside the fit range.
type Chi2 struct {
	model       pdf.Model
	hist        *dataset.Binned
	fitRange    space.Space
	constraints []Constraint
}

// NewChi2 builds the chi-square loss for a 1-D model over a histogram
// on the same axis. A zero-value fitRange defaults to the model's space.
func NewChi2(model pdf.Model, hist *dataset.Binned, fitRange space.Space, opts ...Option) (*Chi2, error) {
	if model == nil || hist == nil {
		return nil, ErrNilLoss
	}
	if fitRange.Dim() == 0 {
		fitRange = model.Space()
	}
	if _, ok := fitRange.Axis(hist.Axis()); !ok {
		return nil, fmt.Errorf("%w: histogram axis %q not in fit range", space.ErrUnknownAxis, hist.Axis())
	}
	c := &Chi2{model: model, hist: hist, fitRange: fitRange}
	var tmp NLL
	for _, opt := range opts {
		opt(&tmp)
	}
	c.constraints = tmp.constraints
	return c, nil
}

func (c *Chi2) valueDual(seed *param.Parameter) (dual.Num, error) {
	norm, err := c.model.NormalizationDual(c.fitRange, seed)
	if err != nil {
		return dual.Num{}, err
	}
	if norm.Real <= 0 {
		return dual.Num{}, fmt.Errorf("%w: %g for %q over %s",
			pdf.ErrNormalization, norm.Real, c.model.Name(), c.fitRange.Key())
	}
	var yield dual.Num
	if ext, ok := c.model.(pdf.Extended); ok {
		yield = ext.TotalYieldDual(seed)
	} else {
		yield = dual.Const(c.hist.Total())
	}
	axis := c.hist.Axis()
	var total dual.Num
	for i := 0; i < c.hist.Bins(); i++ {
		lo, hi := c.hist.Edges(i)
		f := func(x dual.Num) dual.Num {
			return c.model.DensityDual(dataset.Point{axis: x.Real}, seed)
		}
		binInt, err := integrate.FixedDual(f, space.Interval{Lo: lo, Hi: hi}, chi2BinOrder)
		if err != nil {
			return dual.Num{}, err
		}
		expected := dual.Mul(yield, dual.Div(binInt, norm))
		resid := dual.Shift(c.hist.Count(i), dual.Neg(expected))
		total = dual.Add(total, dual.Scale(1/c.hist.Variance(i), dual.Sqr(resid)))
	}
	for _, con := range c.constraints {
		v, err := con.valueDual(seed)
		if err != nil {
			return dual.Num{}, err
		}
		total = dual.Add(total, v)
	}
	return total, nil
}

// Value evaluates the chi-square under the current parameter values.
func (c *Chi2) Value() (float64, error) { return value(c) }

// Gradient differentiates the chi-square.
func (c *Chi2) Gradient(params ...*param.Parameter) ([]float64, error) {
	return gradient(c, c.Parameters(), params)
}

// Parameters returns the union of model and constraint parameters.
func (c *Chi2) Parameters() []*param.Parameter {
	lists := [][]*param.Parameter{c.model.Parameters()}
	for _, con := range c.constraints {
		lists = append(lists, con.Parameters())
	}
	return mergeParams(lists...)
}

// Add joins the chi-square with another loss through a summed composite.
func (c *Chi2) Add(other Loss) (Loss, error) {
	if _, simple := other.(*Simple); simple {
		return nil, fmt.Errorf("%w: Simple losses carry no data binding", ErrIncompatibleLoss)
	}
	return newJoint(c, other)
}
