package pdf

import (
	"fmt"
	"math"

	"github.com/katalvlaran/fitgraph/dataset"
	"github.com/katalvlaran/fitgraph/dual"
	"github.com/katalvlaran/fitgraph/param"
	"github.com/katalvlaran/fitgraph/space"
)

// Exponential is the one-dimensional density
//
//	f(x) = exp(λx)
//
// with analytic normalization (exp(λ·hi) - exp(λ·lo)) / λ per interval.
// λ = 0 degrades gracefully to the flat density with interval-length
// normalization. Unbounded intervals are normalizable only on the side
// where the density decays.
type Exponential struct {
	*engine
	lambda param.Var
	axis   string
}

// NewExponential builds an exponential slope over a one-axis Space.
func NewExponential(name string, lambda param.Var, sp space.Space) (*Exponential, error) {
	if lambda == nil {
		return nil, fmt.Errorf("%w: exponential %q", ErrNilVar, name)
	}
	if sp.Dim() != 1 {
		return nil, fmt.Errorf("%w: exponential %q needs 1 axis, got %d", ErrSpaceDim, name, sp.Dim())
	}
	e := &Exponential{
		engine: newEngine(name, KindExponential, sp, varParams(lambda)),
		lambda: lambda,
		axis:   sp.AxisNames()[0],
	}
	e.engine.density = e.densityDual
	e.engine.self = e
	return e, nil
}

// Lambda returns the slope parameter.
func (e *Exponential) Lambda() param.Var { return e.lambda }

func (e *Exponential) densityDual(pt dataset.Point, seed *param.Parameter) dual.Num {
	return dual.Exp(dual.Scale(pt[e.axis], e.lambda.Dual(seed)))
}

// expTerm is exp(λx) with the x → ±Inf limits taken exactly when the
// density decays there, keeping Inf out of dual arithmetic.
func expTerm(x float64, lambda dual.Num) dual.Num {
	if math.IsInf(x, 0) {
		if x*lambda.Real < 0 {
			return dual.Const(0)
		}
		return dual.Const(math.Inf(1)) // non-normalizable; surfaces as ErrNormalization
	}
	return dual.Exp(dual.Scale(x, lambda))
}

func init() {
	RegisterAnalyticNormalization(KindExponential, func(m Model, sp space.Space, seed *param.Parameter) (dual.Num, error) {
		e := m.(*Exponential)
		a, ok := sp.Axis(e.axis)
		if !ok {
			return dual.Num{}, fmt.Errorf("%w: axis %q missing from %s", space.ErrUnknownAxis, e.axis, sp.Key())
		}
		lambda := e.lambda.Dual(seed)
		var total dual.Num
		for _, iv := range a.Intervals() {
			if lambda.Real == 0 {
				total = dual.Add(total, dual.Const(iv.Length()))
				continue
			}
			diff := dual.Sub(expTerm(iv.Hi, lambda), expTerm(iv.Lo, lambda))
			total = dual.Add(total, dual.Div(diff, lambda))
		}
		return total, nil
	})
}
