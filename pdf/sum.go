package pdf

import (
	"fmt"

	"github.com/katalvlaran/fitgraph/dataset"
	"github.com/katalvlaran/fitgraph/dual"
	"github.com/katalvlaran/fitgraph/param"
	"github.com/katalvlaran/fitgraph/space"
)

// Sum is the fraction-weighted mixture of child models over one shared
// space:
//
//	f(x) = Σ fᵢ·childᵢ(x)
//
// With n children, give n fractions, or n−1 and the last child takes
// the implicit remainder 1−Σfᵢ. Fraction consistency is enforced at
// normalization time: an explicit sum beyond 1+FractionTol, or a
// negative implicit remainder, fails with ErrFractionSum.
type Sum struct {
	*engine
	children []Model
	fracs    []param.Var
	implicit bool
}

// NewSum builds a mixture over children sharing one space.
func NewSum(name string, children []Model, fractions []param.Var) (*Sum, error) {
	if err := checkChildren(name, children); err != nil {
		return nil, err
	}
	n := len(children)
	if len(fractions) != n && len(fractions) != n-1 {
		return nil, fmt.Errorf("%w: sum %q has %d children, %d fractions", ErrFractionCount, name, n, len(fractions))
	}
	for i, f := range fractions {
		if f == nil {
			return nil, fmt.Errorf("%w: sum %q fraction %d", ErrNilVar, name, i)
		}
	}
	s := &Sum{
		children: append([]Model(nil), children...),
		fracs:    append([]param.Var(nil), fractions...),
		implicit: len(fractions) == n-1,
	}
	s.engine = newEngine(name, "", children[0].Space(),
		mergeParams(childParams(children), varParams(fractions...)))
	s.engine.density = s.densityDual
	s.engine.analytic = s.analyticNorm
	s.engine.self = s
	return s, nil
}

// Children returns the child models in mixture order.
func (s *Sum) Children() []Model { return append([]Model(nil), s.children...) }

// weights materializes the per-child mixture weights, appending the
// implicit remainder when n−1 fractions were given. check gates the
// consistency test so the density path stays error-free.
func (s *Sum) weights(seed *param.Parameter, check bool) ([]dual.Num, error) {
	ws := make([]dual.Num, 0, len(s.children))
	var sum dual.Num
	for _, f := range s.fracs {
		w := f.Dual(seed)
		sum = dual.Add(sum, w)
		ws = append(ws, w)
	}
	if s.implicit {
		rem := dual.Sub(dual.Const(1), sum)
		if check && rem.Real < -FractionTol {
			return nil, fmt.Errorf("%w: %q remainder %g", ErrFractionSum, s.name, rem.Real)
		}
		ws = append(ws, rem)
	} else if check && sum.Real > 1+FractionTol {
		return nil, fmt.Errorf("%w: %q fractions sum to %g", ErrFractionSum, s.name, sum.Real)
	}
	return ws, nil
}

func (s *Sum) densityDual(pt dataset.Point, seed *param.Parameter) dual.Num {
	ws, _ := s.weights(seed, false)
	var total dual.Num
	for i, c := range s.children {
		total = dual.Add(total, dual.Mul(ws[i], c.DensityDual(pt, seed)))
	}
	return total
}

func (s *Sum) analyticNorm(sp space.Space, seed *param.Parameter) (dual.Num, error) {
	ws, err := s.weights(seed, true)
	if err != nil {
		return dual.Num{}, err
	}
	var total dual.Num
	for i, c := range s.children {
		n, err := c.NormalizationDual(sp, seed)
		if err != nil {
			return dual.Num{}, err
		}
		total = dual.Add(total, dual.Mul(ws[i], n))
	}
	return total, nil
}

func checkChildren(name string, children []Model) error {
	if len(children) < 2 {
		return fmt.Errorf("%w: %q has %d", ErrNoChildren, name, len(children))
	}
	for i, c := range children {
		if c == nil {
			return fmt.Errorf("%w: %q child %d", ErrNilVar, name, i)
		}
		if i > 0 && !c.Space().Equal(children[0].Space()) {
			return fmt.Errorf("%w: %q child %d on %s, child 0 on %s",
				ErrSpaceMismatch, name, i, c.Space().Key(), children[0].Space().Key())
		}
	}
	return nil
}

// ExtendedSum is the yield-weighted mixture: each child contributes an
// absolute expected event count instead of a fraction. Densities mix
// with weights yᵢ/Σy; the total yield feeds extended likelihoods.
type ExtendedSum struct {
	*engine
	children []Model
	yields   []param.Var
}

// NewExtendedSum builds an extended mixture: one yield per child.
func NewExtendedSum(name string, children []Model, yields []param.Var) (*ExtendedSum, error) {
	if err := checkChildren(name, children); err != nil {
		return nil, err
	}
	if len(yields) != len(children) {
		return nil, fmt.Errorf("%w: extended sum %q has %d children, %d yields",
			ErrFractionCount, name, len(children), len(yields))
	}
	for i, y := range yields {
		if y == nil {
			return nil, fmt.Errorf("%w: extended sum %q yield %d", ErrNilVar, name, i)
		}
	}
	s := &ExtendedSum{
		children: append([]Model(nil), children...),
		yields:   append([]param.Var(nil), yields...),
	}
	s.engine = newEngine(name, "", children[0].Space(),
		mergeParams(childParams(children), varParams(yields...)))
	s.engine.density = s.densityDual
	s.engine.analytic = s.analyticNorm
	s.engine.self = s
	return s, nil
}

// Children returns the child models in mixture order.
func (s *ExtendedSum) Children() []Model { return append([]Model(nil), s.children...) }

// TotalYield returns the summed expected event count.
func (s *ExtendedSum) TotalYield() float64 { return s.TotalYieldDual(nil).Real }

// TotalYieldDual is TotalYield with derivative tracking.
func (s *ExtendedSum) TotalYieldDual(seed *param.Parameter) dual.Num {
	var total dual.Num
	for _, y := range s.yields {
		total = dual.Add(total, y.Dual(seed))
	}
	return total
}

func (s *ExtendedSum) weights(seed *param.Parameter) []dual.Num {
	total := s.TotalYieldDual(seed)
	ws := make([]dual.Num, len(s.yields))
	for i, y := range s.yields {
		ws[i] = dual.Div(y.Dual(seed), total)
	}
	return ws
}

func (s *ExtendedSum) densityDual(pt dataset.Point, seed *param.Parameter) dual.Num {
	ws := s.weights(seed)
	var total dual.Num
	for i, c := range s.children {
		total = dual.Add(total, dual.Mul(ws[i], c.DensityDual(pt, seed)))
	}
	return total
}

func (s *ExtendedSum) analyticNorm(sp space.Space, seed *param.Parameter) (dual.Num, error) {
	ws := s.weights(seed)
	var total dual.Num
	for i, c := range s.children {
		n, err := c.NormalizationDual(sp, seed)
		if err != nil {
			return dual.Num{}, err
		}
		total = dual.Add(total, dual.Mul(ws[i], n))
	}
	return total, nil
}

// ExtendedModel attaches an absolute yield to any model, making it
// usable in extended likelihoods. Density and normalization delegate to
// the wrapped model (and its cache entries).
type ExtendedModel struct {
	Model
	yield param.Var
}

// Extend wraps m with a yield parameter.
func Extend(m Model, yield param.Var) (*ExtendedModel, error) {
	if m == nil || yield == nil {
		return nil, fmt.Errorf("%w: extend", ErrNilVar)
	}
	return &ExtendedModel{Model: m, yield: yield}, nil
}

// Parameters returns the wrapped model's parameters plus the yield's.
func (e *ExtendedModel) Parameters() []*param.Parameter {
	return mergeParams(e.Model.Parameters(), varParams(e.yield))
}

// TotalYield returns the expected event count.
func (e *ExtendedModel) TotalYield() float64 { return e.yield.Value() }

// TotalYieldDual is TotalYield with derivative tracking.
func (e *ExtendedModel) TotalYieldDual(seed *param.Parameter) dual.Num {
	return e.yield.Dual(seed)
}
