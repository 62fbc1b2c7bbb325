package loss

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/fitgraph/dataset"
	"github.com/katalvlaran/fitgraph/dual"
	"github.com/katalvlaran/fitgraph/param"
	"github.com/katalvlaran/fitgraph/pdf"
	"github.com/katalvlaran/fitgraph/space"
)

// pair binds one model to one dataset over one fit range.
type pair struct {
	model    pdf.Model
	data     *dataset.Dataset
	fitRange space.Space
	extended bool
}

// NLL is the unbinned negative log-likelihood:
//
//	−Σ wᵢ·log pdf(xᵢ)  per (model, data) pair, summed across pairs,
//
// plus constraint penalties. Extended pairs add ν − W·log ν for the
// model's total yield ν and total data weight W.
type NLL struct {
	pairs       []pair
	constraints []Constraint
}

// Option configures NLL construction.
type Option func(*NLL)

// WithConstraints attaches penalty terms to the likelihood.
func WithConstraints(cs ...Constraint) Option {
	return func(l *NLL) { l.constraints = append(l.constraints, cs...) }
}

// NewUnbinnedNLL builds the unbinned likelihood for one (model, data)
// pair. A zero-value fitRange defaults to the dataset's binding Space.
func NewUnbinnedNLL(model pdf.Model, data *dataset.Dataset, fitRange space.Space, opts ...Option) (*NLL, error) {
	return newNLL(model, data, fitRange, false, opts...)
}

// NewExtendedUnbinnedNLL builds the extended unbinned likelihood; the
// model must carry a yield (pdf.Extended).
func NewExtendedUnbinnedNLL(model pdf.Model, data *dataset.Dataset, fitRange space.Space, opts ...Option) (*NLL, error) {
	if _, ok := model.(pdf.Extended); !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotExtended, model)
	}
	return newNLL(model, data, fitRange, true, opts...)
}

func newNLL(model pdf.Model, data *dataset.Dataset, fitRange space.Space, extended bool, opts ...Option) (*NLL, error) {
	if model == nil || data == nil {
		return nil, ErrNilLoss
	}
	if fitRange.Dim() == 0 {
		fitRange = data.Space()
	}
	l := &NLL{pairs: []pair{{model: model, data: data, fitRange: fitRange, extended: extended}}}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// pairValue evaluates one pair's contribution under a seeded sweep.
// The normalization is resolved once per pair, then shared by every
// point's log-pdf.
func pairValue(p pair, seed *param.Parameter) (dual.Num, error) {
	norm, err := p.model.NormalizationDual(p.fitRange, seed)
	if err != nil {
		return dual.Num{}, err
	}
	if norm.Real <= 0 {
		return dual.Num{}, fmt.Errorf("%w: %g for %q over %s",
			pdf.ErrNormalization, norm.Real, p.model.Name(), p.fitRange.Key())
	}
	logNorm := dual.Log(norm)
	var sum dual.Num
	for i := 0; i < p.data.Len(); i++ {
		logDensity := dual.Log(p.model.DensityDual(p.data.At(i), seed))
		sum = dual.Add(sum, dual.Scale(p.data.Weight(i), dual.Sub(logDensity, logNorm)))
	}
	nll := dual.Neg(sum)
	if p.extended {
		yield := p.model.(pdf.Extended).TotalYieldDual(seed)
		w := p.data.SumWeights()
		nll = dual.Add(nll, dual.Sub(yield, dual.Scale(w, dual.Log(yield))))
	}
	return nll, nil
}

func (l *NLL) valueDual(seed *param.Parameter) (dual.Num, error) {
	parts := make([]dual.Num, len(l.pairs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range l.pairs {
		g.Go(func() error {
			v, err := pairValue(p, seed)
			if err != nil {
				return err
			}
			parts[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return dual.Num{}, err
	}
	total := dual.Sum(parts...)
	for _, c := range l.constraints {
		v, err := c.valueDual(seed)
		if err != nil {
			return dual.Num{}, err
		}
		total = dual.Add(total, v)
	}
	return total, nil
}

// Value evaluates the likelihood under the current parameter values.
func (l *NLL) Value() (float64, error) { return value(l) }

// Gradient differentiates the likelihood.
func (l *NLL) Gradient(params ...*param.Parameter) ([]float64, error) {
	return gradient(l, l.Parameters(), params)
}

// Parameters returns the union of model and constraint parameters.
func (l *NLL) Parameters() []*param.Parameter {
	lists := make([][]*param.Parameter, 0, len(l.pairs)+len(l.constraints))
	for _, p := range l.pairs {
		lists = append(lists, p.model.Parameters())
	}
	for _, c := range l.constraints {
		lists = append(lists, c.Parameters())
	}
	return mergeParams(lists...)
}

// Constraints returns the attached penalty terms.
func (l *NLL) Constraints() []Constraint {
	return append([]Constraint(nil), l.constraints...)
}

// Models returns the models across all pairs, in pair order.
func (l *NLL) Models() []pdf.Model {
	out := make([]pdf.Model, len(l.pairs))
	for i, p := range l.pairs {
		out[i] = p.model
	}
	return out
}

// Add merges another likelihood into a simultaneous fit: two NLLs fuse
// their pair and constraint lists; other loss kinds join through a
// summed composite. Simple losses never merge.
func (l *NLL) Add(other Loss) (Loss, error) {
	switch o := other.(type) {
	case *NLL:
		return &NLL{
			pairs:       append(append([]pair(nil), l.pairs...), o.pairs...),
			constraints: append(append([]Constraint(nil), l.constraints...), o.constraints...),
		}, nil
	case *Simple:
		return nil, fmt.Errorf("%w: Simple losses carry no data binding", ErrIncompatibleLoss)
	default:
		return newJoint(l, other)
	}
}
