package loss

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/fitgraph/dual"
	"github.com/katalvlaran/fitgraph/param"
)

// Sentinel errors for loss construction and evaluation.
var (
	// ErrNonFiniteLoss indicates a loss term that evaluated to NaN or
	// ±Inf. Always fatal to the current evaluation; never substituted.
	ErrNonFiniteLoss = errors.New("loss: non-finite loss value")

	// ErrNotExtended indicates an extended likelihood over a model that
	// carries no yield.
	ErrNotExtended = errors.New("loss: model is not extended")

	// ErrIncompatibleLoss indicates an Add between losses that cannot be
	// merged unambiguously.
	ErrIncompatibleLoss = errors.New("loss: losses cannot be combined")

	// ErrBadConstraint indicates a constraint with a non-positive width.
	ErrBadConstraint = errors.New("loss: bad constraint")

	// ErrNilLoss indicates a nil model, dataset or loss argument.
	ErrNilLoss = errors.New("loss: nil argument")
)

// Loss is the whole contract an external minimizer consumes.
type Loss interface {
	// Value evaluates the objective under the current parameter values.
	Value() (float64, error)

	// Gradient returns ∂Value/∂p for each given parameter, defaulting to
	// every floating parameter of the loss in registration order.
	Gradient(params ...*param.Parameter) ([]float64, error)

	// Parameters returns the independent parameters the loss depends on,
	// deduplicated, in first-seen order (floating and fixed alike).
	Parameters() []*param.Parameter

	// Add combines two losses into a simultaneous fit.
	Add(other Loss) (Loss, error)
}

// dualValuer is the internal evaluation capability every loss here
// implements: one seeded sweep yields value and derivative together.
type dualValuer interface {
	valueDual(seed *param.Parameter) (dual.Num, error)
}

// value runs the nil-seed sweep with the finite check.
func value(l dualValuer) (float64, error) {
	v, err := l.valueDual(nil)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v.Real) || math.IsInf(v.Real, 0) {
		return 0, fmt.Errorf("%w: %g", ErrNonFiniteLoss, v.Real)
	}
	return v.Real, nil
}

// gradient runs one sweep per requested parameter, in parallel —
// sweeps only read shared state.
func gradient(l dualValuer, all []*param.Parameter, params []*param.Parameter) ([]float64, error) {
	if len(params) == 0 {
		params = floating(all)
	}
	out := make([]float64, len(params))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range params {
		g.Go(func() error {
			v, err := l.valueDual(p)
			if err != nil {
				return err
			}
			if !dual.IsFinite(v) {
				return fmt.Errorf("%w: d/d%s", ErrNonFiniteLoss, p.Name())
			}
			out[i] = v.Emag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func floating(params []*param.Parameter) []*param.Parameter {
	out := make([]*param.Parameter, 0, len(params))
	for _, p := range params {
		if p.Floating() {
			out = append(out, p)
		}
	}
	return out
}

func mergeParams(lists ...[]*param.Parameter) []*param.Parameter {
	seen := make(map[*param.Parameter]struct{})
	var out []*param.Parameter
	for _, list := range lists {
		for _, p := range list {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// joint sums heterogeneous losses for simultaneous fits.
type joint struct {
	parts []Loss
}

func newJoint(parts ...Loss) (*joint, error) {
	for _, p := range parts {
		if p == nil {
			return nil, ErrNilLoss
		}
		if _, ok := p.(dualValuer); !ok {
			return nil, fmt.Errorf("%w: %T has no gradient path", ErrIncompatibleLoss, p)
		}
		if _, simple := p.(*Simple); simple {
			return nil, fmt.Errorf("%w: Simple losses carry no data binding", ErrIncompatibleLoss)
		}
	}
	return &joint{parts: parts}, nil
}

func (j *joint) valueDual(seed *param.Parameter) (dual.Num, error) {
	var total dual.Num
	for _, p := range j.parts {
		v, err := p.(dualValuer).valueDual(seed)
		if err != nil {
			return dual.Num{}, err
		}
		total = dual.Add(total, v)
	}
	return total, nil
}

// Value evaluates the summed objective.
func (j *joint) Value() (float64, error) { return value(j) }

// Gradient differentiates the summed objective.
func (j *joint) Gradient(params ...*param.Parameter) ([]float64, error) {
	return gradient(j, j.Parameters(), params)
}

// Parameters returns the union of the parts' parameters.
func (j *joint) Parameters() []*param.Parameter {
	lists := make([][]*param.Parameter, len(j.parts))
	for i, p := range j.parts {
		lists[i] = p.Parameters()
	}
	return mergeParams(lists...)
}

// Add appends another loss to the simultaneous sum.
func (j *joint) Add(other Loss) (Loss, error) {
	return newJoint(append(append([]Loss(nil), j.parts...), other)...)
}
