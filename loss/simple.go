package loss

import (
	"fmt"

	"github.com/katalvlaran/fitgraph/dual"
	"github.com/katalvlaran/fitgraph/param"
)

// SimpleFunc is a user objective over dual numbers: args arrive in the
// order the dependents were declared.
type SimpleFunc func(args []dual.Num) dual.Num

// Simple wraps an arbitrary objective closure with an explicit list of
// the parameters it depends on, giving it the full Loss contract —
// value, gradients, finite checks — without any model or data binding.
type Simple struct {
	fn   SimpleFunc
	deps []*param.Parameter
}

// NewSimple builds a loss from a closure and its declared dependents.
func NewSimple(fn SimpleFunc, deps ...*param.Parameter) (*Simple, error) {
	if fn == nil || len(deps) == 0 {
		return nil, fmt.Errorf("%w: simple loss needs a function and dependents", ErrNilLoss)
	}
	return &Simple{fn: fn, deps: append([]*param.Parameter(nil), deps...)}, nil
}

func (s *Simple) valueDual(seed *param.Parameter) (dual.Num, error) {
	args := make([]dual.Num, len(s.deps))
	for i, p := range s.deps {
		args[i] = p.Dual(seed)
	}
	return s.fn(args), nil
}

// Value evaluates the closure under the current parameter values.
func (s *Simple) Value() (float64, error) { return value(s) }

// Gradient differentiates the closure.
func (s *Simple) Gradient(params ...*param.Parameter) ([]float64, error) {
	return gradient(s, s.deps, params)
}

// Parameters returns the declared dependents.
func (s *Simple) Parameters() []*param.Parameter {
	return append([]*param.Parameter(nil), s.deps...)
}

// Add always fails: a Simple loss binds no data or range, so combining
// it with another loss has no unambiguous meaning.
func (s *Simple) Add(Loss) (Loss, error) {
	return nil, fmt.Errorf("%w: Simple losses carry no data binding", ErrIncompatibleLoss)
}
