package minimize

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/optimize"

	"github.com/katalvlaran/fitgraph/loss"
	"github.com/katalvlaran/fitgraph/param"
)

// ErrNoFreeParams indicates a loss with nothing to fit.
var ErrNoFreeParams = errors.New("minimize: no floating parameters")

// Result reports a finished minimization.
type Result struct {
	// Loss is the objective value at the optimum.
	Loss float64

	// Params snapshots every fitted parameter at the optimum.
	Params []param.Snapshot

	// Converged reports whether the optimizer met a convergence
	// criterion (as opposed to hitting an iteration/evaluation limit).
	Converged bool

	// Evaluations counts objective evaluations.
	Evaluations int
}

type config struct {
	method optimize.Method
	params []*param.Parameter
}

// Option configures Run.
type Option func(*config)

// WithMethod selects the gonum optimization method (default BFGS).
func WithMethod(m optimize.Method) Option {
	return func(c *config) { c.method = m }
}

// WithParams restricts the fit to the given parameters instead of every
// floating parameter of the loss.
func WithParams(ps ...*param.Parameter) Option {
	return func(c *config) { c.params = ps }
}

// Run minimizes l over its floating parameters, writes the optimum back
// into the parameters and returns the snapshot. Loss evaluation errors
// are reported to the optimizer as +Inf; the first such error is also
// kept and returned when the optimizer fails to recover from it.
func Run(l loss.Loss, opts ...Option) (*Result, error) {
	if l == nil {
		return nil, loss.ErrNilLoss
	}
	cfg := config{method: &optimize.BFGS{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	free := cfg.params
	if free == nil {
		for _, p := range l.Parameters() {
			if p.Floating() {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return nil, ErrNoFreeParams
	}

	var mu sync.Mutex
	var firstErr error
	record := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	apply := func(x []float64) bool {
		for i, p := range free {
			lo, hi := p.Bounds()
			if x[i] < lo || x[i] > hi {
				return false
			}
		}
		for i, p := range free {
			if err := p.SetValue(x[i]); err != nil {
				record(err)
				return false
			}
		}
		return true
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			if !apply(x) {
				return math.Inf(1)
			}
			v, err := l.Value()
			if err != nil {
				record(err)
				return math.Inf(1)
			}
			return v
		},
		Grad: func(grad, x []float64) {
			if !apply(x) {
				for i := range grad {
					grad[i] = 0
				}
				return
			}
			g, err := l.Gradient(free...)
			if err != nil {
				record(err)
				for i := range grad {
					grad[i] = 0
				}
				return
			}
			copy(grad, g)
		},
	}

	init := make([]float64, len(free))
	for i, p := range free {
		init[i] = p.Value()
	}

	res, err := optimize.Minimize(problem, init, nil, cfg.method)
	if err != nil {
		if firstErr != nil {
			return nil, fmt.Errorf("minimize: %w", firstErr)
		}
		return nil, fmt.Errorf("minimize: %w", err)
	}
	if !apply(res.X) {
		if firstErr != nil {
			return nil, fmt.Errorf("minimize: %w", firstErr)
		}
		return nil, errors.New("minimize: optimum outside bounds")
	}
	final, err := l.Value()
	if err != nil {
		return nil, err
	}
	out := &Result{
		Loss:        final,
		Converged:   res.Status != optimize.Failure && res.Status != optimize.NotTerminated,
		Evaluations: res.Stats.FuncEvaluations,
	}
	for _, p := range free {
		out.Params = append(out.Params, p.Snapshot())
	}
	return out, nil
}
