package param

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/katalvlaran/fitgraph/dual"
)

// Sentinel errors for parameter construction and mutation.
var (
	// ErrEmptyName indicates a parameter with an empty name.
	ErrEmptyName = errors.New("param: name is empty")

	// ErrInvalidBounds indicates lower > upper, a NaN bound, or an initial
	// value outside the bounds.
	ErrInvalidBounds = errors.New("param: invalid bounds")

	// ErrOutOfBounds indicates a SetValue outside [lower, upper].
	// The prior value is retained.
	ErrOutOfBounds = errors.New("param: value out of bounds")

	// ErrCyclicDependency indicates a cycle in the dependent-parameter
	// reference graph, detected at construction.
	ErrCyclicDependency = errors.New("param: cyclic parameter dependency")
)

// Var is the capability every parameter-like value exposes to models:
// independent Parameters and Dependents both satisfy it.
type Var interface {
	// Name returns the unique parameter name.
	Name() string

	// Value returns the current scalar value. Dependents recompute from
	// their upstream values on every call.
	Value() float64

	// Dual returns the value as a dual number, carrying derivative 1
	// exactly when the receiver is (or transitively depends on) seed.
	Dual(seed *Parameter) dual.Num

	// Independents returns the independent Parameters the Var resolves
	// to: itself for a Parameter, the deduplicated transitive leaves for
	// a Dependent.
	Independents() []*Parameter
}

// Parameter is a named, bounded, mutable scalar — the only mutable state
// in a fitgraph model graph.
type Parameter struct {
	name  string
	lower float64
	upper float64

	mu       sync.RWMutex
	value    float64
	floating bool
	step     float64
}

// New constructs a Parameter with bounds. Requires lower ≤ upper and
// value ∈ [lower, upper]; use ±Inf for unbounded ends.
func New(name string, value, lower, upper float64) (*Parameter, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if math.IsNaN(lower) || math.IsNaN(upper) || lower > upper {
		return nil, fmt.Errorf("%w: [%g, %g] on %q", ErrInvalidBounds, lower, upper, name)
	}
	if math.IsNaN(value) || value < lower || value > upper {
		return nil, fmt.Errorf("%w: initial value %g outside [%g, %g] on %q",
			ErrInvalidBounds, value, lower, upper, name)
	}
	return &Parameter{name: name, lower: lower, upper: upper, value: value, floating: true}, nil
}

// NewUnbounded constructs a Parameter with (-Inf, +Inf) bounds.
func NewUnbounded(name string, value float64) (*Parameter, error) {
	return New(name, value, math.Inf(-1), math.Inf(1))
}

// MustNew is New that panics on error; intended for tests and examples
// with literal bounds.
func MustNew(name string, value, lower, upper float64) *Parameter {
	p, err := New(name, value, lower, upper)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the parameter name.
func (p *Parameter) Name() string { return p.name }

// Bounds returns the lower and upper bound.
func (p *Parameter) Bounds() (lower, upper float64) { return p.lower, p.upper }

// Value returns the current value.
func (p *Parameter) Value() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// SetValue updates the value. It fails with ErrOutOfBounds when v lies
// outside [lower, upper], leaving the prior value unchanged. On success
// every subscribed Observer is notified before SetValue returns, so
// caches keyed on this parameter are invalidated eagerly.
func (p *Parameter) SetValue(v float64) error {
	if math.IsNaN(v) || v < p.lower || v > p.upper {
		return fmt.Errorf("%w: %g outside [%g, %g] on %q", ErrOutOfBounds, v, p.lower, p.upper, p.name)
	}
	p.mu.Lock()
	p.value = v
	p.mu.Unlock()
	notify(p)
	return nil
}

// Dual returns the value as a dual number; the derivative is 1 exactly
// when p is the seeded parameter.
func (p *Parameter) Dual(seed *Parameter) dual.Num {
	if p == seed {
		return dual.Var(p.Value())
	}
	return dual.Const(p.Value())
}

// Independents returns the parameter itself.
func (p *Parameter) Independents() []*Parameter { return []*Parameter{p} }

// Floating reports whether the parameter is free in a fit.
// New parameters float by default.
func (p *Parameter) Floating() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.floating
}

// SetFloating marks the parameter free (true) or fixed (false) for fits.
func (p *Parameter) SetFloating(f bool) {
	p.mu.Lock()
	p.floating = f
	p.mu.Unlock()
}

// StepSize returns the minimizer step-size hint (0 when unset).
func (p *Parameter) StepSize() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.step
}

// SetStepSize records a minimizer step-size hint.
func (p *Parameter) SetStepSize(s float64) {
	p.mu.Lock()
	p.step = s
	p.mu.Unlock()
}

// Snapshot is a read-only copy of a parameter's state, for external
// persistence and reporting.
type Snapshot struct {
	Name  string
	Value float64
	Lower float64
	Upper float64
}

// Snapshot returns the (name, value, bounds) triple at call time.
func (p *Parameter) Snapshot() Snapshot {
	return Snapshot{Name: p.name, Value: p.Value(), Lower: p.lower, Upper: p.upper}
}
