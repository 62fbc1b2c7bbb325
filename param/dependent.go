package param

import (
	"fmt"

	"github.com/katalvlaran/fitgraph/dual"
)

// Func is the pure expression a Dependent evaluates: args arrive in the
// order the upstream Vars were given to NewDependent.
type Func func(args []dual.Num) dual.Num

// Dependent is a parameter computed as a pure function of other
// parameters. It is immutable after construction and never caches:
// Value and Dual always recompute from the live upstream values.
type Dependent struct {
	name     string
	fn       Func
	upstream []Var
	leaves   []*Parameter
}

// NewDependent builds a dependent parameter over the given upstream
// Vars. The upstream reference graph is walked at construction; a cycle
// fails with ErrCyclicDependency. A nil fn or an empty upstream set is
// rejected outright.
func NewDependent(name string, fn Func, upstream ...Var) (*Dependent, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if fn == nil || len(upstream) == 0 {
		return nil, fmt.Errorf("param: dependent %q needs a function and at least one upstream", name)
	}
	d := &Dependent{name: name, fn: fn, upstream: append([]Var(nil), upstream...)}
	if err := checkAcyclic(d); err != nil {
		return nil, err
	}
	d.leaves = collectLeaves(d.upstream)
	return d, nil
}

// Name returns the dependent's name.
func (d *Dependent) Name() string { return d.name }

// Value recomputes the expression over the current upstream values.
func (d *Dependent) Value() float64 { return d.Dual(nil).Real }

// Dual evaluates the expression over dual upstream values, chaining the
// derivative of the seeded parameter through the expression.
func (d *Dependent) Dual(seed *Parameter) dual.Num {
	args := make([]dual.Num, len(d.upstream))
	for i, u := range d.upstream {
		args[i] = u.Dual(seed)
	}
	return d.fn(args)
}

// Independents returns the deduplicated independent Parameters the
// dependent transitively resolves to.
func (d *Dependent) Independents() []*Parameter {
	out := make([]*Parameter, len(d.leaves))
	copy(out, d.leaves)
	return out
}

// checkAcyclic walks the upstream closure depth-first with an
// in-progress mark; revisiting a node on the current path is a cycle.
// Dependents are immutable, so passing this check once settles it.
func checkAcyclic(root *Dependent) error {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[*Dependent]int)
	var walk func(d *Dependent) error
	walk = func(d *Dependent) error {
		switch state[d] {
		case visiting:
			return fmt.Errorf("%w: via %q", ErrCyclicDependency, d.name)
		case done:
			return nil
		}
		state[d] = visiting
		for _, u := range d.upstream {
			if dep, ok := u.(*Dependent); ok {
				if err := walk(dep); err != nil {
					return err
				}
			}
		}
		state[d] = done
		return nil
	}
	return walk(root)
}

func collectLeaves(upstream []Var) []*Parameter {
	seen := make(map[*Parameter]struct{})
	var out []*Parameter
	for _, u := range upstream {
		for _, p := range u.Independents() {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
