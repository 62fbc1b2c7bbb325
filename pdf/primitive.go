package pdf

import (
	"fmt"

	"github.com/katalvlaran/fitgraph/dataset"
	"github.com/katalvlaran/fitgraph/dual"
	"github.com/katalvlaran/fitgraph/param"
	"github.com/katalvlaran/fitgraph/space"
)

// Density is a user-supplied unnormalized density over dual numbers.
// Read parameters through v.Dual(seed) so gradients flow; treat the
// point's coordinates as constants.
type Density func(pt dataset.Point, seed *param.Parameter) dual.Num

// Primitive is the bring-your-own-density leaf node: any dual-valued
// density becomes a full Model with numeric normalization, caching and
// gradient support. Give it a registered kind to attach an analytic
// normalization; the empty kind always integrates numerically.
type Primitive struct {
	*engine
	vars []param.Var
}

// NewPrimitive wraps a density into a model node over sp. vars must
// list every parameter the density reads.
func NewPrimitive(name, kind string, sp space.Space, density Density, vars ...param.Var) (*Primitive, error) {
	if density == nil {
		return nil, fmt.Errorf("%w: primitive %q", ErrNilVar, name)
	}
	for i, v := range vars {
		if v == nil {
			return nil, fmt.Errorf("%w: primitive %q var %d", ErrNilVar, name, i)
		}
	}
	p := &Primitive{
		engine: newEngine(name, kind, sp, varParams(vars...)),
		vars:   append([]param.Var(nil), vars...),
	}
	p.engine.density = densityFunc(density)
	p.engine.self = p
	return p, nil
}

// Vars returns the declared parameter-like inputs of the density.
func (p *Primitive) Vars() []param.Var {
	out := make([]param.Var, len(p.vars))
	copy(out, p.vars)
	return out
}
