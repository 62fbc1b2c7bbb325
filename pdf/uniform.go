package pdf

import (
	"github.com/katalvlaran/fitgraph/dataset"
	"github.com/katalvlaran/fitgraph/dual"
	"github.com/katalvlaran/fitgraph/param"
	"github.com/katalvlaran/fitgraph/space"
)

// Uniform is the constant unit density over any number of axes: its
// normalization over a Space is exactly the Space's area. Parameter-free.
type Uniform struct {
	*engine
}

// NewUniform builds a flat density over sp.
func NewUniform(name string, sp space.Space) (*Uniform, error) {
	if sp.Dim() == 0 {
		return nil, space.ErrNoAxes
	}
	u := &Uniform{engine: newEngine(name, KindUniform, sp, nil)}
	u.engine.density = func(dataset.Point, *param.Parameter) dual.Num { return dual.Const(1) }
	u.engine.self = u
	return u, nil
}

func init() {
	RegisterAnalyticNormalization(KindUniform, func(_ Model, sp space.Space, _ *param.Parameter) (dual.Num, error) {
		return dual.Const(sp.Area()), nil
	})
}
