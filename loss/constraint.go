package loss

import (
	"fmt"

	"github.com/katalvlaran/fitgraph/dual"
	"github.com/katalvlaran/fitgraph/param"
)

// Constraint is a penalty term added into a likelihood — typically a
// prior on a single parameter.
type Constraint interface {
	// Parameters returns the independent parameters the term penalizes.
	Parameters() []*param.Parameter

	valueDual(seed *param.Parameter) (dual.Num, error)
}

// gaussianConstraint penalizes ½((v − μ)/σ)² — the negative log of a
// Gaussian prior, with the value-independent constant dropped.
type gaussianConstraint struct {
	v     param.Var
	mu    float64
	sigma float64
}

// NewGaussianConstraint builds a Gaussian prior penalty on v with mean
// mu and width sigma > 0. Vector priors with correlations are expressed
// as one constraint per parameter after diagonalization; the core keeps
// the scalar form.
func NewGaussianConstraint(v param.Var, mu, sigma float64) (Constraint, error) {
	if v == nil {
		return nil, ErrNilLoss
	}
	if sigma <= 0 {
		return nil, fmt.Errorf("%w: sigma %g on %q", ErrBadConstraint, sigma, v.Name())
	}
	return &gaussianConstraint{v: v, mu: mu, sigma: sigma}, nil
}

func (c *gaussianConstraint) Parameters() []*param.Parameter { return c.v.Independents() }

func (c *gaussianConstraint) valueDual(seed *param.Parameter) (dual.Num, error) {
	z := dual.Scale(1/c.sigma, dual.Shift(-c.mu, c.v.Dual(seed)))
	return dual.Scale(0.5, dual.Sqr(z)), nil
}
