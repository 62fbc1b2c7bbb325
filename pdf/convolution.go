package pdf

import (
	"fmt"

	"github.com/katalvlaran/fitgraph/dataset"
	"github.com/katalvlaran/fitgraph/dual"
	"github.com/katalvlaran/fitgraph/integrate"
	"github.com/katalvlaran/fitgraph/param"
)

// Convolution smears a signal model with a resolution kernel on one
// shared axis:
//
//	(f ∗ k)(x) = ∫ f(x−t)·k(t) dt   over the kernel's space
//
// evaluated by fixed-order Gauss–Legendre quadrature. Both operands
// must be one-dimensional over the same axis name; the kernel's space
// must be finite (it is the integration range). The node's space is the
// signal's. The normalization is numeric like any unregistered node:
// clipping to a finite domain makes the textbook "norm is 1" shortcut
// wrong in general.
type Convolution struct {
	*engine
	signal Model
	kernel Model
	axis   string
	order  int
}

// NewConvolution builds the smeared model.
func NewConvolution(name string, signal, kernel Model) (*Convolution, error) {
	if signal == nil || kernel == nil {
		return nil, fmt.Errorf("%w: convolution %q", ErrNilVar, name)
	}
	if signal.Space().Dim() != 1 || kernel.Space().Dim() != 1 {
		return nil, fmt.Errorf("%w: convolution %q needs 1-D operands", ErrAxisMismatch, name)
	}
	sigAxis := signal.Space().AxisNames()[0]
	kerAxis := kernel.Space().AxisNames()[0]
	if sigAxis != kerAxis {
		return nil, fmt.Errorf("%w: %q vs %q in convolution %q", ErrAxisMismatch, sigAxis, kerAxis, name)
	}
	if !kernel.Space().Finite() {
		return nil, fmt.Errorf("%w: convolution %q kernel space must be finite", ErrAxisMismatch, name)
	}
	c := &Convolution{
		signal: signal,
		kernel: kernel,
		axis:   sigAxis,
		order:  integrate.DefaultOrder,
	}
	c.engine = newEngine(name, "", signal.Space(),
		mergeParams(signal.Parameters(), kernel.Parameters()))
	c.engine.density = c.densityDual
	c.engine.self = c
	return c, nil
}

// Signal returns the smeared model.
func (c *Convolution) Signal() Model { return c.signal }

// Kernel returns the resolution model.
func (c *Convolution) Kernel() Model { return c.kernel }

func (c *Convolution) densityDual(pt dataset.Point, seed *param.Parameter) dual.Num {
	x := pt[c.axis]
	f := func(t dual.Num) dual.Num {
		shifted := dataset.Point{c.axis: x - t.Real}
		at := dataset.Point{c.axis: t.Real}
		return dual.Mul(c.signal.DensityDual(shifted, seed), c.kernel.DensityDual(at, seed))
	}
	kAxis, _ := c.kernel.Space().Axis(c.axis)
	opts := integrate.DefaultOptions()
	opts.Order = c.order
	// Kernel space finiteness is construction-checked; the integral
	// cannot fail.
	v, _ := integrate.OverUnionDual(f, kAxis.Intervals(), opts)
	return v
}
