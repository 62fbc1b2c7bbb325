package pdf

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/katalvlaran/fitgraph/dataset"
	"github.com/katalvlaran/fitgraph/dual"
	"github.com/katalvlaran/fitgraph/integrate"
	"github.com/katalvlaran/fitgraph/param"
	"github.com/katalvlaran/fitgraph/space"
)

// Model is the capability every density node exposes, leaf or combinator.
// Nodes are stateless: density and normalization are pure functions of
// the point, the Space and the current parameter values.
type Model interface {
	// Name returns the node's name.
	Name() string

	// Space returns the node's full domain.
	Space() space.Space

	// Parameters returns the independent parameters the node transitively
	// depends on, deduplicated, in first-seen order.
	Parameters() []*param.Parameter

	// UnnormalizedDensity evaluates the raw density at pt under the
	// current parameter values. Cheap; called per point.
	UnnormalizedDensity(pt dataset.Point) float64

	// DensityDual is UnnormalizedDensity over dual numbers: the result's
	// derivative component tracks the seeded parameter (nil seed means a
	// plain value evaluation).
	DensityDual(pt dataset.Point, seed *param.Parameter) dual.Num

	// Normalization returns the integral of the unnormalized density
	// over sp — analytic when available, quadrature otherwise, memoized
	// process-wide.
	Normalization(sp space.Space) (float64, error)

	// NormalizationDual is Normalization differentiated with respect to
	// seed. Seeded calls bypass the cache; nil-seed calls use it.
	NormalizationDual(sp space.Space, seed *param.Parameter) (dual.Num, error)

	// PDF returns UnnormalizedDensity(pt) / Normalization(sp).
	// Fails with ErrNormalization when the denominator is unusable.
	PDF(pt dataset.Point, sp space.Space) (float64, error)

	// LogPDF returns log(PDF(pt, sp)).
	LogPDF(pt dataset.Point, sp space.Space) (float64, error)
}

// Extended is a Model carrying an absolute event yield, for extended
// maximum-likelihood fits.
type Extended interface {
	Model

	// TotalYield returns the expected total event count.
	TotalYield() float64

	// TotalYieldDual is TotalYield differentiated with respect to seed.
	TotalYieldDual(seed *param.Parameter) dual.Num
}

var nodeID atomic.Uint64

// densityFunc evaluates a node's unnormalized density at a point, with
// derivative tracking for the seeded parameter.
type densityFunc func(pt dataset.Point, seed *param.Parameter) dual.Num

// analyticFunc computes a node's normalization over sp in closed form.
type analyticFunc func(sp space.Space, seed *param.Parameter) (dual.Num, error)

// engine carries the machinery shared by every node: identity, parameter
// bookkeeping, normalization resolution, caching and the PDF quotient.
// Concrete nodes embed it and plug in their density (and, for
// combinators, a composite analytic hook).
type engine struct {
	id     uint64
	name   string
	kind   string
	sp     space.Space
	params []*param.Parameter

	density  densityFunc
	analytic analyticFunc // composite formula; takes precedence over the kind registry
	self     Model        // set once by the owning constructor
	iopts    integrate.Options
}

func newEngine(name, kind string, sp space.Space, params []*param.Parameter) *engine {
	return &engine{
		id:     nodeID.Add(1),
		name:   name,
		kind:   kind,
		sp:     sp,
		params: params,
		iopts:  integrate.DefaultOptions(),
	}
}

// Name returns the node's name.
func (e *engine) Name() string { return e.name }

// Space returns the node's full domain.
func (e *engine) Space() space.Space { return e.sp }

// Parameters returns the node's transitive independent parameters.
func (e *engine) Parameters() []*param.Parameter {
	out := make([]*param.Parameter, len(e.params))
	copy(out, e.params)
	return out
}

// UnnormalizedDensity evaluates the raw density at pt.
func (e *engine) UnnormalizedDensity(pt dataset.Point) float64 {
	return e.density(pt, nil).Real
}

// DensityDual evaluates the raw density with derivative tracking.
func (e *engine) DensityDual(pt dataset.Point, seed *param.Parameter) dual.Num {
	return e.density(pt, seed)
}

// Normalization integrates the unnormalized density over sp, serving
// repeated calls from the process-wide cache until a parameter the node
// depends on changes. The parameter snapshot is part of the cache key,
// so a stale value cannot be returned even before invalidation lands.
func (e *engine) Normalization(sp space.Space) (float64, error) {
	key := defaultCache.keyFor(e.id, e.params, sp)
	if v, ok := defaultCache.lookup(key); ok {
		return v, nil
	}
	n, err := e.normalizeDual(sp, nil)
	if err != nil {
		return 0, err
	}
	defaultCache.store(key, e.params, n.Real)
	return n.Real, nil
}

// NormalizationDual computes the normalization with derivative tracking.
// A nil seed, or a seed the node does not depend on, reuses the cached
// float; a live seed recomputes through the dual quadrature path.
func (e *engine) NormalizationDual(sp space.Space, seed *param.Parameter) (dual.Num, error) {
	if seed == nil || !e.dependsOn(seed) {
		n, err := e.Normalization(sp)
		if err != nil {
			return dual.Num{}, err
		}
		return dual.Const(n), nil
	}
	return e.normalizeDual(sp, seed)
}

func (e *engine) dependsOn(p *param.Parameter) bool {
	for _, q := range e.params {
		if q == p {
			return true
		}
	}
	return false
}

// normalizeDual resolves the normalization: composite hook, then the
// kind registry, then numeric quadrature.
func (e *engine) normalizeDual(sp space.Space, seed *param.Parameter) (dual.Num, error) {
	if e.analytic != nil {
		return e.analytic(sp, seed)
	}
	if fn, ok := analyticFor(e.kind); ok {
		return fn(e.self, sp, seed)
	}
	defaultCache.countNumeric()
	return e.numericDual(sp, seed)
}

// numericDual integrates the density over sp by Gauss–Legendre
// quadrature: adaptive order over one axis, nested fixed order beyond.
func (e *engine) numericDual(sp space.Space, seed *param.Parameter) (dual.Num, error) {
	if !sp.Finite() {
		return dual.Num{}, fmt.Errorf("%w: model %q over %s", ErrNormalization, e.name, sp.Key())
	}
	axes := sp.Axes()
	if len(axes) == 1 {
		name := axes[0].Name()
		if seed == nil {
			f := func(x float64) float64 { return e.density(dataset.Point{name: x}, nil).Real }
			v, err := integrate.Adaptive(f, axes[0].Intervals(), e.iopts)
			return dual.Const(v), err
		}
		f := func(x dual.Num) dual.Num { return e.density(dataset.Point{name: x.Real}, seed) }
		return integrate.OverUnionDual(f, axes[0].Intervals(), e.iopts)
	}

	// Nested tensor rule over a shared point; sequential by construction.
	opts := e.iopts
	opts.Parallel = false
	pt := make(dataset.Point, len(axes))
	var level func(i int) dual.Num
	level = func(i int) dual.Num {
		f := func(x dual.Num) dual.Num {
			pt[axes[i].Name()] = x.Real
			if i == len(axes)-1 {
				return e.density(pt, seed)
			}
			return level(i + 1)
		}
		// Finiteness was checked for the whole space up front.
		v, _ := integrate.OverUnionDual(f, axes[i].Intervals(), opts)
		return v
	}
	return level(0), nil
}

// PDF returns the normalized density at pt over sp.
func (e *engine) PDF(pt dataset.Point, sp space.Space) (float64, error) {
	n, err := e.Normalization(sp)
	if err != nil {
		return 0, err
	}
	if n <= 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: %g for model %q", ErrNormalization, n, e.name)
	}
	return e.density(pt, nil).Real / n, nil
}

// LogPDF returns log(PDF(pt, sp)).
func (e *engine) LogPDF(pt dataset.Point, sp space.Space) (float64, error) {
	p, err := e.PDF(pt, sp)
	if err != nil {
		return 0, err
	}
	return math.Log(p), nil
}

// mergeParams deduplicates parameter lists preserving first-seen order.
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

// varParams collects the independent parameters behind a set of Vars.
func varParams(vars ...param.Var) []*param.Parameter {
	lists := make([][]*param.Parameter, len(vars))
	for i, v := range vars {
		lists[i] = v.Independents()
	}
	return mergeParams(lists...)
}

// childParams collects the transitive parameters of child models.
func childParams(children []Model) []*param.Parameter {
	lists := make([][]*param.Parameter, len(children))
	for i, c := range children {
		lists[i] = c.Parameters()
	}
	return mergeParams(lists...)
}
