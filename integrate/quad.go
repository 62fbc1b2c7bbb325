package integrate

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/katalvlaran/fitgraph/dual"
	"github.com/katalvlaran/fitgraph/space"
)

// Sentinel errors for quadrature.
var (
	// ErrBadOrder indicates a non-positive quadrature order.
	ErrBadOrder = errors.New("integrate: order must be positive")

	// ErrInfiniteInterval indicates numeric quadrature over an unbounded
	// interval. Models on infinite domains need analytic normalizations.
	ErrInfiniteInterval = errors.New("integrate: interval is not finite")
)

// Default quadrature policy.
const (
	// DefaultOrder is the Gauss–Legendre order per sub-interval.
	DefaultOrder = 64

	// DefaultMaxOrder caps adaptive order-doubling.
	DefaultMaxOrder = 512

	// DefaultTol is the adaptive refinement tolerance:
	// |I(2n) − I(n)| ≤ Tol·max(1, |I(2n)|).
	DefaultTol = 1e-10
)

// Options configures quadrature.
//   - Order:    Gauss–Legendre order per sub-interval.
//   - MaxOrder: cap for Adaptive's order-doubling.
//   - Tol:      Adaptive's stopping tolerance.
//   - Parallel: evaluate sub-intervals (and nodes, float path) concurrently.
type Options struct {
	Order    int
	MaxOrder int
	Tol      float64
	Parallel bool
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{Order: DefaultOrder, MaxOrder: DefaultMaxOrder, Tol: DefaultTol, Parallel: true}
}

func (o Options) validate() error {
	if o.Order <= 0 || o.MaxOrder < o.Order {
		return fmt.Errorf("%w: order=%d max=%d", ErrBadOrder, o.Order, o.MaxOrder)
	}
	return nil
}

// legendreCache memoizes reference nodes/weights on [-1, 1] per order;
// rules are deterministic, so one computation per order per process.
var legendreCache sync.Map // int → [2][]float64

func legendreNodes(order int) (x, w []float64) {
	if v, ok := legendreCache.Load(order); ok {
		nw := v.([2][]float64)
		return nw[0], nw[1]
	}
	x = make([]float64, order)
	w = make([]float64, order)
	quad.Legendre{}.FixedLocations(x, w, -1, 1)
	legendreCache.Store(order, [2][]float64{x, w})
	return x, w
}

// Fixed integrates f over one finite interval with an order-point
// Gauss–Legendre rule.
func Fixed(f func(float64) float64, iv space.Interval, order int) (float64, error) {
	if order <= 0 {
		return 0, ErrBadOrder
	}
	if !iv.Finite() {
		return 0, fmt.Errorf("%w: [%g, %g]", ErrInfiniteInterval, iv.Lo, iv.Hi)
	}
	return quad.Fixed(f, iv.Lo, iv.Hi, order, quad.Legendre{}, 0), nil
}

// FixedDual integrates a dual-valued f over one finite interval with the
// same Legendre nodes Fixed uses, accumulating value and derivative
// together. Node placement is parameter-independent, so the result's
// Emag is the exact derivative of the discrete rule.
func FixedDual(f func(dual.Num) dual.Num, iv space.Interval, order int) (dual.Num, error) {
	if order <= 0 {
		return dual.Num{}, ErrBadOrder
	}
	if !iv.Finite() {
		return dual.Num{}, fmt.Errorf("%w: [%g, %g]", ErrInfiniteInterval, iv.Lo, iv.Hi)
	}
	x, w := legendreNodes(order)
	half := (iv.Hi - iv.Lo) / 2
	mid := (iv.Hi + iv.Lo) / 2
	var acc dual.Num
	for i := range x {
		acc = dual.Add(acc, dual.Scale(w[i]*half, f(dual.Const(mid+half*x[i]))))
	}
	return acc, nil
}

// OverUnion integrates f over a union of disjoint intervals at fixed
// order, fanning sub-intervals out across goroutines when Parallel.
func OverUnion(f func(float64) float64, ivs []space.Interval, opts Options) (float64, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}
	if len(ivs) == 1 || !opts.Parallel {
		total := 0.0
		for _, iv := range ivs {
			part, err := Fixed(f, iv, opts.Order)
			if err != nil {
				return 0, err
			}
			total += part
		}
		return total, nil
	}
	parts := make([]float64, len(ivs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, iv := range ivs {
		g.Go(func() error {
			part, err := Fixed(f, iv, opts.Order)
			if err != nil {
				return err
			}
			parts[i] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	total := 0.0
	for _, p := range parts {
		total += p
	}
	return total, nil
}

// OverUnionDual is OverUnion for dual-valued integrands. Sequential:
// dual sweeps already parallelize one level up, per seeded parameter.
func OverUnionDual(f func(dual.Num) dual.Num, ivs []space.Interval, opts Options) (dual.Num, error) {
	if err := opts.validate(); err != nil {
		return dual.Num{}, err
	}
	var total dual.Num
	for _, iv := range ivs {
		part, err := FixedDual(f, iv, opts.Order)
		if err != nil {
			return dual.Num{}, err
		}
		total = dual.Add(total, part)
	}
	return total, nil
}

// Adaptive integrates f over the union, doubling the order until two
// successive estimates agree within Tol or MaxOrder is reached. The
// last (finest) estimate is returned either way; smooth integrands
// converge spectrally, so MaxOrder is a safety rail, not a failure.
func Adaptive(f func(float64) float64, ivs []space.Interval, opts Options) (float64, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}
	prev, err := OverUnion(f, ivs, opts)
	if err != nil {
		return 0, err
	}
	for order := opts.Order * 2; order <= opts.MaxOrder; order *= 2 {
		next := opts
		next.Order = order
		cur, err := OverUnion(f, ivs, next)
		if err != nil {
			return 0, err
		}
		if math.Abs(cur-prev) <= opts.Tol*math.Max(1, math.Abs(cur)) {
			return cur, nil
		}
		prev = cur
	}
	return prev, nil
}
