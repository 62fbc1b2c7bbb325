package pdf

import (
	"sync"

	"github.com/katalvlaran/fitgraph/dual"
	"github.com/katalvlaran/fitgraph/param"
	"github.com/katalvlaran/fitgraph/space"
)

// Model kinds with analytic normalizations registered at package load.
const (
	KindGauss       = "gauss"
	KindExponential = "exponential"
	KindUniform     = "uniform"
)

// AnalyticNormalization computes ∫ density over sp in closed form for a
// model of a registered kind, with derivative tracking for seed.
type AnalyticNormalization func(m Model, sp space.Space, seed *param.Parameter) (dual.Num, error)

// The registry maps model kinds to their analytic normalizations.
// Shipped primitives register themselves in init; user primitives built
// with NewPrimitive may register their own kind. An unregistered kind
// falls through to quadrature.
var (
	analyticMu  sync.RWMutex
	analyticReg = make(map[string]AnalyticNormalization)
)

// RegisterAnalyticNormalization installs (or replaces) the analytic
// normalization for a model kind.
func RegisterAnalyticNormalization(kind string, fn AnalyticNormalization) {
	analyticMu.Lock()
	analyticReg[kind] = fn
	analyticMu.Unlock()
}

func analyticFor(kind string) (AnalyticNormalization, bool) {
	if kind == "" {
		return nil, false
	}
	analyticMu.RLock()
	fn, ok := analyticReg[kind]
	analyticMu.RUnlock()
	return fn, ok
}
