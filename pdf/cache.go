package pdf

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/fitgraph/param"
	"github.com/katalvlaran/fitgraph/space"
)

// cacheKey identifies one normalization result: the node, the exact
// parameter values it was computed under, and the target Space.
type cacheKey struct {
	node uint64
	snap string
	sp   string
}

// Cache memoizes normalization constants process-wide. It subscribes to
// the param registry: every SetValue drops, before returning, all
// entries whose snapshot includes the mutated parameter. Because the
// snapshot is also baked into the key, a lookup after an unobserved
// drift simply misses — staleness is structurally impossible.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]float64
	byParam map[*param.Parameter]map[cacheKey]struct{}

	hits    atomic.Uint64
	misses  atomic.Uint64
	numeric atomic.Uint64
}

// NewCache returns an empty cache. Most callers want the process-wide
// default; fresh caches exist for tests.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[cacheKey]float64),
		byParam: make(map[*param.Parameter]map[cacheKey]struct{}),
	}
}

// defaultCache is the process-wide normalization cache, wired to the
// parameter invalidation registry at package load.
var defaultCache = NewCache()

func init() { param.Subscribe(defaultCache) }

// keyFor builds the cache key for a node over sp under the current
// values of params.
func (c *Cache) keyFor(node uint64, params []*param.Parameter, sp space.Space) cacheKey {
	var b strings.Builder
	for _, p := range params {
		b.WriteString(strconv.FormatUint(math.Float64bits(p.Value()), 16))
		b.WriteByte('|')
	}
	return cacheKey{node: node, snap: b.String(), sp: sp.Key()}
}

func (c *Cache) lookup(key cacheKey) (float64, bool) {
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

func (c *Cache) store(key cacheKey, params []*param.Parameter, v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = v
	for _, p := range params {
		keys, ok := c.byParam[p]
		if !ok {
			keys = make(map[cacheKey]struct{})
			c.byParam[p] = keys
		}
		keys[key] = struct{}{}
	}
}

func (c *Cache) countNumeric() { c.numeric.Add(1) }

// Invalidate drops every entry computed under a snapshot that includes
// p. Called synchronously from Parameter.SetValue.
func (c *Cache) Invalidate(p *param.Parameter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.byParam[p] {
		delete(c.entries, key)
	}
	delete(c.byParam, p)
}

// CacheStats reports cache behavior, for tests and diagnostics.
//   - Hits / Misses count Normalization lookups.
//   - NumericRecomputes counts entries that went through the quadrature
//     fallback (analytic resolutions do not increment it).
type CacheStats struct {
	Hits             uint64
	Misses           uint64
	NumericRecomputes uint64
}

// Stats returns a snapshot of the default cache's counters.
func Stats() CacheStats {
	return CacheStats{
		Hits:              defaultCache.hits.Load(),
		Misses:            defaultCache.misses.Load(),
		NumericRecomputes: defaultCache.numeric.Load(),
	}
}

// ResetCache clears the default cache's entries and counters.
func ResetCache() {
	defaultCache.mu.Lock()
	defer defaultCache.mu.Unlock()
	defaultCache.entries = make(map[cacheKey]float64)
	defaultCache.byParam = make(map[*param.Parameter]map[cacheKey]struct{})
	defaultCache.hits.Store(0)
	defaultCache.misses.Store(0)
	defaultCache.numeric.Store(0)
}
