package param

import "sync"

// Observer is notified synchronously whenever a Parameter's value
// changes. The normalization cache in pdf subscribes one.
type Observer interface {
	// Invalidate is called from inside SetValue, after the new value is
	// stored and before SetValue returns.
	Invalidate(p *Parameter)
}

// The process-wide invalidation registry. One registry per process keeps
// the contract simple: any SetValue anywhere invalidates every dependent
// cache entry anywhere, immediately.
var registry struct {
	mu  sync.RWMutex
	obs []Observer
}

// Subscribe registers an Observer for all future SetValue calls.
func Subscribe(o Observer) {
	registry.mu.Lock()
	registry.obs = append(registry.obs, o)
	registry.mu.Unlock()
}

// Unsubscribe removes a previously subscribed Observer.
func Unsubscribe(o Observer) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for i, cur := range registry.obs {
		if cur == o {
			registry.obs = append(registry.obs[:i], registry.obs[i+1:]...)
			return
		}
	}
}

func notify(p *Parameter) {
	registry.mu.RLock()
	obs := registry.obs
	registry.mu.RUnlock()
	for _, o := range obs {
		o.Invalidate(p)
	}
}
