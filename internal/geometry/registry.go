package geometry

import "sync"

// Strategy decides whether a planar point lies within a polygon.
type Strategy func(x, y float64, polygon []Vertex) bool

// StrategyRayCasting is the default containment strategy name.
const StrategyRayCasting = "RAY_CASTING"

// Registry maps containment strategy names to implementations. Unknown or
// empty names fall back to ray casting, so a geofence created before a
// strategy was removed keeps working.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry creates a registry with the ray casting strategy registered.
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[string]Strategy)}
	r.Register(StrategyRayCasting, PointInPolygon)
	return r
}

// Register adds or replaces a strategy under the given name.
func (r *Registry) Register(name string, s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[name] = s
}

// Lookup returns the strategy registered under name, falling back to ray
// casting when the name is unknown or empty.
func (r *Registry) Lookup(name string) Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.strategies[name]; ok {
		return s
	}
	return r.strategies[StrategyRayCasting]
}
