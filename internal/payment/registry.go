package payment

import (
	"fmt"
	"sort"
)

// Registry maps provider type keys to their strategies. It is built
// once at startup from the full strategy set and is read-only after
// that, so it is safe for concurrent use.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry indexes the given strategies by their Type key. A
// duplicate type is a programming error and panics at startup.
func NewRegistry(all ...Strategy) *Registry {
	m := make(map[string]Strategy, len(all))
	for _, s := range all {
		if _, dup := m[s.Type()]; dup {
			panic("duplicate payment strategy type: " + s.Type())
		}
		m[s.Type()] = s
	}
	return &Registry{strategies: m}
}

// Resolve returns the strategy registered for providerType. The match
// is exact and case-sensitive; no normalization is applied.
func (r *Registry) Resolve(providerType string) (Strategy, error) {
	s, ok := r.strategies[providerType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, providerType)
	}
	return s, nil
}

// Supports reports whether providerType has a registered strategy.
func (r *Registry) Supports(providerType string) bool {
	_, ok := r.strategies[providerType]
	return ok
}

// SupportedTypes returns the sorted set of registered type keys.
func (r *Registry) SupportedTypes() []string {
	types := make([]string, 0, len(r.strategies))
	for t := range r.strategies {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
