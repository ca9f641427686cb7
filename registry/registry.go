// Package registry resolves a requested generator name to a strategy.
package registry

import (
	"strings"

	"github.com/d-fournier/wrappy/strategy"
)

// Entry registers a strategy under a name. The name is the one requests use
// and need not match Strategy.Name.
type Entry struct {
	Name     string
	Strategy strategy.Strategy
}

// Registry is the ordered set of strategies available to a round. It is
// read-only once built and safe for concurrent use.
type Registry struct {
	names      []string
	strategies map[string]strategy.Strategy
}

// New builds a registry from entries. A repeated name replaces the earlier
// strategy but keeps the position of its first registration.
func New(entries ...Entry) *Registry {
	r := &Registry{strategies: make(map[string]strategy.Strategy, len(entries))}
	for _, e := range entries {
		if _, seen := r.strategies[e.Name]; !seen {
			r.names = append(r.names, e.Name)
		}
		r.strategies[e.Name] = e.Strategy
	}
	return r
}

// Resolve returns the strategy registered under name.
func (r *Registry) Resolve(name string) (strategy.Strategy, error) {
	if len(r.names) == 0 {
		return nil, &LookupError{Kind: LookupNoStrategies, Requested: name}
	}
	s, ok := r.strategies[name]
	if !ok {
		return nil, &LookupError{Kind: LookupNotFound, Requested: name, Available: r.Names()}
	}
	return s, nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (r *Registry) Len() int {
	return len(r.names)
}

// LookupKind tells why a lookup failed
type LookupKind int

const (
	LookupNoStrategies LookupKind = iota + 1
	LookupNotFound
)

// LookupError is returned by Resolve. Error returns the message shown to
// the user.
type LookupError struct {
	Kind      LookupKind
	Requested string
	Available []string
}

func (e *LookupError) Error() string {
	if e.Kind == LookupNoStrategies {
		return "No generator can be found"
	}
	return "The requested generator \"" + e.Requested + "\" cannot be found. Available generators are: [" +
		strings.Join(e.Available, ", ") + "]"
}
