package registry

import (
	"sort"

	"github.com/d-fournier/wrappy/errors"
	"github.com/d-fournier/wrappy/strategy"
	"github.com/d-fournier/wrappy/strategy/passthrough"
	"github.com/d-fournier/wrappy/strategy/reactive"
)

// Builtin describes a strategy implementation shipped with wrappy.
type Builtin struct {
	Name        string
	Description string
	New         func() strategy.Strategy
}

// Catalog maps implementation names to built-in strategies
type Catalog map[string]Builtin

// DefaultCatalog returns the strategies shipped with wrappy.
func DefaultCatalog() Catalog {
	return Catalog{
		passthrough.Name: {
			Name:        passthrough.Name,
			Description: "delegates every method unchanged",
			New:         func() strategy.Strategy { return passthrough.New() },
		},
		reactive.RxJava2.Name: {
			Name:        reactive.RxJava2.Name,
			Description: "wraps results in RxJava 2 Single and Completable",
			New:         func() strategy.Strategy { return reactive.New(reactive.RxJava2) },
		},
		reactive.RxJava3.Name: {
			Name:        reactive.RxJava3.Name,
			Description: "wraps results in RxJava 3 Single and Completable",
			New:         func() strategy.Strategy { return reactive.New(reactive.RxJava3) },
		},
	}
}

// Names returns the implementation names in sorted order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registration binds a request-facing name to a catalog implementation.
type Registration struct {
	Name string `mapstructure:"name" toml:"name"`
	Use  string `mapstructure:"use" toml:"use"`
}

// DefaultRegistrations registers every built-in under its own name, Empty
// first.
func DefaultRegistrations() []Registration {
	return []Registration{
		{Name: passthrough.Name, Use: passthrough.Name},
		{Name: reactive.RxJava2.Name, Use: reactive.RxJava2.Name},
		{Name: reactive.RxJava3.Name, Use: reactive.RxJava3.Name},
	}
}

// FromCatalog builds a registry from registrations. Use defaults to Name.
func FromCatalog(catalog Catalog, registrations []Registration) (*Registry, error) {
	entries := make([]Entry, 0, len(registrations))
	for _, reg := range registrations {
		if reg.Name == "" {
			return nil, errors.NewInvalidRequestError("strategy registration without a name")
		}
		use := reg.Use
		if use == "" {
			use = reg.Name
		}
		b, ok := catalog[use]
		if !ok {
			return nil, errors.WithHintf(
				errors.NewNotFoundError("strategy implementation %q registered as %q", use, reg.Name),
				"built-in implementations: %v", catalog.Names())
		}
		entries = append(entries, Entry{Name: reg.Name, Strategy: b.New()})
	}
	return New(entries...), nil
}
