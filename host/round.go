package host

import (
	"github.com/d-fournier/wrappy/errors"
)

// Round is one processing round: the types the host can describe and the
// generation requests found in them, in discovery order.
type Round struct {
	Types    []TypeElement
	Requests []Request

	byName map[string]int
}

// NewRound indexes types and validates that every request can be examined.
func NewRound(types []TypeElement, requests []Request) (*Round, error) {
	r := &Round{
		Types:    types,
		Requests: requests,
		byName:   make(map[string]int, len(types)),
	}

	for i := range r.Types {
		t := &r.Types[i]
		if t.Name == "" {
			return nil, errors.NewInvalidRequestError("type #%d has no name", i+1)
		}
		if _, dup := r.byName[t.Name]; dup {
			return nil, errors.Wrapf(errors.ErrConflict, "type %s is described more than once", t.Name)
		}
		r.byName[t.Name] = i
		if t.Locus.Element == "" {
			t.Locus.Element = t.Name
		}
		for j := range t.Members {
			m := &t.Members[j]
			if m.Kind == "" {
				m.Kind = ElementMethod
			}
			if !m.Kind.Valid() {
				return nil, errors.NewInvalidRequestError("member %s of %s has unknown kind %q", m.Name, t.Name, m.Kind)
			}
			if m.Locus.Element == "" {
				m.Locus.Element = t.Name + "." + m.Name
			}
		}
	}

	for i := range r.Requests {
		req := &r.Requests[i]
		if req.Strategy == "" {
			return nil, errors.NewInvalidRequestError("request %s names no strategy", req.SiteName())
		}
		if req.Site.Name == "" {
			return nil, errors.NewInvalidRequestError("request #%d has no site method", i+1)
		}
		if req.Site.Kind == "" {
			req.Site.Kind = ElementMethod
		}
		// Only a well-formed site refers to a wrapped type; malformed ones
		// are reported by the extractor.
		if len(req.Site.Params) == 1 {
			p := req.Site.Params[0].Type
			if p.Kind == KindDeclared {
				if _, ok := r.byName[p.Name]; !ok {
					return nil, errors.WithHintf(
						errors.NewNotFoundError("type %s used by %s", p.Name, req.SiteName()),
						"describe %s under 'types' so its methods can be wrapped", p.Name)
				}
			}
		}
	}

	return r, nil
}

// LookupType returns the descriptor of a declared type by qualified name.
func (r *Round) LookupType(qualifiedName string) (TypeElement, bool) {
	i, ok := r.byName[qualifiedName]
	if !ok {
		return TypeElement{}, false
	}
	return r.Types[i], true
}
