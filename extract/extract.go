// Package extract validates a generation request site and builds the
// generator-agnostic wrapper definition from the wrapped type's members.
package extract

import (
	"fmt"

	"github.com/d-fournier/wrappy/diag"
	"github.com/d-fournier/wrappy/errors"
	"github.com/d-fournier/wrappy/host"
	"github.com/d-fournier/wrappy/model"
)

// ShapeKind identifies which request-site precondition failed
type ShapeKind int

const (
	WrongArity ShapeKind = iota + 1
	PrimitiveParameter
	TargetAlreadyExists
)

// ShapeError is a fatal problem with the shape of a request site. Error
// returns the exact message shown to the user.
type ShapeError struct {
	Kind       ShapeKind
	MethodName string
	Locus      host.Locus
}

func (e *ShapeError) Error() string {
	switch e.Kind {
	case WrongArity:
		return fmt.Sprintf("The annotated method %s must contain exactly 1 parameter.", e.MethodName)
	case PrimitiveParameter:
		return fmt.Sprintf("The parameter of %s should be a complex declared type (Not a primitive)", e.MethodName)
	case TargetAlreadyExists:
		return fmt.Sprintf("The return type of the annotated method %s already exist and cannot be generated", e.MethodName)
	}
	return fmt.Sprintf("invalid request site %s", e.MethodName)
}

// Code returns the diagnostic code for the failure.
func (e *ShapeError) Code() diag.Code {
	switch e.Kind {
	case WrongArity:
		return diag.CodeWrongArity
	case PrimitiveParameter:
		return diag.CodePrimitiveParameter
	case TargetAlreadyExists:
		return diag.CodeTargetExists
	}
	return diag.CodeWrongArity
}

// NoEligibleMethodsMessage is the warning for a wrapped type without methods
// to mirror.
func NoEligibleMethodsMessage(simpleName string) string {
	return fmt.Sprintf("The wrapped class %s does not contain eligible methods", simpleName)
}

// Extractor turns requests of one round into wrapper definitions.
type Extractor struct {
	round    *host.Round
	reporter *diag.Reporter
}

// New returns an extractor resolving wrapped types in round. Non-fatal
// findings go to reporter.
func New(round *host.Round, reporter *diag.Reporter) *Extractor {
	return &Extractor{round: round, reporter: reporter}
}

// Extract validates the request site and builds its wrapper definition.
//
// The site checks run in a fixed order and the first failure wins:
// parameter count, parameter kind, then result type. A *ShapeError is
// returned for those; the caller reports it.
func (x *Extractor) Extract(req host.Request) (model.WrapperDefinition, error) {
	site := req.Site
	locus := req.Locus()

	if len(site.Params) != 1 {
		return model.WrapperDefinition{}, &ShapeError{Kind: WrongArity, MethodName: site.Name, Locus: locus}
	}
	param := site.Params[0].Type
	if param.Kind != host.KindDeclared {
		return model.WrapperDefinition{}, &ShapeError{Kind: PrimitiveParameter, MethodName: site.Name, Locus: locus}
	}
	result := site.ResultType()
	if result.Kind != host.KindError {
		return model.WrapperDefinition{}, &ShapeError{Kind: TargetAlreadyExists, MethodName: site.Name, Locus: locus}
	}

	wrapped, ok := x.round.LookupType(param.Name)
	if !ok {
		// Rounds built by host.NewRound always describe the wrapped type.
		return model.WrapperDefinition{}, errors.NewNotFoundError("wrapped type %s", param.Name)
	}

	methods := x.methods(wrapped)
	if len(methods) == 0 {
		x.reporter.ReportWarning(diag.CodeNoEligibleMethods, NoEligibleMethodsMessage(wrapped.SimpleName()), wrapped.Locus)
	}

	return model.WrapperDefinition{
		PackageName: req.Package,
		ClassName:   result.SimpleName(),
		WrappedType: model.Declared(param),
		Methods:     methods,
	}, nil
}

// Eligible reports whether a member is mirrored on the wrapper: a public,
// non-static method that is not a constructor.
func Eligible(m host.Element) bool {
	return m.Kind == host.ElementMethod &&
		m.Name != host.ConstructorName &&
		m.IsPublic() &&
		!m.IsStatic()
}

func (x *Extractor) methods(wrapped host.TypeElement) []model.MethodDefinition {
	var methods []model.MethodDefinition
	for _, m := range wrapped.Members {
		if !Eligible(m) {
			continue
		}
		def := model.MethodDefinition{
			Name:       m.Name,
			ReturnType: x.shape(m.ResultType(), m),
		}
		for _, p := range m.Params {
			def.Params = append(def.Params, model.ParameterDefinition{
				Name: p.Name,
				Type: x.shape(p.Type, m),
			})
		}
		methods = append(methods, def)
	}
	return methods
}

// shape classifies a mirror used in a wrapped method's signature. Types the
// host could not resolve are kept by their written name as declared shapes.
func (x *Extractor) shape(t host.TypeRef, owner host.Element) model.TypeShape {
	if p, ok := model.PrimitiveFromHost(t.Kind); ok {
		return model.PrimitiveShape(p)
	}
	switch t.Kind {
	case host.KindVoid:
		return model.Void()
	case host.KindNone:
		return model.None()
	case host.KindError:
		x.reporter.ReportNote(diag.CodeUnresolvedType,
			fmt.Sprintf("The type %s used by %s could not be resolved", t.Name, owner.Name),
			owner.Locus)
		return model.Declared(host.Declared(t.Name))
	default:
		return model.Declared(t)
	}
}
