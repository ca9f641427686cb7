package host

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/d-fournier/wrappy/errors"
)

// Type expressions are the shorthand descriptor documents use for mirrors:
//
//	int                                  primitive
//	void                                 void
//	java.util.Map<java.lang.String, int[]>  declared with arguments
//	? extends java.lang.Number           wildcard
//	T                                    type variable (single identifier)
//	!ApiWrapper                          error type (the host could not resolve it)

var typeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[\p{L}_$][\p{L}\p{N}_$]*`},
	{Name: "Punct", Pattern: `[?!<>,.\[\]]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type typeExpr struct {
	Wildcard *wildcardExpr `  @@`
	Plain    *plainExpr    `| @@`
}

type wildcardExpr struct {
	Mark  string     `@"?"`
	Bound *boundExpr `@@?`
}

type boundExpr struct {
	Direction string     `@( "extends" | "super" )`
	Type      *plainExpr `@@`
}

type plainExpr struct {
	Unresolved bool        `@"!"?`
	Name       []string    `@Ident ( "." @Ident )*`
	Args       []*typeExpr `( "<" @@ ( "," @@ )* ">" )?`
	Dims       []string    `( @"[" "]" )*`
}

var typeParser = participle.MustBuild[typeExpr](
	participle.Lexer(typeLexer),
	participle.Elide("Whitespace"),
)

// ParseType parses a type expression into a mirror.
func ParseType(expr string) (TypeRef, error) {
	if strings.TrimSpace(expr) == "" {
		return TypeRef{}, errors.NewInvalidRequestError("empty type expression")
	}
	parsed, err := typeParser.ParseString("", expr)
	if err != nil {
		return TypeRef{}, errors.Wrapf(err, "invalid type expression %q", expr)
	}
	return parsed.toRef()
}

// MustParseType is ParseType for literals known to be valid.
func MustParseType(expr string) TypeRef {
	t, err := ParseType(expr)
	if err != nil {
		panic(err)
	}
	return t
}

func (e *typeExpr) toRef() (TypeRef, error) {
	if e.Wildcard != nil {
		w := TypeRef{Kind: KindWildcard}
		if b := e.Wildcard.Bound; b != nil {
			bound, err := b.Type.toRef()
			if err != nil {
				return TypeRef{}, err
			}
			w.Name = b.Direction
			w.Elem = &bound
		}
		return w, nil
	}
	return e.Plain.toRef()
}

func (p *plainExpr) toRef() (TypeRef, error) {
	name := strings.Join(p.Name, ".")

	var ref TypeRef
	switch {
	case p.Unresolved:
		if len(p.Args) > 0 {
			return TypeRef{}, errors.NewInvalidRequestError("error type %s cannot take type arguments", name)
		}
		ref = ErrorType(name)
	case len(p.Name) == 1 && isKeyword(name):
		if len(p.Args) > 0 {
			return TypeRef{}, errors.NewInvalidRequestError("%s cannot take type arguments", name)
		}
		ref = TypeRef{Kind: TypeKind(name)}
	case len(p.Name) == 1 && len(p.Args) == 0:
		ref = TypeRef{Kind: KindTypeVar, Name: name}
	default:
		ref = Declared(name)
		for _, a := range p.Args {
			arg, err := a.toRef()
			if err != nil {
				return TypeRef{}, err
			}
			if arg.Kind.IsPrimitive() || arg.Kind == KindVoid || arg.Kind == KindNone {
				return TypeRef{}, errors.NewInvalidRequestError("type argument of %s cannot be %s", name, arg.Kind)
			}
			ref.Args = append(ref.Args, arg)
		}
	}

	for range p.Dims {
		if ref.Kind == KindVoid || ref.Kind == KindNone {
			return TypeRef{}, errors.NewInvalidRequestError("%s cannot be an array component", ref.Kind)
		}
		ref = ArrayOf(ref)
	}
	return ref, nil
}

func isKeyword(name string) bool {
	kind := TypeKind(name)
	return kind.IsPrimitive() || kind == KindVoid || kind == KindNone
}
