// Package host models the surface the host compiler exposes to wrappy: type
// descriptors, member elements, generation requests and the processing round
// that groups them.
package host

import (
	"fmt"
	"strings"
)

// TypeKind classifies a host type mirror.
type TypeKind string

const (
	KindBoolean  TypeKind = "boolean"
	KindByte     TypeKind = "byte"
	KindShort    TypeKind = "short"
	KindInt      TypeKind = "int"
	KindLong     TypeKind = "long"
	KindChar     TypeKind = "char"
	KindFloat    TypeKind = "float"
	KindDouble   TypeKind = "double"
	KindVoid     TypeKind = "void"
	KindNone     TypeKind = "none"
	KindDeclared TypeKind = "declared"
	KindArray    TypeKind = "array"
	KindTypeVar  TypeKind = "typevar"
	KindWildcard TypeKind = "wildcard"
	KindError    TypeKind = "error"
)

var primitiveKinds = map[TypeKind]bool{
	KindBoolean: true,
	KindByte:    true,
	KindShort:   true,
	KindInt:     true,
	KindLong:    true,
	KindChar:    true,
	KindFloat:   true,
	KindDouble:  true,
}

// IsPrimitive reports whether k is one of the eight primitive kinds.
func (k TypeKind) IsPrimitive() bool {
	return primitiveKinds[k]
}

// Valid reports whether k is a known kind.
func (k TypeKind) Valid() bool {
	switch k {
	case KindVoid, KindNone, KindDeclared, KindArray, KindTypeVar, KindWildcard, KindError:
		return true
	}
	return k.IsPrimitive()
}

// TypeRef is a type mirror as written in a descriptor document.
//
// Name holds the qualified name of a declared type, the written name of an
// error type, the identifier of a type variable and the bound direction
// ("extends" or "super") of a wildcard. Elem is the component of an array
// and the bound of a wildcard.
type TypeRef struct {
	Kind TypeKind  `yaml:"kind" json:"kind" toml:"kind"`
	Name string    `yaml:"name,omitempty" json:"name,omitempty" toml:"name,omitempty"`
	Args []TypeRef `yaml:"args,omitempty" json:"args,omitempty" toml:"args,omitempty"`
	Elem *TypeRef  `yaml:"elem,omitempty" json:"elem,omitempty" toml:"elem,omitempty"`
}

// Primitive returns the mirror of a primitive or void kind.
func Primitive(kind TypeKind) TypeRef {
	return TypeRef{Kind: kind}
}

// Declared returns the mirror of a declared type with optional type arguments.
func Declared(qualifiedName string, args ...TypeRef) TypeRef {
	return TypeRef{Kind: KindDeclared, Name: qualifiedName, Args: args}
}

// ErrorType returns the mirror of a type the host could not resolve.
func ErrorType(name string) TypeRef {
	return TypeRef{Kind: KindError, Name: name}
}

// ArrayOf returns the mirror of an array of elem.
func ArrayOf(elem TypeRef) TypeRef {
	return TypeRef{Kind: KindArray, Elem: &elem}
}

// String renders the Java spelling of the mirror.
func (t TypeRef) String() string {
	switch t.Kind {
	case KindDeclared:
		if len(t.Args) == 0 {
			return t.Name
		}
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = a.String()
		}
		return t.Name + "<" + strings.Join(args, ", ") + ">"
	case KindArray:
		if t.Elem == nil {
			return "[]"
		}
		return t.Elem.String() + "[]"
	case KindWildcard:
		if t.Elem == nil || t.Name == "" {
			return "?"
		}
		return "? " + t.Name + " " + t.Elem.String()
	case KindTypeVar, KindError:
		return t.Name
	default:
		return string(t.Kind)
	}
}

// Package returns the package part of a declared type name.
func (t TypeRef) Package() string {
	if i := strings.LastIndex(t.Name, "."); i >= 0 {
		return t.Name[:i]
	}
	return ""
}

// SimpleName returns the last segment of the type name.
func (t TypeRef) SimpleName() string {
	if i := strings.LastIndex(t.Name, "."); i >= 0 {
		return t.Name[i+1:]
	}
	return t.Name
}

// Modifier is a declaration modifier keyword.
type Modifier string

const (
	ModPublic    Modifier = "public"
	ModProtected Modifier = "protected"
	ModPrivate   Modifier = "private"
	ModStatic    Modifier = "static"
	ModFinal     Modifier = "final"
	ModAbstract  Modifier = "abstract"
	ModDefault   Modifier = "default"
	ModSync      Modifier = "synchronized"
	ModNative    Modifier = "native"
)

// ElementKind classifies a member of a type.
type ElementKind string

const (
	ElementMethod       ElementKind = "method"
	ElementConstructor  ElementKind = "constructor"
	ElementStaticInit   ElementKind = "static-init"
	ElementInstanceInit ElementKind = "instance-init"
	ElementField        ElementKind = "field"
	ElementType         ElementKind = "type"
)

// Valid reports whether k is a known element kind.
func (k ElementKind) Valid() bool {
	switch k {
	case ElementMethod, ElementConstructor, ElementStaticInit, ElementInstanceInit, ElementField, ElementType:
		return true
	}
	return false
}

// ConstructorName is the name the host gives to constructors.
const ConstructorName = "<init>"

// Locus points at the declaration a diagnostic is about.
type Locus struct {
	File    string `yaml:"file,omitempty" json:"file,omitempty" toml:"file,omitempty"`
	Line    int    `yaml:"line,omitempty" json:"line,omitempty" toml:"line,omitempty"`
	Column  int    `yaml:"column,omitempty" json:"column,omitempty" toml:"column,omitempty"`
	Element string `yaml:"element,omitempty" json:"element,omitempty" toml:"element,omitempty"`
}

// IsZero reports whether the locus carries no position at all.
func (l Locus) IsZero() bool {
	return l == Locus{}
}

func (l Locus) String() string {
	switch {
	case l.File != "" && l.Line > 0 && l.Column > 0:
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	case l.File != "" && l.Line > 0:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	case l.File != "":
		return l.File
	case l.Element != "":
		return l.Element
	default:
		return "<unknown>"
	}
}

// Param is a formal parameter of an executable element.
type Param struct {
	Name string  `yaml:"name" json:"name" toml:"name"`
	Type TypeRef `yaml:"type" json:"type" toml:"type"`
}

// Element is a member of a type, or the method carrying a generation request.
// A nil Returns means the element has no result slot.
type Element struct {
	Kind      ElementKind `yaml:"kind,omitempty" json:"kind,omitempty" toml:"kind,omitempty"`
	Name      string      `yaml:"name" json:"name" toml:"name"`
	Modifiers []Modifier  `yaml:"modifiers,omitempty" json:"modifiers,omitempty" toml:"modifiers,omitempty"`
	Returns   *TypeRef    `yaml:"returns,omitempty" json:"returns,omitempty" toml:"returns,omitempty"`
	Params    []Param     `yaml:"params,omitempty" json:"params,omitempty" toml:"params,omitempty"`
	Locus     Locus       `yaml:"locus,omitempty" json:"locus,omitempty" toml:"locus,omitempty"`
}

// HasModifier reports whether m is among the element's modifiers.
func (e Element) HasModifier(m Modifier) bool {
	for _, mod := range e.Modifiers {
		if mod == m {
			return true
		}
	}
	return false
}

func (e Element) IsPublic() bool { return e.HasModifier(ModPublic) }
func (e Element) IsStatic() bool { return e.HasModifier(ModStatic) }

// ResultType returns the element's result mirror, KindNone when absent.
func (e Element) ResultType() TypeRef {
	if e.Returns == nil {
		return TypeRef{Kind: KindNone}
	}
	return *e.Returns
}

// TypeElement describes a declared type and its members in declaration order.
type TypeElement struct {
	Name    string    `yaml:"name" json:"name" toml:"name"`
	Members []Element `yaml:"members,omitempty" json:"members,omitempty" toml:"members,omitempty"`
	Locus   Locus     `yaml:"locus,omitempty" json:"locus,omitempty" toml:"locus,omitempty"`
}

// SimpleName returns the unqualified type name.
func (t TypeElement) SimpleName() string {
	return TypeRef{Name: t.Name}.SimpleName()
}

// Request is a generation request: a method marked with the name of the
// strategy that should produce its result type.
type Request struct {
	Strategy  string  `yaml:"strategy" json:"strategy" toml:"strategy"`
	Package   string  `yaml:"package" json:"package" toml:"package"`
	Enclosing string  `yaml:"enclosing,omitempty" json:"enclosing,omitempty" toml:"enclosing,omitempty"`
	Site      Element `yaml:"site" json:"site" toml:"site"`
}

// Locus returns where diagnostics about the request should point.
func (r Request) Locus() Locus {
	l := r.Site.Locus
	if l.Element == "" {
		l.Element = r.SiteName()
	}
	return l
}

// SiteName returns the annotated method name, qualified by its enclosing
// type when known.
func (r Request) SiteName() string {
	if r.Enclosing == "" {
		return r.Site.Name
	}
	return r.Enclosing + "." + r.Site.Name
}
