// Package model holds the generator-agnostic description of a wrapper: the
// wrapped type, its eligible methods and their type shapes.
package model

import (
	"fmt"

	"github.com/d-fournier/wrappy/host"
)

// ShapeKind discriminates TypeShape.
type ShapeKind int

const (
	ShapePrimitive ShapeKind = iota + 1
	ShapeVoid
	ShapeNone
	ShapeDeclared
	ShapeUnresolved
)

func (k ShapeKind) String() string {
	switch k {
	case ShapePrimitive:
		return "primitive"
	case ShapeVoid:
		return "void"
	case ShapeNone:
		return "none"
	case ShapeDeclared:
		return "declared"
	case ShapeUnresolved:
		return "unresolved"
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

// PrimitiveKind is one of the eight primitive value kinds.
type PrimitiveKind int

const (
	Boolean PrimitiveKind = iota + 1
	Byte
	Short
	Int
	Long
	Char
	Float
	Double
)

var primitiveInfo = map[PrimitiveKind]struct {
	keyword string
	boxed   string
}{
	Boolean: {"boolean", "java.lang.Boolean"},
	Byte:    {"byte", "java.lang.Byte"},
	Short:   {"short", "java.lang.Short"},
	Int:     {"int", "java.lang.Integer"},
	Long:    {"long", "java.lang.Long"},
	Char:    {"char", "java.lang.Character"},
	Float:   {"float", "java.lang.Float"},
	Double:  {"double", "java.lang.Double"},
}

// Keyword returns the Java keyword of the primitive.
func (p PrimitiveKind) Keyword() string {
	if info, ok := primitiveInfo[p]; ok {
		return info.keyword
	}
	panic(fmt.Sprintf("model: invalid primitive kind %d", int(p)))
}

// Boxed returns the qualified name of the primitive's boxed counterpart.
func (p PrimitiveKind) Boxed() string {
	if info, ok := primitiveInfo[p]; ok {
		return info.boxed
	}
	panic(fmt.Sprintf("model: invalid primitive kind %d", int(p)))
}

func (p PrimitiveKind) String() string {
	if info, ok := primitiveInfo[p]; ok {
		return info.keyword
	}
	return fmt.Sprintf("PrimitiveKind(%d)", int(p))
}

// PrimitiveFromHost maps a host kind to a primitive kind.
func PrimitiveFromHost(k host.TypeKind) (PrimitiveKind, bool) {
	for p, info := range primitiveInfo {
		if info.keyword == string(k) {
			return p, true
		}
	}
	return 0, false
}

// TypeShape is the closed classification of a type: a primitive, void, the
// absence of a result, a declared type or a type the host could not resolve.
// Build values with the constructors; the zero value is not a valid shape.
type TypeShape struct {
	Kind      ShapeKind
	Primitive PrimitiveKind
	// Name is the qualified name of a declared type (raw, without type
	// arguments) or the written name of an unresolved one.
	Name string
	// Ref keeps the full host mirror of a declared type, arguments included.
	Ref host.TypeRef
}

func PrimitiveShape(kind PrimitiveKind) TypeShape {
	return TypeShape{Kind: ShapePrimitive, Primitive: kind}
}

func Void() TypeShape { return TypeShape{Kind: ShapeVoid} }

func None() TypeShape { return TypeShape{Kind: ShapeNone} }

// Declared builds the shape of a reference type. Arrays, parameterized
// types and type variables are all declared shapes.
func Declared(ref host.TypeRef) TypeShape {
	name := ref.Name
	if ref.Kind != host.KindDeclared {
		name = ref.String()
	}
	return TypeShape{Kind: ShapeDeclared, Name: name, Ref: ref}
}

func Unresolved(name string) TypeShape {
	return TypeShape{Kind: ShapeUnresolved, Name: name}
}

// ReturnsValue reports whether a method with this result produces a value.
func (s TypeShape) ReturnsValue() bool {
	switch s.Kind {
	case ShapeVoid, ShapeNone:
		return false
	case ShapePrimitive, ShapeDeclared, ShapeUnresolved:
		return true
	}
	panic(fmt.Sprintf("model: invalid shape kind %d", int(s.Kind)))
}

func (s TypeShape) String() string {
	switch s.Kind {
	case ShapePrimitive:
		return s.Primitive.Keyword()
	case ShapeVoid:
		return "void"
	case ShapeNone:
		return "none"
	case ShapeDeclared:
		return s.Ref.String()
	case ShapeUnresolved:
		return "!" + s.Name
	}
	return s.Kind.String()
}
