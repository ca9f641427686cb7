package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-fournier/wrappy/host"
)

func TestBoxedCounterparts(t *testing.T) {
	tests := []struct {
		kind    PrimitiveKind
		keyword string
		boxed   string
	}{
		{Boolean, "boolean", "java.lang.Boolean"},
		{Byte, "byte", "java.lang.Byte"},
		{Short, "short", "java.lang.Short"},
		{Int, "int", "java.lang.Integer"},
		{Long, "long", "java.lang.Long"},
		{Char, "char", "java.lang.Character"},
		{Float, "float", "java.lang.Float"},
		{Double, "double", "java.lang.Double"},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.keyword, tt.kind.Keyword())
			assert.Equal(t, tt.boxed, tt.kind.Boxed())

			fromHost, ok := PrimitiveFromHost(host.TypeKind(tt.keyword))
			require.True(t, ok)
			assert.Equal(t, tt.kind, fromHost)
		})
	}
}

func TestPrimitiveFromHostRejectsReferenceKinds(t *testing.T) {
	for _, k := range []host.TypeKind{host.KindVoid, host.KindNone, host.KindDeclared, host.KindArray, host.KindError} {
		_, ok := PrimitiveFromHost(k)
		assert.False(t, ok, string(k))
	}
}

func TestInvalidPrimitivePanics(t *testing.T) {
	assert.Panics(t, func() { PrimitiveKind(0).Boxed() })
	assert.Panics(t, func() { PrimitiveKind(42).Keyword() })
}

func TestReturnsValue(t *testing.T) {
	assert.False(t, Void().ReturnsValue())
	assert.False(t, None().ReturnsValue())
	assert.True(t, PrimitiveShape(Int).ReturnsValue())
	assert.True(t, Declared(host.Declared("java.lang.String")).ReturnsValue())
	assert.Panics(t, func() { TypeShape{}.ReturnsValue() })
}

func TestDeclaredShapeNames(t *testing.T) {
	list := Declared(host.MustParseType("java.util.List<java.lang.String>"))
	assert.Equal(t, ShapeDeclared, list.Kind)
	assert.Equal(t, "java.util.List", list.Name)
	assert.Equal(t, "java.util.List<java.lang.String>", list.String())

	array := Declared(host.MustParseType("int[]"))
	assert.Equal(t, "int[]", array.Name)
	assert.Equal(t, "int[]", array.String())
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "boolean", PrimitiveShape(Boolean).String())
	assert.Equal(t, "void", Void().String())
	assert.Equal(t, "none", None().String())
	assert.Equal(t, "!ApiWrapper", Unresolved("ApiWrapper").String())
	assert.Equal(t, "unresolved", ShapeUnresolved.String())
}

func TestDefinitionHelpers(t *testing.T) {
	m := MethodDefinition{
		Name:       "compute",
		ReturnType: Void(),
		Params: []ParameterDefinition{
			{Name: "a", Type: Declared(host.Declared("java.lang.String"))},
			{Name: "b", Type: PrimitiveShape(Int)},
		},
	}
	assert.Equal(t, []string{"a", "b"}, m.ParamNames())
	assert.Empty(t, MethodDefinition{Name: "get"}.ParamNames())

	def := WrapperDefinition{PackageName: "foo.bar", ClassName: "TestWrapper"}
	assert.Equal(t, "foo.bar.TestWrapper", def.QualifiedClassName())
	assert.Equal(t, "TestWrapper", WrapperDefinition{ClassName: "TestWrapper"}.QualifiedClassName())
}
