package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		expr string
		want TypeRef
	}{
		{expr: "int", want: Primitive(KindInt)},
		{expr: "boolean", want: Primitive(KindBoolean)},
		{expr: "void", want: Primitive(KindVoid)},
		{expr: "none", want: TypeRef{Kind: KindNone}},
		{expr: "java.lang.String", want: Declared("java.lang.String")},
		{expr: "  java.lang.String  ", want: Declared("java.lang.String")},
		{expr: "T", want: TypeRef{Kind: KindTypeVar, Name: "T"}},
		{expr: "!SynchronousApiWrapper", want: ErrorType("SynchronousApiWrapper")},
		{expr: "!foo.bar.Missing", want: ErrorType("foo.bar.Missing")},
		{expr: "int[]", want: ArrayOf(Primitive(KindInt))},
		{expr: "java.lang.String[][]", want: ArrayOf(ArrayOf(Declared("java.lang.String")))},
		{
			expr: "java.util.List<java.lang.String>",
			want: Declared("java.util.List", Declared("java.lang.String")),
		},
		{
			expr: "java.util.Map<java.lang.String, java.util.List<int[]>>",
			want: Declared("java.util.Map",
				Declared("java.lang.String"),
				Declared("java.util.List", ArrayOf(Primitive(KindInt)))),
		},
		{
			expr: "java.util.List<?>",
			want: Declared("java.util.List", TypeRef{Kind: KindWildcard}),
		},
		{
			expr: "java.util.List<? extends java.lang.Number>",
			want: Declared("java.util.List", TypeRef{Kind: KindWildcard, Name: "extends", Elem: &TypeRef{Kind: KindDeclared, Name: "java.lang.Number"}}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseType(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTypeRoundTripsThroughString(t *testing.T) {
	for _, expr := range []string{
		"int",
		"java.lang.String",
		"int[]",
		"java.util.Map<java.lang.String, java.util.List<int[]>>",
		"java.util.List<? super java.lang.Integer>",
		"java.util.List<?>",
	} {
		assert.Equal(t, expr, MustParseType(expr).String())
	}
}

func TestParseTypeErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{name: "empty", expr: ""},
		{name: "blank", expr: "   "},
		{name: "unclosed arguments", expr: "java.util.List<java.lang.String"},
		{name: "primitive argument", expr: "java.util.List<int>"},
		{name: "void array", expr: "void[]"},
		{name: "keyword with arguments", expr: "int<java.lang.String>"},
		{name: "error type with arguments", expr: "!Foo<java.lang.String>"},
		{name: "trailing dot", expr: "java.lang."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseType(tt.expr)
			assert.Error(t, err)
		})
	}
}

func TestMustParseTypePanics(t *testing.T) {
	assert.Panics(t, func() { MustParseType("java.util.List<") })
}
