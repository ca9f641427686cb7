package javasrc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/d-fournier/wrappy/host"
	"github.com/d-fournier/wrappy/model"
)

func TestBytesWithoutReferences(t *testing.T) {
	f := NewFile("foo", "Bar")
	f.Open("public final class Bar")
	f.Close("")

	want := "// Generated File, do not modify\n" +
		"package foo;\n" +
		"\n" +
		"public final class Bar {\n" +
		"}\n"
	assert.Equal(t, want, string(f.Bytes()))
}

func TestDefaultPackageAndNoComment(t *testing.T) {
	f := NewFile("", "Bar")
	f.SetComment("")
	f.Line("%s x;", f.Class("java.util.List"))

	assert.Equal(t, "import java.util.List;\n\nList x;\n", string(f.Bytes()))
}

func TestImportsAreSortedAndDeduplicated(t *testing.T) {
	f := NewFile("foo", "Bar")
	f.Line("%s a;", f.Class("java.util.Map"))
	f.Line("%s b;", f.Class("java.lang.String"))
	f.Line("%s c;", f.Class("java.util.Map"))

	assert.Equal(t,
		"// Generated File, do not modify\n"+
			"package foo;\n\n"+
			"import java.lang.String;\n"+
			"import java.util.Map;\n\n"+
			"Map a;\n"+
			"String b;\n"+
			"Map c;\n",
		string(f.Bytes()))
}

func TestSimpleNameConflicts(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		refs     []string
		want     []string
		imports  []string
	}{
		{
			name:     "first claimant wins",
			typeName: "Wrapper",
			refs:     []string{"java.util.Date", "java.sql.Date"},
			want:     []string{"Date", "java.sql.Date"},
			imports:  []string{"java.util.Date"},
		},
		{
			name:     "own type name is reserved",
			typeName: "Date",
			refs:     []string{"java.util.Date"},
			want:     []string{"java.util.Date"},
		},
		{
			name:     "own type is not imported",
			typeName: "Bar",
			refs:     []string{"foo.Bar"},
			want:     []string{"Bar"},
		},
		{
			name:     "same package is not imported",
			typeName: "Bar",
			refs:     []string{"foo.Baz"},
			want:     []string{"Baz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFile("foo", tt.typeName)
			for _, r := range tt.refs {
				f.Class(r)
			}
			spelled, imports := f.resolve()
			assert.Equal(t, tt.want, spelled)
			assert.Equal(t, tt.imports, imports)
		})
	}
}

func TestTypeSpelling(t *testing.T) {
	tests := []struct {
		name string
		ref  host.TypeRef
		want string
	}{
		{"primitive", host.Primitive(host.KindInt), "int"},
		{"generic", host.Declared("java.util.List", host.Declared("java.lang.String")), "List<String>"},
		{"array", host.ArrayOf(host.Primitive(host.KindByte)), "byte[]"},
		{"type variable", host.TypeRef{Kind: host.KindTypeVar, Name: "T"}, "T"},
		{"unbounded wildcard", host.TypeRef{Kind: host.KindWildcard}, "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFile("foo", "Bar")
			f.SetComment("")
			f.Line("%s", f.Type(tt.ref))

			out := string(f.Bytes())
			assert.Equal(t, tt.want+"\n", out[len(out)-len(tt.want)-1:])
		})
	}
}

func TestShapeAndBoxed(t *testing.T) {
	f := NewFile("foo", "Bar")

	assert.Equal(t, "void", f.Shape(model.Void()))
	assert.Equal(t, "void", f.Shape(model.None()))
	assert.Equal(t, "long", f.Shape(model.PrimitiveShape(model.Long)))
	assert.Equal(t, "Missing", f.Shape(model.Unresolved("Missing")))
	assert.Equal(t, f.Class("java.lang.Long"), f.Boxed(model.PrimitiveShape(model.Long)))
	assert.Equal(t, f.Class("java.lang.String"), f.Boxed(model.Declared(host.Declared("java.lang.String"))))
}

func TestIndentation(t *testing.T) {
	f := NewFile("", "Bar")
	f.SetComment("")
	f.Open("class Bar")
	f.Open("void run()")
	f.Line("go();")
	f.Close("")
	f.Line("")
	f.Close(";")
	f.Close("")

	assert.Equal(t, "class Bar {\n  void run() {\n    go();\n  }\n\n};\n}\n", string(f.Bytes()))
}
