// Package javasrc writes Java compilation units with managed imports.
//
// Type names are requested through File.Class and File.Type while the body
// is written; imports are resolved once the whole unit is known, so that a
// simple name is only used when it is unambiguous.
package javasrc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/d-fournier/wrappy/host"
	"github.com/d-fournier/wrappy/model"
)

// GeneratedComment is the file comment carried by every generated unit.
const GeneratedComment = "Generated File, do not modify"

const indentUnit = "  "

// File is one compilation unit under construction.
type File struct {
	pkg      string
	typeName string
	comment  string

	refs  []string
	index map[string]int

	body strings.Builder
	// depth is the current indentation level of the body
	depth int
}

// NewFile starts a unit declaring the top-level type typeName in pkg.
func NewFile(pkg, typeName string) *File {
	return &File{
		pkg:      pkg,
		typeName: typeName,
		comment:  GeneratedComment,
		index:    make(map[string]int),
	}
}

// SetComment replaces the file comment. An empty comment omits it.
func (f *File) SetComment(comment string) {
	f.comment = comment
}

// Class returns a reference to a class by qualified name, to be spelled
// either by simple name with an import or fully qualified.
func (f *File) Class(qualifiedName string) string {
	i, ok := f.index[qualifiedName]
	if !ok {
		i = len(f.refs)
		f.refs = append(f.refs, qualifiedName)
		f.index[qualifiedName] = i
	}
	return placeholder(i)
}

// Type spells a host mirror.
func (f *File) Type(t host.TypeRef) string {
	switch t.Kind {
	case host.KindDeclared:
		name := f.Class(t.Name)
		if len(t.Args) == 0 {
			return name
		}
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = f.Type(a)
		}
		return name + "<" + strings.Join(args, ", ") + ">"
	case host.KindArray:
		if t.Elem == nil {
			return "java.lang.Object[]"
		}
		return f.Type(*t.Elem) + "[]"
	case host.KindWildcard:
		if t.Elem == nil || t.Name == "" {
			return "?"
		}
		return "? " + t.Name + " " + f.Type(*t.Elem)
	case host.KindNone:
		return "void"
	default:
		// primitives, void, type variables and error types are spelled as written
		return t.String()
	}
}

// Shape spells a model type shape. Void and None both spell void.
func (f *File) Shape(s model.TypeShape) string {
	switch s.Kind {
	case model.ShapePrimitive:
		return s.Primitive.Keyword()
	case model.ShapeVoid, model.ShapeNone:
		return "void"
	case model.ShapeDeclared:
		return f.Type(s.Ref)
	case model.ShapeUnresolved:
		return s.Name
	}
	panic(fmt.Sprintf("javasrc: invalid shape kind %d", int(s.Kind)))
}

// Boxed spells s, replacing a primitive by its boxed counterpart.
func (f *File) Boxed(s model.TypeShape) string {
	if s.Kind == model.ShapePrimitive {
		return f.Class(s.Primitive.Boxed())
	}
	return f.Shape(s)
}

// Params spells a formal parameter list with final parameters.
func (f *File) Params(params []model.ParameterDefinition) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = "final " + f.Shape(p.Type) + " " + p.Name
	}
	return strings.Join(parts, ", ")
}

// Line writes one indented line. An empty format writes a blank line.
func (f *File) Line(format string, args ...interface{}) {
	if format == "" {
		f.body.WriteString("\n")
		return
	}
	for i := 0; i < f.depth; i++ {
		f.body.WriteString(indentUnit)
	}
	fmt.Fprintf(&f.body, format, args...)
	f.body.WriteString("\n")
}

// Open writes a line ending with an opening brace and indents.
func (f *File) Open(format string, args ...interface{}) {
	f.Line(format+" {", args...)
	f.depth++
}

// Close dedents and writes a closing brace followed by suffix.
func (f *File) Close(suffix string) {
	if f.depth > 0 {
		f.depth--
	}
	f.Line("%s", "}"+suffix)
}

// Bytes resolves imports and returns the unit's source.
func (f *File) Bytes() []byte {
	spelled, imports := f.resolve()

	var out strings.Builder
	if f.comment != "" {
		out.WriteString("// " + f.comment + "\n")
	}
	if f.pkg != "" {
		out.WriteString("package " + f.pkg + ";\n\n")
	}
	for _, imp := range imports {
		out.WriteString("import " + imp + ";\n")
	}
	if len(imports) > 0 {
		out.WriteString("\n")
	}

	pairs := make([]string, 0, 2*len(spelled))
	for i, name := range spelled {
		pairs = append(pairs, placeholder(i), name)
	}
	out.WriteString(strings.NewReplacer(pairs...).Replace(f.body.String()))
	return []byte(out.String())
}

// resolve picks a spelling for every referenced class. The first class to
// claim a simple name gets it; later ones with the same simple name stay
// qualified. The unit's own type name is always claimed first.
func (f *File) resolve() ([]string, []string) {
	self := f.typeName
	if f.pkg != "" {
		self = f.pkg + "." + f.typeName
	}
	owners := map[string]string{f.typeName: self}

	spelled := make([]string, len(f.refs))
	var imports []string
	for i, qualified := range f.refs {
		pkg, simple := split(qualified)
		if owner, taken := owners[simple]; taken && owner != qualified {
			spelled[i] = qualified
			continue
		}
		owners[simple] = qualified
		spelled[i] = simple
		if pkg != "" && pkg != f.pkg && qualified != self {
			imports = append(imports, qualified)
		}
	}
	sort.Strings(imports)
	return spelled, imports
}

func split(qualified string) (pkg, simple string) {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[:i], qualified[i+1:]
	}
	return "", qualified
}

func placeholder(i int) string {
	return "\x00" + strconv.Itoa(i) + "\x00"
}
