package javasrc

import (
	"strings"

	"github.com/d-fournier/wrappy/errors"
	"github.com/d-fournier/wrappy/model"
	"github.com/d-fournier/wrappy/strategy"
)

// WrappedField is the name of the field holding the wrapped instance.
const WrappedField = "wrappedClass"

// MethodWriter writes the declaration and body of one wrapper method.
type MethodWriter func(f *File, m model.MethodDefinition)

// RenderWrapper writes the class shared by every wrapper strategy:
//
//	public final class <Class> {
//	  private <Wrapped> wrappedClass;
//
//	  public <Class>(<Wrapped> wrappedClass) { ... }
//
//	  <one method per definition, written by method>
//	}
func RenderWrapper(def model.WrapperDefinition, method MethodWriter) (strategy.SourceUnit, error) {
	if err := Validate(def); err != nil {
		return strategy.SourceUnit{}, err
	}

	f := NewFile(def.PackageName, def.ClassName)
	wrapped := f.Shape(def.WrappedType)

	f.Open("public final class %s", def.ClassName)
	f.Line("private %s %s;", wrapped, WrappedField)
	f.Line("")
	f.Open("public %s(%s %s)", def.ClassName, wrapped, WrappedField)
	f.Line("this.%s = %s;", WrappedField, WrappedField)
	f.Close("")
	for _, m := range def.Methods {
		f.Line("")
		method(f, m)
	}
	f.Close("")

	return strategy.SourceUnit{
		Package: def.PackageName,
		Name:    def.ClassName,
		Content: f.Bytes(),
	}, nil
}

// Validate checks the parts of a definition every wrapper relies on.
func Validate(def model.WrapperDefinition) error {
	if def.ClassName == "" {
		return errors.NewInvalidRequestError("wrapper class name is empty")
	}
	if def.WrappedType.Kind != model.ShapeDeclared {
		return errors.NewInvalidRequestError("wrapped type of %s must be declared, got %s", def.ClassName, def.WrappedType.Kind)
	}
	for _, m := range def.Methods {
		if m.ReturnType.Kind == model.ShapeUnresolved {
			return errors.NewInvalidRequestError("method %s of %s has an unresolved return type", m.Name, def.ClassName)
		}
	}
	return nil
}

// Call spells the delegation expression wrappedClass.m(a, b). When a
// parameter of m shadows the field, the field is reached through the
// enclosing instance, which also holds inside anonymous classes.
func (f *File) Call(m model.MethodDefinition) string {
	target := WrappedField
	for _, p := range m.Params {
		if p.Name == WrappedField {
			target = f.typeName + ".this." + WrappedField
			break
		}
	}
	return target + "." + m.Name + "(" + strings.Join(m.ParamNames(), ", ") + ")"
}

// LocalName returns base, suffixed with underscores until it no longer
// shadows a parameter of m.
func LocalName(m model.MethodDefinition, base string) string {
	taken := make(map[string]bool, len(m.Params))
	for _, p := range m.Params {
		taken[p.Name] = true
	}
	name := base
	for taken[name] {
		name += "_"
	}
	return name
}
