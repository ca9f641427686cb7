package model

// ParameterDefinition is one formal parameter of a wrapped method.
type ParameterDefinition struct {
	Name string
	Type TypeShape
}

// MethodDefinition is an eligible method of the wrapped type. ReturnType is
// never ShapeUnresolved.
type MethodDefinition struct {
	Name       string
	ReturnType TypeShape
	Params     []ParameterDefinition
}

// ParamNames returns the parameter names in declaration order.
func (m MethodDefinition) ParamNames() []string {
	names := make([]string, len(m.Params))
	for i, p := range m.Params {
		names[i] = p.Name
	}
	return names
}

// WrapperDefinition is everything a strategy needs to render one wrapper.
// WrappedType is always a declared shape and Methods keep the wrapped type's
// declaration order. Strategies must treat it as read-only.
type WrapperDefinition struct {
	PackageName string
	ClassName   string
	WrappedType TypeShape
	Methods     []MethodDefinition
}

// QualifiedClassName returns the fully qualified name of the wrapper.
func (d WrapperDefinition) QualifiedClassName() string {
	if d.PackageName == "" {
		return d.ClassName
	}
	return d.PackageName + "." + d.ClassName
}
