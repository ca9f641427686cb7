package javasrc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/d-fournier/wrappy/errors"
	"github.com/d-fournier/wrappy/host"
	"github.com/d-fournier/wrappy/model"
)

func TestValidate(t *testing.T) {
	wrapped := model.Declared(host.Declared("foo.Wrapped"))

	tests := []struct {
		name  string
		def   model.WrapperDefinition
		valid bool
	}{
		{"complete", model.WrapperDefinition{ClassName: "W", WrappedType: wrapped}, true},
		{"no class name", model.WrapperDefinition{WrappedType: wrapped}, false},
		{"primitive wrapped type", model.WrapperDefinition{ClassName: "W", WrappedType: model.PrimitiveShape(model.Int)}, false},
		{"unresolved result", model.WrapperDefinition{
			ClassName:   "W",
			WrappedType: wrapped,
			Methods:     []model.MethodDefinition{{Name: "m", ReturnType: model.Unresolved("X")}},
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.def)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsInvalidRequestError(err))
		})
	}
}

func TestCall(t *testing.T) {
	m := model.MethodDefinition{Name: "put", Params: []model.ParameterDefinition{
		{Name: "key"}, {Name: "value"},
	}}
	f := NewFile("foo.bar", "TestWrapper")
	assert.Equal(t, "wrappedClass.put(key, value)", f.Call(m))
	assert.Equal(t, "wrappedClass.get()", f.Call(model.MethodDefinition{Name: "get"}))
}

func TestCallThroughEnclosingInstanceWhenFieldIsShadowed(t *testing.T) {
	m := model.MethodDefinition{Name: "echo", Params: []model.ParameterDefinition{{Name: "wrappedClass"}}}
	f := NewFile("foo.bar", "TestWrapper")
	assert.Equal(t, "TestWrapper.this.wrappedClass.echo(wrappedClass)", f.Call(m))
}

func TestLocalName(t *testing.T) {
	m := model.MethodDefinition{Params: []model.ParameterDefinition{{Name: "value"}, {Name: "value_"}}}
	assert.Equal(t, "value__", LocalName(m, "value"))
	assert.Equal(t, "result", LocalName(m, "result"))
}
