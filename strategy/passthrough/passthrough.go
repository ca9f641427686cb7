// Package passthrough renders wrappers whose methods delegate unchanged to
// the wrapped instance.
package passthrough

import (
	"context"

	"github.com/d-fournier/wrappy/model"
	"github.com/d-fournier/wrappy/strategy"
	"github.com/d-fournier/wrappy/strategy/javasrc"
)

// Name is the registration key of the pass-through strategy.
const Name = "Empty"

// Strategy mirrors every method with the same signature.
type Strategy struct{}

func New() *Strategy {
	return &Strategy{}
}

func (s *Strategy) Name() string {
	return Name
}

func (s *Strategy) Render(ctx context.Context, def model.WrapperDefinition) (strategy.SourceUnit, error) {
	if err := ctx.Err(); err != nil {
		return strategy.SourceUnit{}, err
	}
	return javasrc.RenderWrapper(def, writeMethod)
}

func writeMethod(f *javasrc.File, m model.MethodDefinition) {
	f.Open("public %s %s(%s)", f.Shape(m.ReturnType), m.Name, f.Params(m.Params))
	if m.ReturnType.ReturnsValue() {
		f.Line("return %s;", f.Call(m))
	} else {
		f.Line("%s;", f.Call(m))
	}
	f.Close("")
}
