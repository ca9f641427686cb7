// Package reactive renders wrappers whose methods return deferred reactive
// values: Single for methods producing a value, Completable for the others.
package reactive

import (
	"context"

	"github.com/d-fournier/wrappy/model"
	"github.com/d-fournier/wrappy/strategy"
	"github.com/d-fournier/wrappy/strategy/javasrc"
)

// Flavor names the reactive library the wrapper targets.
type Flavor struct {
	Name        string
	Single      string
	Completable string
	Action      string
}

var (
	// RxJava2 targets io.reactivex (RxJava 2.x).
	RxJava2 = Flavor{
		Name:        "RxJava2",
		Single:      "io.reactivex.Single",
		Completable: "io.reactivex.Completable",
		Action:      "io.reactivex.functions.Action",
	}

	// RxJava3 targets io.reactivex.rxjava3 (RxJava 3.x).
	RxJava3 = Flavor{
		Name:        "RxJava3",
		Single:      "io.reactivex.rxjava3.core.Single",
		Completable: "io.reactivex.rxjava3.core.Completable",
		Action:      "io.reactivex.rxjava3.functions.Action",
	}
)

const (
	callable     = "java.util.concurrent.Callable"
	override     = "java.lang.Override"
	illegalState = "java.lang.IllegalStateException"
)

// Strategy wraps every method into a lazily evaluated reactive source.
type Strategy struct {
	flavor Flavor
}

func New(flavor Flavor) *Strategy {
	return &Strategy{flavor: flavor}
}

func (s *Strategy) Name() string {
	return s.flavor.Name
}

func (s *Strategy) Render(ctx context.Context, def model.WrapperDefinition) (strategy.SourceUnit, error) {
	if err := ctx.Err(); err != nil {
		return strategy.SourceUnit{}, err
	}
	return javasrc.RenderWrapper(def, s.writeMethod)
}

func (s *Strategy) writeMethod(f *javasrc.File, m model.MethodDefinition) {
	if m.ReturnType.ReturnsValue() {
		s.writeSingle(f, m)
		return
	}
	s.writeCompletable(f, m)
}

// writeSingle wraps a value-returning method. Declared results are checked
// for null when the Single is subscribed, primitives cannot be null.
func (s *Strategy) writeSingle(f *javasrc.File, m model.MethodDefinition) {
	boxed := f.Boxed(m.ReturnType)
	single := f.Class(s.flavor.Single)

	f.Open("public %s<%s> %s(%s)", single, boxed, m.Name, f.Params(m.Params))
	f.Open("return %s.fromCallable(new %s<%s>()", single, f.Class(callable), boxed)
	f.Line("@%s", f.Class(override))
	f.Open("public %s call()", boxed)
	switch m.ReturnType.Kind {
	case model.ShapePrimitive:
		f.Line("return %s;", f.Call(m))
	case model.ShapeDeclared, model.ShapeUnresolved:
		value := javasrc.LocalName(m, "value")
		f.Line("%s %s = %s;", boxed, value, f.Call(m))
		f.Open("if (%s != null)", value)
		f.Line("return %s;", value)
		f.Close("")
		f.Line("throw new %s();", f.Class(illegalState))
	case model.ShapeVoid, model.ShapeNone:
		// unreachable: ReturnsValue is false
	}
	f.Close("")
	f.Close(");")
	f.Close("")
}

func (s *Strategy) writeCompletable(f *javasrc.File, m model.MethodDefinition) {
	completable := f.Class(s.flavor.Completable)

	f.Open("public %s %s(%s)", completable, m.Name, f.Params(m.Params))
	f.Open("return %s.fromAction(new %s()", completable, f.Class(s.flavor.Action))
	f.Line("@%s", f.Class(override))
	f.Open("public void run()")
	f.Line("%s;", f.Call(m))
	f.Close("")
	f.Close(");")
	f.Close("")
}
