package reactive_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-fournier/wrappy/host"
	wrappytest "github.com/d-fournier/wrappy/internal/testing"
	"github.com/d-fournier/wrappy/model"
	"github.com/d-fournier/wrappy/strategy/reactive"
)

func TestGolden(t *testing.T) {
	flavors := map[string]reactive.Flavor{
		reactive.RxJava2.Name: reactive.RxJava2,
		reactive.RxJava3.Name: reactive.RxJava3,
	}

	for _, c := range wrappytest.LoadCases(t, "testdata/*.txtar") {
		t.Run(c.Name, func(t *testing.T) {
			require.NotEmpty(t, c.Round.Requests)
			flavor, ok := flavors[c.Round.Requests[0].Strategy]
			require.True(t, ok, "unknown strategy %s", c.Round.Requests[0].Strategy)

			files, diagnostics := wrappytest.Generate(t, c, reactive.New(flavor))

			got := make([]string, 0, len(files))
			for path := range files {
				got = append(got, path)
			}
			sort.Strings(got)
			assert.Equal(t, c.Paths(), got)
			for path, want := range c.Files {
				assert.Equal(t, want, files[path], path)
			}
			if c.HasDiagnostics {
				assert.Equal(t, c.Diagnostics, diagnostics)
			}
		})
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, "RxJava2", reactive.New(reactive.RxJava2).Name())
	assert.Equal(t, "RxJava3", reactive.New(reactive.RxJava3).Name())
}

func TestEveryPrimitiveIsBoxed(t *testing.T) {
	primitives := []model.PrimitiveKind{
		model.Boolean, model.Byte, model.Short, model.Int,
		model.Long, model.Char, model.Float, model.Double,
	}

	for _, p := range primitives {
		t.Run(p.Keyword(), func(t *testing.T) {
			def := model.WrapperDefinition{
				PackageName: "foo.bar",
				ClassName:   "TestWrapper",
				WrappedType: model.Declared(host.Declared("foo.bar.WrappedClass")),
				Methods:     []model.MethodDefinition{{Name: "get", ReturnType: model.PrimitiveShape(p)}},
			}

			unit, err := reactive.New(reactive.RxJava2).Render(context.Background(), def)
			require.NoError(t, err)

			boxed := p.Boxed()
			simple := boxed[strings.LastIndex(boxed, ".")+1:]
			content := string(unit.Content)
			assert.Contains(t, content, "import "+boxed+";\n")
			assert.Contains(t, content, "public Single<"+simple+"> get() {")
			assert.Contains(t, content, "return wrappedClass.get();")
			assert.NotContains(t, content, "IllegalStateException")
		})
	}
}

func TestRenderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := reactive.New(reactive.RxJava2).Render(ctx, model.WrapperDefinition{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderRejectsUnresolvedResult(t *testing.T) {
	def := model.WrapperDefinition{
		PackageName: "foo.bar",
		ClassName:   "TestWrapper",
		WrappedType: model.Declared(host.Declared("foo.bar.WrappedClass")),
		Methods:     []model.MethodDefinition{{Name: "get", ReturnType: model.Unresolved("Missing")}},
	}

	_, err := reactive.New(reactive.RxJava2).Render(context.Background(), def)
	assert.Error(t, err)
}

func TestRenderIsDeterministic(t *testing.T) {
	def := model.WrapperDefinition{
		PackageName: "foo.bar",
		ClassName:   "TestWrapper",
		WrappedType: model.Declared(host.Declared("foo.bar.WrappedClass")),
		Methods: []model.MethodDefinition{
			{Name: "find", ReturnType: model.Declared(host.Declared("java.util.List", host.Declared("java.lang.String"))),
				Params: []model.ParameterDefinition{{Name: "value", Type: model.Declared(host.Declared("java.lang.String"))}}},
			{Name: "size", ReturnType: model.PrimitiveShape(model.Long)},
			{Name: "refresh", ReturnType: model.None()},
			{Name: "update", ReturnType: model.Void()},
		},
	}

	for _, flavor := range []reactive.Flavor{reactive.RxJava2, reactive.RxJava3} {
		t.Run(flavor.Name, func(t *testing.T) {
			s := reactive.New(flavor)
			first, err := s.Render(context.Background(), def)
			require.NoError(t, err)
			second, err := s.Render(context.Background(), def)
			require.NoError(t, err)

			assert.Equal(t, first.Path(), second.Path())
			assert.Equal(t, string(first.Content), string(second.Content))
		})
	}
}
