// Package strategy defines the contract of a generation strategy and the
// source units strategies produce.
package strategy

import (
	"context"
	"path"
	"strings"

	"github.com/d-fournier/wrappy/model"
)

// Strategy renders a wrapper definition into a source unit.
//
// Implementations perform no I/O and are referentially transparent: the
// same definition always renders to the same bytes. A Strategy may be used
// by concurrent requests.
type Strategy interface {
	// Name is the registration key requests refer to.
	Name() string
	Render(ctx context.Context, def model.WrapperDefinition) (SourceUnit, error)
}

// SourceUnit is one rendered compilation unit.
type SourceUnit struct {
	Package string
	Name    string
	Content []byte
}

// QualifiedName returns the qualified name of the unit's top-level type.
func (u SourceUnit) QualifiedName() string {
	if u.Package == "" {
		return u.Name
	}
	return u.Package + "." + u.Name
}

// Path returns the slash-separated path of the unit relative to a source root.
func (u SourceUnit) Path() string {
	file := u.Name + ".java"
	if u.Package == "" {
		return file
	}
	return path.Join(strings.ReplaceAll(u.Package, ".", "/"), file)
}

// Func adapts a rendering function into a Strategy.
type Func struct {
	StrategyName string
	RenderFunc   func(ctx context.Context, def model.WrapperDefinition) (SourceUnit, error)
}

func (f Func) Name() string { return f.StrategyName }

func (f Func) Render(ctx context.Context, def model.WrapperDefinition) (SourceUnit, error) {
	return f.RenderFunc(ctx, def)
}
