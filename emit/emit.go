// Package emit hands rendered source units to their destination.
package emit

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/afero"

	"github.com/d-fournier/wrappy/errors"
	"github.com/d-fournier/wrappy/strategy"
)

// Filer receives the source units of one round. Implementations must be
// safe for concurrent use.
type Filer interface {
	Write(ctx context.Context, unit strategy.SourceUnit) error
}

// EmissionError wraps a failure to write a unit.
type EmissionError struct {
	Unit strategy.SourceUnit
	Err  error
}

func (e *EmissionError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Unit.QualifiedName(), e.Err)
}

func (e *EmissionError) Unwrap() error {
	return e.Err
}

// RecreateError is returned when a round writes the same type twice.
type RecreateError struct {
	QualifiedName string
}

func (e *RecreateError) Error() string {
	return "attempt to recreate a file for type " + e.QualifiedName
}

// DirFiler writes units below a root directory of a filesystem, one file
// per type, creating package directories as needed.
type DirFiler struct {
	fs   afero.Fs
	root string

	mu      sync.Mutex
	written map[string]bool
}

// NewDirFiler returns a filer writing below root on fs.
func NewDirFiler(fs afero.Fs, root string) *DirFiler {
	return &DirFiler{fs: fs, root: root, written: make(map[string]bool)}
}

func (d *DirFiler) Write(ctx context.Context, unit strategy.SourceUnit) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rel := unit.Path()
	d.mu.Lock()
	if d.written[rel] {
		d.mu.Unlock()
		return &EmissionError{Unit: unit, Err: &RecreateError{QualifiedName: unit.QualifiedName()}}
	}
	d.written[rel] = true
	d.mu.Unlock()

	full := filepath.Join(d.root, filepath.FromSlash(rel))
	if err := d.fs.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return &EmissionError{Unit: unit, Err: errors.Wrapf(err, "failed to create %s", filepath.Dir(full))}
	}
	if err := afero.WriteFile(d.fs, full, unit.Content, 0o644); err != nil {
		return &EmissionError{Unit: unit, Err: errors.Wrapf(err, "failed to write %s", full)}
	}
	return nil
}

// Written returns the relative paths written so far, sorted.
func (d *DirFiler) Written() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.written))
	for p := range d.written {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// WriterFiler concatenates units on a writer, each preceded by a
// "// File: <path>" line.
type WriterFiler struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterFiler(w io.Writer) *WriterFiler {
	return &WriterFiler{w: w}
}

func (f *WriterFiler) Write(ctx context.Context, unit strategy.SourceUnit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := fmt.Fprintf(f.w, "// File: %s\n", unit.Path()); err != nil {
		return &EmissionError{Unit: unit, Err: err}
	}
	if _, err := f.w.Write(unit.Content); err != nil {
		return &EmissionError{Unit: unit, Err: err}
	}
	return nil
}

// NewMemFiler returns a DirFiler over an in-memory filesystem. Fs exposes
// the result.
func NewMemFiler() *MemFiler {
	fs := afero.NewMemMapFs()
	return &MemFiler{DirFiler: NewDirFiler(fs, "/"), Fs: fs}
}

// MemFiler keeps units in memory, used by check and tests.
type MemFiler struct {
	*DirFiler
	Fs afero.Fs
}

// Content returns the bytes written for a relative path.
func (m *MemFiler) Content(rel string) ([]byte, error) {
	return afero.ReadFile(m.Fs, filepath.Join("/", filepath.FromSlash(rel)))
}
