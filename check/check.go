// Package check verifies that generated sources on disk match what a round
// would generate now.
package check

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/d-fournier/wrappy/errors"
	"github.com/d-fournier/wrappy/strategy/javasrc"
)

// Result holds the result of a check
type Result struct {
	UpToDate bool
	// Missing are generated files absent from the existing tree
	Missing []string
	// Changed are generated files whose existing content differs
	Changed []string
	// Stale are existing generated files the round no longer produces
	Stale []string
}

// Problems lists every difference as "<kind>: <path>", sorted by path.
func (r *Result) Problems() []string {
	var out []string
	for _, p := range r.Missing {
		out = append(out, "missing: "+p)
	}
	for _, p := range r.Changed {
		out = append(out, "changed: "+p)
	}
	for _, p := range r.Stale {
		out = append(out, "stale: "+p)
	}
	sort.Slice(out, func(i, j int) bool {
		return pathOf(out[i]) < pathOf(out[j])
	})
	return out
}

func pathOf(problem string) string {
	return problem[strings.Index(problem, ": ")+2:]
}

// Compare compares the files generated below genRoot on gen with the tree
// below existingRoot on existing. Paths in the result are slash separated
// and relative to the roots.
func Compare(gen afero.Fs, genRoot string, existing afero.Fs, existingRoot string) (*Result, error) {
	result := &Result{}
	generated := make(map[string]bool)

	err := afero.Walk(gen, genRoot, func(p string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := relSlash(genRoot, p)
		if err != nil {
			return err
		}
		generated[rel] = true

		want, err := afero.ReadFile(gen, p)
		if err != nil {
			return errors.Wrapf(err, "failed to read generated %s", rel)
		}
		got, err := afero.ReadFile(existing, filepath.Join(existingRoot, filepath.FromSlash(rel)))
		switch {
		case os.IsNotExist(err):
			result.Missing = append(result.Missing, rel)
		case err != nil:
			return errors.Wrapf(err, "failed to read %s", rel)
		case !bytes.Equal(want, got):
			result.Changed = append(result.Changed, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	exists, err := afero.DirExists(existing, existingRoot)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", existingRoot)
	}
	if exists {
		err = afero.Walk(existing, existingRoot, func(p string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() || filepath.Ext(p) != ".java" {
				return err
			}
			rel, err := relSlash(existingRoot, p)
			if err != nil {
				return err
			}
			if generated[rel] {
				return nil
			}
			isGenerated, err := hasGeneratedHeader(existing, p)
			if err != nil {
				return err
			}
			if isGenerated {
				result.Stale = append(result.Stale, rel)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(result.Missing)
	sort.Strings(result.Changed)
	sort.Strings(result.Stale)
	result.UpToDate = len(result.Missing)+len(result.Changed)+len(result.Stale) == 0
	return result, nil
}

func relSlash(root, p string) (string, error) {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return "", errors.Wrapf(err, "failed to relativize %s", p)
	}
	return filepath.ToSlash(rel), nil
}

// hasGeneratedHeader reports whether the first line of a file is the
// comment every generated unit starts with. Handwritten sources living in
// the same tree are left alone.
func hasGeneratedHeader(fs afero.Fs, p string) (bool, error) {
	f, err := fs.Open(p)
	if err != nil {
		return false, errors.Wrapf(err, "failed to open %s", p)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	return strings.TrimSpace(scanner.Text()) == "// "+javasrc.GeneratedComment, nil
}
