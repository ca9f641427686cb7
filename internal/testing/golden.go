package testing

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/d-fournier/wrappy/diag"
	"github.com/d-fournier/wrappy/extract"
	"github.com/d-fournier/wrappy/host"
	"github.com/d-fournier/wrappy/strategy"
)

// Archive file names with a special meaning inside a golden case.
const (
	RoundFile       = "round.yaml"
	DiagnosticsFile = "diagnostics.txt"
)

// Case is one golden archive: a round and what processing it must produce.
//
//	-- round.yaml --
//	types: [...]
//	requests: [...]
//	-- foo/bar/TestWrapper.java --
//	// Generated File, do not modify
//	...
//	-- diagnostics.txt --
//	<element>: warning: ...
type Case struct {
	Name        string
	Comment     string
	Round       *host.Round
	Files       map[string]string
	Diagnostics string
	// HasDiagnostics is false when the archive does not pin diagnostics
	HasDiagnostics bool
}

// Paths returns the expected source paths in sorted order.
func (c Case) Paths() []string {
	paths := make([]string, 0, len(c.Files))
	for p := range c.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// LoadCases parses every archive matching pattern, sorted by file name.
func LoadCases(t *testing.T, pattern string) []Case {
	t.Helper()

	matches, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("bad golden pattern %q: %v", pattern, err)
	}
	if len(matches) == 0 {
		t.Fatalf("no golden archives match %q", pattern)
	}
	sort.Strings(matches)

	cases := make([]Case, 0, len(matches))
	for _, path := range matches {
		cases = append(cases, LoadCase(t, path))
	}
	return cases
}

// LoadCase parses one golden archive.
func LoadCase(t *testing.T, path string) Case {
	t.Helper()

	archive, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("failed to read golden archive %s: %v", path, err)
	}

	c := Case{
		Name:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Comment: strings.TrimSpace(string(archive.Comment)),
		Files:   make(map[string]string),
	}
	for _, f := range archive.Files {
		switch f.Name {
		case RoundFile:
			c.Round = NewRound(t, string(f.Data))
		case DiagnosticsFile:
			c.Diagnostics = string(f.Data)
			c.HasDiagnostics = true
		default:
			c.Files[f.Name] = string(f.Data)
		}
	}
	if c.Round == nil {
		t.Fatalf("golden archive %s has no %s", path, RoundFile)
	}
	return c
}

// NewRound builds a round from an inline YAML document.
func NewRound(t *testing.T, doc string) *host.Round {
	t.Helper()

	parsed, err := host.Decode([]byte(doc), host.FormatYAML)
	if err != nil {
		t.Fatalf("failed to decode round: %v", err)
	}
	round, err := host.NewRound(parsed.Types, parsed.Requests)
	if err != nil {
		t.Fatalf("invalid round: %v", err)
	}
	return round
}

// Generate extracts every request of c and renders it with s. It returns
// the generated sources keyed by path and the diagnostics in plain format.
func Generate(t *testing.T, c Case, s strategy.Strategy) (map[string]string, string) {
	t.Helper()

	collector := diag.NewCollector()
	reporter := diag.NewReporter(collector)
	x := extract.New(c.Round, reporter)

	files := make(map[string]string)
	for _, req := range c.Round.Requests {
		def, err := x.Extract(req)
		if err != nil {
			t.Fatalf("%s: extracting %s: %v", c.Name, req.SiteName(), err)
		}
		unit, err := s.Render(context.Background(), def)
		if err != nil {
			t.Fatalf("%s: rendering %s: %v", c.Name, req.SiteName(), err)
		}
		files[unit.Path()] = string(unit.Content)
	}

	var plain strings.Builder
	for _, d := range collector.Diagnostics() {
		plain.WriteString(diag.PlainFormatter{}.Format(d))
	}
	return files, plain.String()
}
