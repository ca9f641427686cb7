package host

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-fournier/wrappy/errors"
)

// ============================================================================
// Fixtures: the same round in every supported format
// ============================================================================

const roundYAML = `
types:
  - name: wrappy.SynchronousApi
    locus: {file: SynchronousApi.java, line: 3}
    members:
      - {kind: constructor, name: <init>, modifiers: [public]}
      - name: add
        modifiers: [public]
        returns: int
        params: [{name: a, type: int}, {name: b, type: int}]
      - name: printName
        modifiers: [public]
        returns: void
        params:
          - name: name
            type: {kind: declared, name: java.lang.String}
requests:
  - strategy: RxJava2
    package: wrappy
    enclosing: wrappy.TestImplem
    site:
      name: getRxWrapper
      modifiers: [public, static]
      returns: "!SynchronousApiRxWrapper"
      params: [{name: api, type: wrappy.SynchronousApi}]
`

const roundJSON = `{
  "types": [{
    "name": "wrappy.SynchronousApi",
    "locus": {"file": "SynchronousApi.java", "line": 3},
    "members": [
      {"kind": "constructor", "name": "<init>", "modifiers": ["public"]},
      {"name": "add", "modifiers": ["public"], "returns": "int",
       "params": [{"name": "a", "type": "int"}, {"name": "b", "type": "int"}]},
      {"name": "printName", "modifiers": ["public"], "returns": "void",
       "params": [{"name": "name", "type": {"kind": "declared", "name": "java.lang.String"}}]}
    ]
  }],
  "requests": [{
    "strategy": "RxJava2",
    "package": "wrappy",
    "enclosing": "wrappy.TestImplem",
    "site": {
      "name": "getRxWrapper",
      "modifiers": ["public", "static"],
      "returns": "!SynchronousApiRxWrapper",
      "params": [{"name": "api", "type": "wrappy.SynchronousApi"}]
    }
  }]
}`

const roundTOML = `
[[types]]
name = "wrappy.SynchronousApi"
locus = { file = "SynchronousApi.java", line = 3 }

  [[types.members]]
  kind = "constructor"
  name = "<init>"
  modifiers = ["public"]

  [[types.members]]
  name = "add"
  modifiers = ["public"]
  returns = "int"
  params = [{ name = "a", type = "int" }, { name = "b", type = "int" }]

  [[types.members]]
  name = "printName"
  modifiers = ["public"]
  returns = "void"
  params = [{ name = "name", type = { kind = "declared", name = "java.lang.String" } }]

[[requests]]
strategy = "RxJava2"
package = "wrappy"
enclosing = "wrappy.TestImplem"

  [requests.site]
  name = "getRxWrapper"
  modifiers = ["public", "static"]
  returns = "!SynchronousApiRxWrapper"
  params = [{ name = "api", type = "wrappy.SynchronousApi" }]
`

func assertSampleRound(t *testing.T, round *Round) {
	t.Helper()

	require.Len(t, round.Types, 1)
	api, ok := round.LookupType("wrappy.SynchronousApi")
	require.True(t, ok)
	assert.Equal(t, "SynchronousApi", api.SimpleName())
	assert.Equal(t, "SynchronousApi.java:3", api.Locus.String())

	require.Len(t, api.Members, 3)
	assert.Equal(t, ElementConstructor, api.Members[0].Kind)
	assert.Equal(t, ElementMethod, api.Members[1].Kind, "kind defaults to method")
	assert.Equal(t, Primitive(KindInt), api.Members[1].ResultType())
	assert.Equal(t, Primitive(KindVoid), api.Members[2].ResultType())
	assert.Equal(t, Declared("java.lang.String"), api.Members[2].Params[0].Type)

	require.Len(t, round.Requests, 1)
	req := round.Requests[0]
	assert.Equal(t, "RxJava2", req.Strategy)
	assert.Equal(t, "wrappy", req.Package)
	assert.Equal(t, "wrappy.TestImplem.getRxWrapper", req.SiteName())
	assert.True(t, req.Site.IsStatic())
	assert.Equal(t, ErrorType("SynchronousApiRxWrapper"), req.Site.ResultType())
	assert.Equal(t, Declared("wrappy.SynchronousApi"), req.Site.Params[0].Type)
}

func TestLoadFilesAllFormats(t *testing.T) {
	tests := []struct {
		path    string
		content string
	}{
		{path: "round.yaml", content: roundYAML},
		{path: "round.yml", content: roundYAML},
		{path: "round.json", content: roundJSON},
		{path: "round.toml", content: roundTOML},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, tt.path, []byte(tt.content), 0o644))

			round, err := LoadFiles(fs, tt.path)
			require.NoError(t, err)
			assertSampleRound(t, round)
			assert.Equal(t, tt.path, round.Requests[0].Site.Locus.File, "site locus defaults to the document")
		})
	}
}

func TestLoadFilesMergesInOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "types.yaml", []byte(`
types:
  - name: a.A
  - name: a.B
`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "requests.yaml", []byte(`
requests:
  - {strategy: Empty, package: a, site: {name: first, returns: "!AW", params: [{name: x, type: a.A}]}}
  - {strategy: Empty, package: a, site: {name: second, returns: "!BW", params: [{name: x, type: a.B}]}}
`), 0o644))

	round, err := LoadFiles(fs, "types.yaml", "requests.yaml")
	require.NoError(t, err)
	require.Len(t, round.Requests, 2)
	assert.Equal(t, "first", round.Requests[0].Site.Name)
	assert.Equal(t, "second", round.Requests[1].Site.Name)
	assert.Equal(t, "types.yaml", round.Types[0].Locus.File)
}

func TestLoadFilesErrors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		content  string
		notFound bool
		invalid  bool
	}{
		{
			name:    "unsupported extension",
			path:    "round.xml",
			content: "<round/>",
			invalid: true,
		},
		{
			name:    "unknown yaml key",
			path:    "round.yaml",
			content: "typez: []",
		},
		{
			name:    "unknown json key",
			path:    "round.json",
			content: `{"typez": []}`,
		},
		{
			name:    "unknown toml key",
			path:    "round.toml",
			content: "typez = 1",
			invalid: true,
		},
		{
			name:    "bad type expression",
			path:    "round.yaml",
			content: "types: [{name: a.A, members: [{name: m, returns: 'java.util.List<'}]}]",
		},
		{
			name:    "unknown mapping kind",
			path:    "round.json",
			content: `{"types": [{"name": "a.A", "members": [{"name": "m", "returns": {"kind": "struct"}}]}]}`,
			invalid: true,
		},
		{
			name:    "declared without name",
			path:    "round.toml",
			content: "[[types]]\nname = \"a.A\"\n[[types.members]]\nname = \"m\"\nreturns = { kind = \"declared\" }\n",
		},
		{
			name:    "duplicate type",
			path:    "round.yaml",
			content: "types: [{name: a.A}, {name: a.A}]",
		},
		{
			name:    "unknown member kind",
			path:    "round.yaml",
			content: "types: [{name: a.A, members: [{kind: property, name: x}]}]",
			invalid: true,
		},
		{
			name:    "request without strategy",
			path:    "round.yaml",
			content: "requests: [{package: a, site: {name: m}}]",
			invalid: true,
		},
		{
			name:     "wrapped type not described",
			path:     "round.yaml",
			content:  "requests: [{strategy: Empty, package: a, site: {name: m, params: [{name: x, type: a.Missing}]}}]",
			notFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, tt.path, []byte(tt.content), 0o644))

			_, err := LoadFiles(fs, tt.path)
			require.Error(t, err)
			if tt.notFound {
				assert.True(t, errors.IsNotFoundError(err))
			}
			if tt.invalid {
				assert.True(t, errors.IsInvalidRequestError(err))
			}
		})
	}
}

func TestLoadFilesMissingFile(t *testing.T) {
	_, err := LoadFiles(afero.NewMemMapFs(), "missing.yaml")
	assert.ErrorContains(t, err, "missing.yaml")

	_, err = LoadFiles(afero.NewMemMapFs())
	assert.Error(t, err)
}

func TestEmptyDocumentIsAnEmptyRound(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "empty.yaml", nil, 0o644))

	round, err := LoadFiles(fs, "empty.yaml")
	require.NoError(t, err)
	assert.Empty(t, round.Types)
	assert.Empty(t, round.Requests)
}

func TestMalformedSiteSkipsWrappedTypeCheck(t *testing.T) {
	// Arity and primitive parameters are request diagnostics, not load errors.
	round, err := NewRound(nil, []Request{
		{Strategy: "Empty", Package: "a", Site: Element{Name: "none"}},
		{Strategy: "Empty", Package: "a", Site: Element{Name: "prim", Params: []Param{{Name: "x", Type: Primitive(KindInt)}}}},
	})
	require.NoError(t, err)
	assert.Equal(t, ElementMethod, round.Requests[0].Site.Kind)
}

func TestLocusString(t *testing.T) {
	tests := []struct {
		locus Locus
		want  string
	}{
		{Locus{File: "A.java", Line: 4, Column: 12}, "A.java:4:12"},
		{Locus{File: "A.java", Line: 4}, "A.java:4"},
		{Locus{File: "A.java"}, "A.java"},
		{Locus{Element: "foo.bar.A.get"}, "foo.bar.A.get"},
		{Locus{}, "<unknown>"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.locus.String())
	}
	assert.True(t, Locus{}.IsZero())
}
