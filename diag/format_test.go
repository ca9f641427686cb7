package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-fournier/wrappy/host"
)

func TestPlainFormatter(t *testing.T) {
	tests := []struct {
		name string
		diag Diagnostic
		want string
	}{
		{
			name: "positioned error",
			diag: Diagnostic{Severity: SeverityError, Message: "No generator can be found", Locus: host.Locus{File: "A.java", Line: 3, Column: 9}},
			want: "A.java:3:9: error: No generator can be found\n",
		},
		{
			name: "element warning with hint",
			diag: Diagnostic{Severity: SeverityWarning, Message: "empty", Locus: host.Locus{Element: "foo.Bar"}, Hint: "add public methods"},
			want: "foo.Bar: warning: empty (hint: add public methods)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainFormatter{}.Format(tt.diag))
		})
	}
}

func TestTerminalFormatter(t *testing.T) {
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	out := TerminalFormatter{}.Format(Diagnostic{
		Severity: SeverityWarning,
		Code:     CodeNoEligibleMethods,
		Message:  "The wrapped class Api does not contain eligible methods",
		Locus:    host.Locus{File: "Api.java", Line: 1},
		Hint:     "only public instance methods are wrapped",
	})

	assert.Equal(t, "Api.java:1: warning: The wrapped class Api does not contain eligible methods [shape.no-methods]\n"+
		"  hint: only public instance methods are wrapped\n", out)
}

func TestJSONFormatter(t *testing.T) {
	out := JSONFormatter{}.Format(Diagnostic{
		Severity: SeverityError,
		Code:     CodeStrategyNotFound,
		Message:  `The requested generator "Rx" cannot be found. Available generators are: [Empty]`,
		Locus:    host.Locus{File: "A.java", Line: 3},
	})
	require.True(t, strings.HasSuffix(out, "\n"))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "error", decoded["severity"])
	assert.Equal(t, "lookup.not-found", decoded["code"])
	assert.Equal(t, `The requested generator "Rx" cannot be found. Available generators are: [Empty]`, decoded["message"])
	assert.Equal(t, map[string]interface{}{"file": "A.java", "line": float64(3)}, decoded["locus"])
	assert.NotContains(t, decoded, "hint")
}

func TestNewFormatter(t *testing.T) {
	for _, f := range []Format{FormatTerminal, FormatPlain, FormatJSON} {
		formatter, err := NewFormatter(f)
		require.NoError(t, err)
		assert.NotNil(t, formatter)
	}

	_, err := NewFormatter("xml")
	assert.Error(t, err)
}

func TestWriterSinkAndMultiSink(t *testing.T) {
	var buf bytes.Buffer
	c := NewCollector()
	sink := MultiSink{NewWriterSink(&buf, PlainFormatter{}), c}

	sink.Report(Diagnostic{Severity: SeverityNote, Message: "one", Locus: host.Locus{Element: "a.A"}})
	sink.Report(Diagnostic{Severity: SeverityError, Message: "two", Locus: host.Locus{Element: "a.B"}})

	assert.Equal(t, "a.A: note: one\na.B: error: two\n", buf.String())
	assert.Len(t, c.Diagnostics(), 2)
	assert.True(t, c.HasErrors())
	assert.Equal(t, 1, c.Count(SeverityNote))
}

func TestCollectorSorted(t *testing.T) {
	c := NewCollector()
	c.Report(Diagnostic{Severity: SeverityNote, Message: "no position", Locus: host.Locus{Element: "x"}})
	c.Report(Diagnostic{Severity: SeverityWarning, Message: "b:2", Locus: host.Locus{File: "b.java", Line: 2}})
	c.Report(Diagnostic{Severity: SeverityNote, Message: "a:5 note", Locus: host.Locus{File: "a.java", Line: 5}})
	c.Report(Diagnostic{Severity: SeverityError, Message: "a:5 error", Locus: host.Locus{File: "a.java", Line: 5}})
	c.Report(Diagnostic{Severity: SeverityError, Message: "a:1", Locus: host.Locus{File: "a.java", Line: 1}})

	var got []string
	for _, d := range c.Sorted() {
		got = append(got, d.Message)
	}
	assert.Equal(t, []string{"a:1", "a:5 error", "a:5 note", "b:2", "no position"}, got)
}

func TestLimitSink(t *testing.T) {
	c := NewCollector()
	l := NewLimitSink(c, 2)

	l.Report(Diagnostic{Severity: SeverityNote, Message: "n1"})
	l.Report(Diagnostic{Severity: SeverityWarning, Message: "w1"})
	l.Report(Diagnostic{Severity: SeverityWarning, Message: "w2"})
	l.Report(Diagnostic{Severity: SeverityError, Message: "e1"})

	assert.Equal(t, []string{"n1", "w1", "e1"}, c.Messages())
	assert.Equal(t, 1, l.Dropped())

	unlimited := NewCollector()
	u := NewLimitSink(unlimited, 0)
	for i := 0; i < 5; i++ {
		u.Report(Diagnostic{Severity: SeverityNote})
	}
	assert.Equal(t, 5, unlimited.Count(SeverityNote))
	assert.Equal(t, 0, u.Dropped())
}

func TestLimitSinkErrorsDoNotSpendBudget(t *testing.T) {
	tests := []struct {
		name    string
		max     int
		reports []Severity
		want    []string
		dropped int
	}{
		{
			name:    "error then warning",
			max:     1,
			reports: []Severity{SeverityError, SeverityWarning},
			want:    []string{"error", "warning"},
		},
		{
			name:    "errors around the budget",
			max:     1,
			reports: []Severity{SeverityError, SeverityNote, SeverityError, SeverityWarning},
			want:    []string{"error", "note", "error"},
			dropped: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollector()
			l := NewLimitSink(c, tt.max)
			for _, sev := range tt.reports {
				l.Report(Diagnostic{Severity: sev, Message: string(sev)})
			}
			assert.Equal(t, tt.want, c.Messages())
			assert.Equal(t, tt.dropped, l.Dropped())
		})
	}
}
