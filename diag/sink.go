package diag

import (
	"io"
	"sort"
	"sync"
)

// Sink receives diagnostics. Implementations must be safe for concurrent use.
type Sink interface {
	Report(Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Diagnostic)

func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// Collector keeps diagnostics in arrival order.
type Collector struct {
	mu    sync.Mutex
	diags []Diagnostic
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, d)
}

// Diagnostics returns a copy of everything collected so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}

// Messages returns the collected messages, for assertions.
func (c *Collector) Messages() []string {
	diags := c.Diagnostics()
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}

func (c *Collector) HasErrors() bool {
	return c.Count(SeverityError) > 0
}

// Count returns how many diagnostics of exactly sev were collected.
func (c *Collector) Count(sev Severity) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.diags {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Sorted returns the diagnostics ordered by file, line, column, then severity
// (errors first). Diagnostics without a position keep arrival order at the end.
func (c *Collector) Sorted() []Diagnostic {
	out := c.Diagnostics()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Locus, out[j].Locus
		if (a.File == "") != (b.File == "") {
			return a.File != ""
		}
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return out[i].Severity.Rank() > out[j].Severity.Rank()
	})
	return out
}

// MultiSink fans a diagnostic out to several sinks in order.
type MultiSink []Sink

func (m MultiSink) Report(d Diagnostic) {
	for _, s := range m {
		s.Report(d)
	}
}

// WriterSink formats each diagnostic onto w as it arrives.
type WriterSink struct {
	mu        sync.Mutex
	w         io.Writer
	formatter Formatter
}

func NewWriterSink(w io.Writer, f Formatter) *WriterSink {
	return &WriterSink{w: w, formatter: f}
}

func (s *WriterSink) Report(d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.w, s.formatter.Format(d))
}

// LimitSink forwards at most max notes and warnings to its sink and counts
// the rest. Errors are always forwarded and never spend the budget.
type LimitSink struct {
	mu      sync.Mutex
	sink    Sink
	max     int
	seen    int
	dropped int
}

// NewLimitSink limits s to max diagnostics; max <= 0 forwards everything.
func NewLimitSink(s Sink, max int) *LimitSink {
	return &LimitSink{sink: s, max: max}
}

func (l *LimitSink) Report(d Diagnostic) {
	l.mu.Lock()
	if d.Severity != SeverityError {
		if l.max > 0 && l.seen >= l.max {
			l.dropped++
			l.mu.Unlock()
			return
		}
		l.seen++
	}
	l.mu.Unlock()

	l.sink.Report(d)
}

// Dropped returns how many diagnostics were not forwarded.
func (l *LimitSink) Dropped() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}
