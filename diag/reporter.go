package diag

import (
	"sync"

	"github.com/d-fournier/wrappy/host"
)

// Reporter is the error reporter of one processing round. It forwards
// diagnostics to a sink and remembers whether any error was reported.
//
// A Reporter is created per round by the driver and never shared between
// rounds. Scope derives a request-level reporter whose diagnostics are held
// back until Flush, so concurrent requests report in a deterministic order.
type Reporter struct {
	mu        sync.Mutex
	sink      Sink
	parent    *Reporter
	pending   []Diagnostic
	anyErrors bool
	counts    map[Severity]int
}

// NewReporter returns a round-level reporter writing to sink.
func NewReporter(sink Sink) *Reporter {
	if sink == nil {
		sink = Discard
	}
	return &Reporter{sink: sink, counts: make(map[Severity]int)}
}

// Scope returns a request-level child. Its error flag is independent of the
// parent's until Flush forwards its diagnostics.
func (r *Reporter) Scope() *Reporter {
	return &Reporter{parent: r, counts: make(map[Severity]int)}
}

// Report records d. The error flag is set when d is an error.
func (r *Reporter) Report(d Diagnostic) {
	r.mu.Lock()
	if d.Severity == SeverityError {
		r.anyErrors = true
	}
	r.counts[d.Severity]++
	if r.parent != nil {
		r.pending = append(r.pending, d)
		r.mu.Unlock()
		return
	}
	sink := r.sink
	r.mu.Unlock()

	sink.Report(d)
}

func (r *Reporter) ReportNote(code Code, message string, locus host.Locus) {
	r.Report(Diagnostic{Severity: SeverityNote, Code: code, Message: message, Locus: locus})
}

func (r *Reporter) ReportWarning(code Code, message string, locus host.Locus) {
	r.Report(Diagnostic{Severity: SeverityWarning, Code: code, Message: message, Locus: locus})
}

func (r *Reporter) ReportError(code Code, message string, locus host.Locus) {
	r.Report(Diagnostic{Severity: SeverityError, Code: code, Message: message, Locus: locus})
}

// AbortWithError reports an error and returns the error the caller must
// return to stop processing. The returned error matches ErrAborted.
func (r *Reporter) AbortWithError(code Code, message string, locus host.Locus) error {
	return r.Abort(Diagnostic{Severity: SeverityError, Code: code, Message: message, Locus: locus})
}

// Abort is AbortWithError for a prepared diagnostic; the severity is forced
// to error.
func (r *Reporter) Abort(d Diagnostic) error {
	d.Severity = SeverityError
	r.Report(d)
	return &AbortError{Diagnostic: d}
}

// AbortIfAnyError returns ErrAborted when any error was reported through r.
func (r *Reporter) AbortIfAnyError() error {
	if r.AnyErrors() {
		return ErrAborted
	}
	return nil
}

// AnyErrors reports whether an error went through r. The flag is never reset.
func (r *Reporter) AnyErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.anyErrors
}

// Count returns the number of diagnostics of severity sev seen by r.
func (r *Reporter) Count(sev Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[sev]
}

// Flush forwards a scope's held diagnostics to its parent in report order.
// Flushing a round-level reporter is a no-op.
func (r *Reporter) Flush() {
	if r.parent == nil {
		return
	}
	r.mu.Lock()
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()

	for _, d := range pending {
		r.parent.Report(d)
	}
}
