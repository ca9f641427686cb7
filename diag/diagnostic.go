// Package diag carries generation diagnostics from the pipeline to the user.
package diag

import (
	"github.com/d-fournier/wrappy/errors"
	"github.com/d-fournier/wrappy/host"
)

// Severity indicates how a diagnostic affects the round
type Severity string

const (
	SeverityNote    Severity = "note"    // Informational, never fails a round
	SeverityWarning Severity = "warning" // Suspicious input, generation continues
	SeverityError   Severity = "error"   // The request produces no output
)

// Rank orders severities from note to error.
func (s Severity) Rank() int {
	switch s {
	case SeverityNote:
		return 0
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	}
	return -1
}

// Code is a stable identifier for a class of diagnostic
type Code string

const (
	CodeWrongArity         Code = "shape.arity"
	CodePrimitiveParameter Code = "shape.parameter"
	CodeTargetExists       Code = "shape.target-exists"
	CodeNoEligibleMethods  Code = "shape.no-methods"
	CodeUnresolvedType     Code = "type.unresolved"
	CodeTypeNotFound       Code = "type.not-found"
	CodeNoStrategies       Code = "lookup.empty"
	CodeStrategyNotFound   Code = "lookup.not-found"
	CodeRenderFailed       Code = "render.failed"
	CodeEmitFailed         Code = "emit.failed"
)

// Diagnostic is one message attached to a locus
type Diagnostic struct {
	Severity Severity   `json:"severity"`
	Code     Code       `json:"code,omitempty"`
	Message  string     `json:"message"`
	Locus    host.Locus `json:"locus"`
	Hint     string     `json:"hint,omitempty"`
}

// ErrAborted is returned by reporters when processing must stop. It is
// always preceded by at least one reported error.
var ErrAborted = errors.New("generation aborted")

// AbortError is the error returned by AbortWithError. It matches ErrAborted.
type AbortError struct {
	Diagnostic Diagnostic
}

func (e *AbortError) Error() string {
	return e.Diagnostic.Message
}

func (e *AbortError) Unwrap() error {
	return ErrAborted
}
