package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings.
const (
	// Identity and context
	FieldRoundID = "round_id"
	FieldRequest = "request"

	// Generation
	FieldStrategy = "strategy"
	FieldType     = "type"
	FieldMethod   = "method"
	FieldUnit     = "unit"
	FieldOutcome  = "outcome"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError    = "error"
	FieldSeverity = "severity"
	FieldCode     = "code"

	// Counts
	FieldCount     = "count"
	FieldGenerated = "generated"
	FieldFailed    = "failed"
	FieldJobs      = "jobs"

	// Files and paths
	FieldFile = "file"
	FieldPath = "path"
)

type contextKey string

const roundIDKey contextKey = "logger_round_id"

// WithRoundID adds a processing round ID to the context for logging
func WithRoundID(ctx context.Context, roundID string) context.Context {
	return context.WithValue(ctx, roundIDKey, roundID)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Warnw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if roundID, ok := ctx.Value(roundIDKey).(string); ok && roundID != "" {
		fields = append(fields, FieldRoundID, roundID)
	}

	return fields
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	p := &Processor{logger: logger.ComponentLogger("processor")}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
