// Package errors provides error handling for wrappy.
//
// This package re-exports github.com/cockroachdb/errors so every package
// wraps, annotates and inspects errors the same way:
//
//	// Wrap with context
//	if err := host.LoadFile(path); err != nil {
//	    return errors.Wrapf(err, "failed to load descriptors from %s", path)
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "run 'wrappy strategies' to list registered generators")
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New   = crdb.New
	Newf  = crdb.Newf
	Wrap  = crdb.Wrap
	Wrapf = crdb.Wrapf
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is           = crdb.Is
	As           = crdb.As
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Common sentinel errors. Match them with errors.Is and wrap them with
// errors.Wrap to add context while preserving identity.
var (
	// ErrNotFound indicates a named entity (type, strategy, file) does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates a malformed descriptor, request or setting
	ErrInvalidRequest = New("invalid request")

	// ErrConflict indicates an attempt to produce the same artifact twice
	ErrConflict = New("conflict")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidRequestError checks if an error is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}
