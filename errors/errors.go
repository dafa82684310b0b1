// Package errors provides error handling for jsongen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - PII-safe error formatting
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "check that the input is valid JSON")
//
//	// Check errors
//	if errors.Is(err, errors.ErrNoInput) {
//	    // handle missing input
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Assertions and panics
var (
	AssertionFailedf                 = crdb.AssertionFailedf
	NewAssertionErrorWithWrappedErrf = crdb.NewAssertionErrorWithWrappedErrf
)

// Common sentinel errors for use across jsongen.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrNoInput indicates no JSON input was provided (no file, URL, or stdin)
	ErrNoInput = New("no input provided")

	// ErrEmptyInput indicates the input was read but contained no JSON values
	ErrEmptyInput = New("input contains no JSON values")

	// ErrInvalidJSON indicates the input could not be decoded as JSON
	ErrInvalidJSON = New("invalid JSON")

	// ErrUnknownLanguage indicates a language with no registered generator
	ErrUnknownLanguage = New("unknown language")
)

// IsInvalidJSONError checks if an error is or wraps ErrInvalidJSON.
func IsInvalidJSONError(err error) bool {
	return err != nil && Is(err, ErrInvalidJSON)
}

// WrapInvalidJSON wraps a decode error as an invalid-JSON error with context.
func WrapInvalidJSON(err error, context string) error {
	return Wrap(Wrap(ErrInvalidJSON, err.Error()), context)
}
