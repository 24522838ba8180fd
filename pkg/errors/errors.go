// Package errors provides structured error types for the termplot engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the pipeline and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Configuration validation failures
//   - MISSING_*: Required options that were not supplied
//   - NOT_FOUND_*: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// Malformed or missing data is never an error: the pipeline degrades to a
// visible, possibly empty plot. Only configuration mistakes (a renderer
// that does not exist, stratified sampling without a stratify field) are
// surfaced through this package.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidRenderer, "invalid renderer: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidRenderer) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeHistory, origErr, "failed to append index for %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration validation errors
	ErrCodeInvalidSpec      Code = "INVALID_SPEC"
	ErrCodeInvalidRenderer  Code = "INVALID_RENDERER"
	ErrCodeInvalidColorMode Code = "INVALID_COLOR_MODE"
	ErrCodeInvalidPosition  Code = "INVALID_POSITION"
	ErrCodeInvalidGeom      Code = "INVALID_GEOM"
	ErrCodeInvalidStat      Code = "INVALID_STAT"
	ErrCodeInvalidScale     Code = "INVALID_SCALE"
	ErrCodeInvalidFacet     Code = "INVALID_FACET"
	ErrCodeInvalidSampling  Code = "INVALID_SAMPLING"
	ErrCodeInvalidSize      Code = "INVALID_SIZE"

	// Missing required options
	ErrCodeMissingOption Code = "MISSING_OPTION"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodePlotNotFound Code = "PLOT_NOT_FOUND"

	// History store errors
	ErrCodeHistory Code = "HISTORY_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
