// Package errors provides structured error types for lociview.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI, and server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Construction-time validation failures
//   - UNSUPPORTED_*: Dispatch failures (operand types, file extensions, formats)
//   - FETCH_*/RENDER_*: Plot-time failures from data sources and renderers
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidRange, "invalid genome range: %s", s)
//	if errors.Is(err, errors.ErrCodeInvalidRange) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFetch, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Construction-time validation errors
	ErrCodeInvalidRange      Code = "INVALID_RANGE"
	ErrCodeInvalidCenter     Code = "INVALID_CENTER"
	ErrCodeInvalidTrack      Code = "INVALID_TRACK"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"
	ErrCodeInsufficientSides Code = "INSUFFICIENT_SIDES"

	// Dispatch errors
	ErrCodeUnsupportedOperand   Code = "UNSUPPORTED_OPERAND"
	ErrCodeUnsupportedExtension Code = "UNSUPPORTED_EXTENSION"
	ErrCodeUnsupportedFormat    Code = "UNSUPPORTED_FORMAT"

	// Plot-time errors
	ErrCodeFetch  Code = "FETCH_ERROR"
	ErrCodeRender Code = "RENDER_ERROR"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// OperandError builds the unsupported-operand error for track composition.
// Both operand types are named so the failure is diagnosable at the call site.
func OperandError(left, right any) *Error {
	return New(ErrCodeUnsupportedOperand,
		"unsupported operand: %T + %T", left, right)
}

// ExtensionError builds the dispatch error for factory functions,
// enumerating the accepted file extensions.
func ExtensionError(path string, accepted ...string) *Error {
	return New(ErrCodeUnsupportedExtension,
		"no track type for %q (accepted extensions: %s)", path, join(accepted))
}

func join(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
