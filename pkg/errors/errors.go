// Package errors provides structured error types for floatplace.
//
// Error codes make failures at the edges (scenario files, CLI flags, the HTTP
// API) machine-readable. The offset resolver itself never fails; platform
// errors pass through the pipeline untouched and carry no code.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPlacement, "unknown placement: %s", p)
//	if errors.Is(err, errors.ErrCodeInvalidPlacement) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidScenario, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidPlacement Code = "INVALID_PLACEMENT"
	ErrCodeInvalidRect      Code = "INVALID_RECT"
	ErrCodeInvalidOffset    Code = "INVALID_OFFSET"
	ErrCodeInvalidScenario  Code = "INVALID_SCENARIO"
	ErrCodeInvalidScript    Code = "INVALID_SCRIPT"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeUnsupported  Code = "UNSUPPORTED"

	// Runtime errors
	ErrCodeScriptTimeout Code = "SCRIPT_TIMEOUT"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
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

// IsValidation reports whether err carries an input validation code.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidPlacement, ErrCodeInvalidRect,
		ErrCodeInvalidOffset, ErrCodeInvalidScenario, ErrCodeInvalidScript:
		return true
	}
	return false
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
