// Package errors provides structured error handling for gigalog.
// Errors carry a code for programmatic handling plus key-value context.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies an error class for programmatic handling.
type Code string

const (
	// Input errors (1xx)
	CodeFileNotFound     Code = "E101"
	CodeMissingColumn    Code = "E102"
	CodeInvalidTimestamp Code = "E103"
	CodeParseFailed      Code = "E104"

	// Configuration errors (2xx)
	CodeInvalidConfig Code = "E201"

	// Output errors (3xx)
	CodeWriteFailed         Code = "E301"
	CodeRendererUnavailable Code = "E302"

	// Unknown
	CodeUnknown Code = "E999"
)

// Error is the base error type for all gigalog errors.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if len(e.Context) > 0 {
		sb.WriteString(" (")
		first := true
		for k, v := range e.Context {
			if !first {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%s=%v", k, v))
			first = false
		}
		sb.WriteString(")")
	}

	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}

	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WithContext adds context to the error.
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new Error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap wraps an existing error with a code and message.
func Wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, code Code, format string, args ...interface{}) *Error {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// --- Convenience constructors ---

// MissingColumns reports required columns absent from an input header.
func MissingColumns(missing []string, available []string) *Error {
	return New(CodeMissingColumn, "required columns not found").
		WithContext("missing", strings.Join(missing, ", ")).
		WithContext("available", strings.Join(available, ", "))
}

// InvalidTimestamp reports a timestamp value that could not be parsed.
func InvalidTimestamp(value string, row int) *Error {
	return New(CodeInvalidTimestamp, "failed to parse timestamp").
		WithContext("value", value).
		WithContext("row", row)
}

// InvalidConfig reports a configuration validation failure.
func InvalidConfig(field string, reason string) *Error {
	return New(CodeInvalidConfig, "invalid configuration").
		WithContext("field", field).
		WithContext("reason", reason)
}

// --- Error checking utilities ---

// IsCode checks whether err carries the given code.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the code from an error, or CodeUnknown.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}
