// Package errors provides structured error handling with typed error codes.
//
// Error codes are grouped by concern:
//   - General errors (1-99)
//   - Validation errors (100-199): invalid parameters and configuration
//   - Data errors (200-299): missing, empty, or malformed price series
//   - Indicator errors (300-399): indicator calculation failures
//   - Strategy errors (400-499): strategy lookup and preparation errors
//   - Trading errors (500-599): ledger and order bookkeeping errors
//   - Backtest errors (600-699): engine lifecycle and state errors
//
// Usage:
//
//	err := errors.New(errors.ErrCodeEmptyPriceSeries, "price series is empty")
//	err := errors.Newf(errors.ErrCodeUnknownStrategy, "unknown strategy %q", name)
//	err := errors.Wrap(errors.ErrCodeJournalFailed, "failed to persist trade", cause)
//	if errors.HasCode(err, errors.ErrCodeEngineCompleted) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error is a structured error carrying an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// GetCode extracts the ErrorCode from an error if it is an *Error.
// Returns ErrCodeUnknown for any other error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode reports whether an error carries a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}
