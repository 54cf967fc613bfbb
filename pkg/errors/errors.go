// Package errors provides coded errors for dirx. Codes are stable so callers
// and tests can branch on them without matching message text.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Catalog errors
	ErrPatternInvalid  ErrorCode = "PATTERN_INVALID"
	ErrMacroNotFound   ErrorCode = "MACRO_NOT_FOUND"
	ErrRulesetNotFound ErrorCode = "RULESET_NOT_FOUND"
	ErrRulesetKind     ErrorCode = "RULESET_KIND_MISMATCH"
	ErrStateLoad       ErrorCode = "STATE_LOAD"
	ErrStateSave       ErrorCode = "STATE_SAVE"

	// Session errors
	ErrNoSelection   ErrorCode = "NO_SELECTION"
	ErrNothingToUndo ErrorCode = "NOTHING_TO_UNDO"
	ErrNothingToRedo ErrorCode = "NOTHING_TO_REDO"
	ErrNoTree        ErrorCode = "NO_TREE"

	// IO errors
	ErrSourceRead  ErrorCode = "SOURCE_READ"
	ErrExportWrite ErrorCode = "EXPORT_WRITE"
)

// DirxError represents a structured error with code and details
type DirxError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DirxError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *DirxError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target carries the same code.
func (e *DirxError) Is(target error) bool {
	var targetErr *DirxError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DirxError with the given code and message
func New(code ErrorCode, message string) *DirxError {
	return &DirxError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DirxError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DirxError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *DirxError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DirxError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *DirxError) WithDetail(key string, value interface{}) *DirxError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dirxErr *DirxError
	if errors.As(err, &dirxErr) {
		return dirxErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DirxError
func GetErrorCode(err error) ErrorCode {
	var dirxErr *DirxError
	if errors.As(err, &dirxErr) {
		return dirxErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DirxError
func GetErrorDetails(err error) map[string]interface{} {
	var dirxErr *DirxError
	if errors.As(err, &dirxErr) {
		return dirxErr.Details
	}
	return nil
}
