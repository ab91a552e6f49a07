package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Catalog errors
	ErrCatalogLoad    ErrorCode = "CATALOG_LOAD"
	ErrCatalogParse   ErrorCode = "CATALOG_PARSE"
	ErrCatalogInvalid ErrorCode = "CATALOG_INVALID"

	// Value errors
	ErrTypeMismatch    ErrorCode = "TYPE_MISMATCH"
	ErrUnsupportedKind ErrorCode = "UNSUPPORTED_KIND"

	// Store errors
	ErrStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	ErrKeyCreate        ErrorCode = "KEY_CREATE"
	ErrKeyNotFound      ErrorCode = "KEY_NOT_FOUND"
	ErrValueRead        ErrorCode = "VALUE_READ"
	ErrValueWrite       ErrorCode = "VALUE_WRITE"
	ErrValueDelete      ErrorCode = "VALUE_DELETE"
)

// WardenError represents a structured error with code and details
type WardenError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *WardenError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *WardenError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *WardenError) Is(target error) bool {
	var targetErr *WardenError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new WardenError with the given code and message
func New(code ErrorCode, message string) *WardenError {
	return &WardenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new WardenError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *WardenError {
	return &WardenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a WardenError
func Wrap(err error, code ErrorCode, message string) *WardenError {
	if err == nil {
		return nil
	}
	return &WardenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *WardenError {
	if err == nil {
		return nil
	}
	return &WardenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *WardenError) WithDetail(key string, value interface{}) *WardenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var wardenErr *WardenError
	if errors.As(err, &wardenErr) {
		return wardenErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a WardenError
func GetErrorCode(err error) ErrorCode {
	var wardenErr *WardenError
	if errors.As(err, &wardenErr) {
		return wardenErr.Code
	}
	return ErrUnknown
}
