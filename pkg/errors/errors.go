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

	// Configuration errors
	ErrConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Environment resolution errors
	ErrInvalidEnvironment   ErrorCode = "INVALID_ENVIRONMENT"
	ErrMissingRequiredField ErrorCode = "MISSING_REQUIRED_FIELD"
	ErrSameSourceDest       ErrorCode = "SAME_SOURCE_DESTINATION"

	// Deployment errors
	ErrSourceNotFound ErrorCode = "SOURCE_NOT_FOUND"
	ErrReconcile      ErrorCode = "RECONCILE"
	ErrCopy           ErrorCode = "COPY"
	ErrCommandFailed  ErrorCode = "COMMAND_FAILED"
)

// ShipshapeError represents a structured error with code and details
type ShipshapeError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ShipshapeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ShipshapeError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ShipshapeError) Is(target error) bool {
	var targetErr *ShipshapeError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ShipshapeError with the given code and message
func New(code ErrorCode, message string) *ShipshapeError {
	return &ShipshapeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ShipshapeError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ShipshapeError {
	return &ShipshapeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ShipshapeError
func Wrap(err error, code ErrorCode, message string) *ShipshapeError {
	if err == nil {
		return nil
	}
	return &ShipshapeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ShipshapeError {
	if err == nil {
		return nil
	}
	return &ShipshapeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ShipshapeError) WithDetail(key string, value interface{}) *ShipshapeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ShipshapeError) WithDetails(details map[string]interface{}) *ShipshapeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var shipErr *ShipshapeError
	if errors.As(err, &shipErr) {
		return shipErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ShipshapeError
func GetErrorCode(err error) ErrorCode {
	var shipErr *ShipshapeError
	if errors.As(err, &shipErr) {
		return shipErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ShipshapeError
func GetErrorDetails(err error) map[string]interface{} {
	var shipErr *ShipshapeError
	if errors.As(err, &shipErr) {
		return shipErr.Details
	}
	return nil
}
