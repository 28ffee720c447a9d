// Package errors provides typed errors for diffpress
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// ErrConfig indicates a configuration error
	ErrConfig ErrorType = iota
	// ErrPlatform indicates a hosting platform API error
	ErrPlatform
	// ErrValidation indicates an input validation error
	ErrValidation
	// ErrTimeout indicates a timeout occurred
	ErrTimeout
	// ErrCache indicates a cache read/write error
	ErrCache
	// ErrDiffTooLarge indicates a fetched diff exceeded the size ceiling
	ErrDiffTooLarge
)

// DiffpressError is the base error type for all diffpress errors
type DiffpressError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error returns the error message
func (e *DiffpressError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", errorTypeString(e.Type), e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", errorTypeString(e.Type), e.Message)
}

// Unwrap returns the underlying cause
func (e *DiffpressError) Unwrap() error {
	return e.Cause
}

// New creates a new DiffpressError
func New(errType ErrorType, message string, cause error) *DiffpressError {
	return &DiffpressError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context to the error
func (e *DiffpressError) WithContext(key string, value interface{}) *DiffpressError {
	e.Context[key] = value
	return e
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	var dpErr *DiffpressError
	if err == nil {
		return false
	}
	if errors.As(err, &dpErr) {
		return dpErr.Type == errType
	}
	return false
}

// IsRetryable returns true if the error is transient and retryable
func IsRetryable(err error) bool {
	var dpErr *DiffpressError
	if !errors.As(err, &dpErr) {
		return false
	}

	switch dpErr.Type {
	case ErrPlatform, ErrTimeout:
		return true
	default:
		return false
	}
}

// ExitCode maps an error to a CLI process exit code. Usage errors (config,
// validation) exit 2 so CI scripts can tell them from transient failures;
// an oversized diff gets its own code so pipelines can skip rather than fail.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var dpErr *DiffpressError
	if !errors.As(err, &dpErr) {
		return 1
	}

	switch dpErr.Type {
	case ErrConfig, ErrValidation:
		return 2
	case ErrDiffTooLarge:
		return 3
	default:
		return 1
	}
}

func errorTypeString(et ErrorType) string {
	switch et {
	case ErrConfig:
		return "CONFIG"
	case ErrPlatform:
		return "PLATFORM"
	case ErrValidation:
		return "VALIDATION"
	case ErrTimeout:
		return "TIMEOUT"
	case ErrCache:
		return "CACHE"
	case ErrDiffTooLarge:
		return "DIFF_TOO_LARGE"
	default:
		return "UNKNOWN"
	}
}

// Convenience functions for common errors

// ConfigError creates a configuration error
func ConfigError(message string, cause error) *DiffpressError {
	return New(ErrConfig, message, cause)
}

// PlatformError creates a platform error
func PlatformError(message string, cause error) *DiffpressError {
	return New(ErrPlatform, message, cause)
}

// ValidationError creates a validation error
func ValidationError(message string, cause error) *DiffpressError {
	return New(ErrValidation, message, cause)
}

// TimeoutError creates a timeout error
func TimeoutError(message string, cause error) *DiffpressError {
	return New(ErrTimeout, message, cause)
}

// CacheError creates a cache error
func CacheError(message string, cause error) *DiffpressError {
	return New(ErrCache, message, cause)
}

// DiffTooLargeError creates an oversized-diff error
func DiffTooLargeError(message string, cause error) *DiffpressError {
	return New(ErrDiffTooLarge, message, cause)
}
