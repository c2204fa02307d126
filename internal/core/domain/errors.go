// Package domain defines the core data model for redislight.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a command failure with a structured error code.
// Codes have the form RL-<AREA>-<NNNN>.
type DomainError struct {
	Code    string // Error code (e.g., "RL-TYPE-4000")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// CodeOf returns the code of the first DomainError in err's chain, or
// "" if there is none.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Type Errors (TYPE)
// ============================================================================

var (
	// ErrWrongType indicates the key holds a value of the other variant.
	ErrWrongType = NewDomainError("RL-TYPE-4000", "WRONGTYPE Operation against a key holding the wrong kind of value")
)

// ============================================================================
// Command Errors (CMD)
// ============================================================================

var (
	// ErrInvalidCommand indicates the command line could not be parsed.
	ErrInvalidCommand = NewDomainError("RL-CMD-4000", "invalid command")

	// ErrUnknownCommand indicates the command name is not recognized.
	ErrUnknownCommand = NewDomainError("RL-CMD-4001", "unknown command")

	// ErrUnsupportedCommand indicates a known Redis command this store does not implement.
	ErrUnsupportedCommand = NewDomainError("RL-CMD-4002", "unsupported command")
)

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrNotInteger indicates a numeric argument could not be parsed.
	ErrNotInteger = NewDomainError("RL-ARG-4000", "value is not an integer or out of range")

	// ErrInvalidExpire indicates a negative or malformed expire time.
	ErrInvalidExpire = NewDomainError("RL-ARG-4001", "invalid expire time")
)
