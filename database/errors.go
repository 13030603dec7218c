package database

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of persistence errors
type ErrorType int

const (
	// ErrorTypeStorage represents failures reported by the storage engine
	// (I/O, statement execution, malformed data)
	ErrorTypeStorage ErrorType = iota
	// ErrorTypeNotFound represents an operation on a record that does not exist
	ErrorTypeNotFound
	// ErrorTypeValidation represents a request rejected before reaching storage
	ErrorTypeValidation
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeNotFound:
		return "not found"
	case ErrorTypeValidation:
		return "validation"
	default:
		return "storage"
	}
}

// Error represents a structured error with type information
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsType checks if the error is of a specific type
func (e *Error) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

func NewStorageError(message string, cause error) *Error {
	return &Error{Type: ErrorTypeStorage, Message: message, Cause: cause}
}

func NewNotFoundError(message string) *Error {
	return &Error{Type: ErrorTypeNotFound, Message: message}
}

func NewValidationError(message string) *Error {
	return &Error{Type: ErrorTypeValidation, Message: message}
}

func isType(err error, errorType ErrorType) bool {
	var dbErr *Error
	if errors.As(err, &dbErr) {
		return dbErr.IsType(errorType)
	}
	return false
}

// IsStorageError checks if an error came from the storage engine
func IsStorageError(err error) bool {
	return isType(err, ErrorTypeStorage)
}

// IsNotFoundError checks if an error reports a missing record
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsValidationError checks if an error is validation-related
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}
