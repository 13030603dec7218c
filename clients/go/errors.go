package conndeskgo

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	// ErrorTypeUnknown represents an unknown error
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeNetwork represents network-related errors
	ErrorTypeNetwork
	// ErrorTypeNotFound represents a command on a connection that does not exist
	ErrorTypeNotFound
	// ErrorTypeValidation represents a request the server rejected as invalid
	ErrorTypeValidation
	// ErrorTypeStorage represents a failure of the server's database
	ErrorTypeStorage
)

// Error represents a structured error with type information
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
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

// NewNetworkError creates a network-related error
func NewNetworkError(message string, cause error) *Error {
	return &Error{
		Type:    ErrorTypeNetwork,
		Message: message,
		Cause:   cause,
	}
}

func isType(err error, errorType ErrorType) bool {
	var cErr *Error
	if errors.As(err, &cErr) {
		return cErr.IsType(errorType)
	}
	return false
}

// IsNetworkError checks if an error is network-related
func IsNetworkError(err error) bool {
	return isType(err, ErrorTypeNetwork)
}

// IsNotFoundError checks if the server reported a missing connection
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsValidationError checks if the server rejected the request as invalid
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsStorageError checks if the server's database failed
func IsStorageError(err error) bool {
	return isType(err, ErrorTypeStorage)
}

// WrapHTTPError turns a non-200 response into an Error. The server sends the
// error string as the plain text body.
func WrapHTTPError(resp *http.Response) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	message := strings.TrimSpace(string(body))
	if message == "" {
		message = resp.Status
	}

	errorType := ErrorTypeUnknown
	switch resp.StatusCode {
	case http.StatusBadRequest:
		errorType = ErrorTypeValidation
	case http.StatusNotFound:
		errorType = ErrorTypeNotFound
	case http.StatusInternalServerError:
		errorType = ErrorTypeStorage
	}
	return &Error{
		Type:       errorType,
		Message:    message,
		StatusCode: resp.StatusCode,
	}
}
