package util

import "net/http"

// AppError is a failure that maps to a specific HTTP status.
// Services return these; the handler layer turns them into the
// JSON envelope without inspecting the message.
type AppError struct {
	StatusCode int
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewValidationError reports malformed or out-of-range input (400).
func NewValidationError(message string) *AppError {
	if message == "" {
		message = "Validation failed"
	}
	return &AppError{StatusCode: http.StatusBadRequest, Message: message}
}

// NewAuthenticationError reports a credential mismatch or malformed token (401).
func NewAuthenticationError(message string) *AppError {
	if message == "" {
		message = "Authentication failed"
	}
	return &AppError{StatusCode: http.StatusUnauthorized, Message: message}
}

// NewNotFoundError reports an operation against a nonexistent record (404).
func NewNotFoundError(message string) *AppError {
	if message == "" {
		message = "Resource not found"
	}
	return &AppError{StatusCode: http.StatusNotFound, Message: message}
}
