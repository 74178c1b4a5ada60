package errors

import "fmt"

// Coded is implemented by every error in this package and exposes a stable machine code.
type Coded interface {
	error
	Code() string
}

type baseError struct {
	code    string
	message string
}

func (e *baseError) Error() string {
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

// ValidationError represents a validation error (HTTP 400)
type ValidationError struct {
	baseError
}

func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{baseError{code: code, message: message}}
}

func NewValidationErrorf(code, format string, args ...interface{}) *ValidationError {
	return &ValidationError{baseError{code: code, message: fmt.Sprintf(format, args...)}}
}

// UnauthorizedError represents an authentication error (HTTP 401)
type UnauthorizedError struct {
	baseError
}

func NewUnauthorizedError(code, message string) *UnauthorizedError {
	return &UnauthorizedError{baseError{code: code, message: message}}
}

// NotFoundError represents a not found error (HTTP 404)
type NotFoundError struct {
	baseError
}

func NewNotFoundError(code, message string) *NotFoundError {
	return &NotFoundError{baseError{code: code, message: message}}
}

func NewNotFoundErrorf(code, format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{baseError{code: code, message: fmt.Sprintf(format, args...)}}
}

// ConflictError represents a conflict error (HTTP 409)
type ConflictError struct {
	baseError
}

func NewConflictError(code, message string) *ConflictError {
	return &ConflictError{baseError{code: code, message: message}}
}

func NewConflictErrorf(code, format string, args ...interface{}) *ConflictError {
	return &ConflictError{baseError{code: code, message: fmt.Sprintf(format, args...)}}
}

// InternalError represents an internal server error (HTTP 500)
type InternalError struct {
	baseError
}

func NewInternalError(code, message string) *InternalError {
	return &InternalError{baseError{code: code, message: message}}
}

// ServiceUnavailableError represents a service unavailable error (HTTP 503)
type ServiceUnavailableError struct {
	baseError
}

func NewServiceUnavailableError(code, message string) *ServiceUnavailableError {
	return &ServiceUnavailableError{baseError{code: code, message: message}}
}
