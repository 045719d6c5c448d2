package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrInvalidRange
	ErrInvalidInterval
	ErrConflict
	ErrInvalidTransition
	ErrInternal
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code to an HTTP status
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrBadRequest, ErrInvalidRange, ErrInvalidInterval:
		return http.StatusBadRequest
	case ErrConflict:
		return http.StatusConflict
	case ErrInvalidTransition:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors
func NewNotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func NewBadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func NewInvalidRange(message string) *AppError {
	return &AppError{
		Code:    ErrInvalidRange,
		Message: message,
	}
}

func NewInvalidInterval(message string) *AppError {
	return &AppError{
		Code:    ErrInvalidInterval,
		Message: message,
	}
}

func NewConflict(message string) *AppError {
	return &AppError{
		Code:    ErrConflict,
		Message: message,
	}
}

func NewInvalidTransition(message string) *AppError {
	return &AppError{
		Code:    ErrInvalidTransition,
		Message: message,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// CodeOf returns the error code carried by err, or ErrInternal
// when err is not an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

func IsNotFound(err error) bool          { return IsCode(err, ErrNotFound) }
func IsInvalidRange(err error) bool      { return IsCode(err, ErrInvalidRange) }
func IsInvalidInterval(err error) bool   { return IsCode(err, ErrInvalidInterval) }
func IsConflict(err error) bool          { return IsCode(err, ErrConflict) }
func IsInvalidTransition(err error) bool { return IsCode(err, ErrInvalidTransition) }
