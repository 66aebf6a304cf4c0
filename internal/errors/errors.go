// Package errors defines the application error kinds and their HTTP status codes.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// ErrorType represents the kind of error.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation_error"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeInternal   ErrorType = "internal_error"
)

// AppError is an error with a kind, a client-facing message and an HTTP status.
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	case e.Details != "":
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	default:
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newError(t ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{Type: t, Message: message, Code: code, Details: detail}
}

func NewValidationError(message string, details ...string) *AppError {
	return newError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

func NewNotFoundError(message string, details ...string) *AppError {
	return newError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

func NewConflictError(message string, details ...string) *AppError {
	return newError(ErrorTypeConflict, http.StatusConflict, message, details)
}

// NewInternalError wraps err; its text is only shown to clients in debug mode.
func NewInternalError(message string, err error) *AppError {
	e := newError(ErrorTypeInternal, http.StatusInternalServerError, message, nil)
	e.Err = err
	return e
}

// GetAppError extracts an AppError from err's chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func IsNotFoundError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeNotFound
}

func IsConflictError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeConflict
}

func IsValidationError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeValidation
}

// IsDuplicateError reports whether err is a unique-key violation from any supported driver.
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || // MySQL 1062
		strings.Contains(msg, "duplicate key") || // PostgreSQL 23505
		strings.Contains(msg, "UNIQUE constraint failed") // SQLite
}

// FromDB converts a repository error into an AppError. A missing record becomes
// not_found with notFoundMsg, a unique violation becomes conflict.
func FromDB(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if GetAppError(err) != nil {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError(notFoundMsg)
	}
	if IsDuplicateError(err) {
		return NewConflictError("resource already exists")
	}
	return NewInternalError("Server error", err)
}
