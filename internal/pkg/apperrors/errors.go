package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Skill record errors
var (
	ErrSkillRecordNotFound = fmt.Errorf("skill record not found: %w", ErrResourceNotFound)
	ErrInvalidStudentID    = errors.New("student ID must be exactly 6 digits")
	ErrFullNameRequired    = errors.New("full name is required")
	ErrInvalidAttendance   = errors.New("attendance number must be numeric")
)

// Store and notification errors
var (
	// ErrStoreFailure marks a failed store transaction. The write was rolled back.
	ErrStoreFailure = errors.New("store operation failed")
	// ErrNotificationFailed marks an email send failure. Only ever logged.
	ErrNotificationFailed = errors.New("notification failed")
)

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewStoreError wraps a repository failure so callers can classify it with errors.Is.
func NewStoreError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreFailure, op, err)
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// ValidationError collects per-field input problems. It unwraps to
// ErrValidationFailed and to every field cause.
type ValidationError struct {
	Fields map[string]error
}

// NewValidationError creates an empty ValidationError.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]error)}
}

// Add records a problem for field. The first problem per field wins.
func (e *ValidationError) Add(field string, cause error) {
	if _, exists := e.Fields[field]; exists {
		return
	}
	e.Fields[field] = cause
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Error implements error interface
func (e *ValidationError) Error() string {
	names := e.fieldNames()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name].Error())
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap exposes the sentinel and the field causes to errors.Is.
func (e *ValidationError) Unwrap() []error {
	errs := []error{ErrValidationFailed}
	for _, name := range e.fieldNames() {
		errs = append(errs, e.Fields[name])
	}
	return errs
}

// Details returns field -> message, suitable for an API response.
func (e *ValidationError) Details() map[string]string {
	details := make(map[string]string, len(e.Fields))
	for field, cause := range e.Fields {
		details[field] = cause.Error()
	}
	return details
}

func (e *ValidationError) fieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
