package utils

import (
	"errors"
	"fmt"
)

// Error codes for request-scoped failures. Every failure the engine surfaces
// to a caller belongs to one of these kinds; none is fatal to the process.
const (
	CodeNotFound   = "notFound"
	CodeValidation = "validation"
	CodeConflict   = "conflict"
	CodeForbidden  = "forbidden"
)

// AppError is a typed, recoverable service error carrying enough detail for
// the caller to act on (which resource, what time).
type AppError struct {
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFound(format string, args ...any) error {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewValidation(format string, args ...any) error {
	return &AppError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NewConflict(format string, args ...any) error {
	return &AppError{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

func NewForbidden(format string, args ...any) error {
	return &AppError{Code: CodeForbidden, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the error code, or "" for untyped errors.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
