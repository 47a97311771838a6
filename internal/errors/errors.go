package errors

import (
	"errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, preserving its code
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err carries the given code
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Error codes for the pipeline taxonomy
const (
	CodeNotFound          = "NOT_FOUND"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeValidation        = "VALIDATION_ERROR"
	CodeRender            = "RENDER_ERROR"
	CodeCollaborator      = "COLLABORATOR_ERROR"
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeInternal          = "INTERNAL_ERROR"
)

// Common error constructors

func NotFoundf(format string, args ...interface{}) *AppError {
	return New(CodeNotFound, fmt.Sprintf(format, args...))
}

func UnsupportedFormat(format string, args ...interface{}) *AppError {
	return New(CodeUnsupportedFormat, fmt.Sprintf(format, args...))
}

func Validation(format string, args ...interface{}) *AppError {
	return New(CodeValidation, fmt.Sprintf(format, args...))
}

func Render(message string, cause error) *AppError {
	return &AppError{Code: CodeRender, Message: message, Cause: cause}
}

func Collaborator(message string, cause error) *AppError {
	return &AppError{Code: CodeCollaborator, Message: message, Cause: cause}
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}
