package apperr

import (
	"errors"
	"fmt"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AppError is the closed error type every operation in this service fails with.
// Validation errors carry the full list of field failures, never just the first.
type AppError struct {
	Code    Code         `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
	Cause   error        `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// Constructors
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string, cause error) *AppError {
	return Wrap(CodeInternal, message, cause)
}

func Validation(fields []FieldError) *AppError {
	return &AppError{Code: CodeValidation, Message: "validation failed", Fields: fields}
}

// From returns err unchanged when it already is an *AppError and wraps
// anything else as an internal error with the original cause attached.
func From(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return Internal("internal server error", err)
}
