package utils

import (
	"errors"
	"fmt"
)

var ErrorRecordNotFound = errors.New("record not found")

// ErrorKind classifies an AppError so transport layers can map it to a
// status code without string matching.
type ErrorKind string

const (
	ErrorKindValidation    ErrorKind = "VALIDATION"
	ErrorKindConflict      ErrorKind = "CONFLICT"
	ErrorKindNotFound      ErrorKind = "NOT_FOUND"
	ErrorKindAuthorization ErrorKind = "AUTHORIZATION"
)

// AppError is the error type every model function returns for expected
// failures. Unexpected failures (DB down, bad SQL) stay plain errors and
// surface as 500s.
type AppError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewValidationError(format string, args ...any) *AppError {
	return &AppError{Kind: ErrorKindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...any) *AppError {
	return &AppError{Kind: ErrorKindConflict, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) *AppError {
	return &AppError{Kind: ErrorKindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewAuthorizationError(format string, args ...any) *AppError {
	return &AppError{Kind: ErrorKindAuthorization, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the error's kind, or "" for errors that carry none.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
