package models

import "fmt"

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeConflict           = "CONFLICT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeNotFound           = "NOT_FOUND"
	CodeForbidden          = "FORBIDDEN"
	CodeInternal           = "INTERNAL_ERROR"
)

// AppError is the error type services hand back to the HTTP layer.
type AppError struct {
	Code    string
	Message string
	Details any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewValidationError(message string, details any) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Details: details}
}

func NewConflictError(message string, err error) *AppError {
	return &AppError{Code: CodeConflict, Message: message, Err: err}
}

func NewInvalidCredentialsError() *AppError {
	return &AppError{Code: CodeInvalidCredentials, Message: "Invalid login"}
}

// NewMissingTokenError is returned when no bearer credential was presented.
func NewMissingTokenError() *AppError {
	return &AppError{Code: CodeInvalidToken, Message: "No token"}
}

func NewInvalidTokenError() *AppError {
	return &AppError{Code: CodeInvalidToken, Message: "Invalid token"}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

func NewForbiddenError() *AppError {
	return &AppError{Code: CodeForbidden, Message: "Forbidden"}
}

func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "internal error", Err: err}
}
