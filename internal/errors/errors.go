package errors

import (
	"fmt"
)

// AppError is the structured error the web and config layers report: a stable
// code for clients, a human message, and the underlying cause for logs.
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

// Wrap adds context to an error. An AppError cause keeps its code; anything
// else is filed as internal.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Error codes surfaced to API clients.
const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeExternalService = "EXTERNAL_SERVICE_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
)

// ConfigInvalid reports a configuration value that fails load-time checks.
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}
