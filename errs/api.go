package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error sentinel values
var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrForbidden              = errors.New("operation not allowed")
	ErrNotFound               = errors.New("not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrConflict               = errors.New("resource conflict")
	ErrInternal               = errors.New("internal server error")
)

// Stable reason codes surfaced to callers alongside the message.
const (
	CodeAuthenticationRequired = "AUTHENTICATION_REQUIRED"
	CodeForbidden              = "FORBIDDEN"
	CodeNotFound               = "NOT_FOUND"
	CodeInvalidInput           = "INVALID_INPUT"
	CodeConflict               = "CONFLICT"
	CodeInternal               = "INTERNAL"
)

type ApiErr struct {
	StatusCode int
	Code       string
	err        error
	Field      string // Field that caused the error (for validation errors)
	Details    string // Additional details about the error
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.err.Error(), e.Details)
	}
	return e.err.Error()
}

// this function allows us to do the following:
// err := NewForbiddenError(...)
// errors.Is(err, ErrForbidden) ==> evaluates to true
func (e *ApiErr) Unwrap() error {
	return e.err
}

func NewAuthenticationRequiredError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeAuthenticationRequired,
		err:        ErrAuthenticationRequired,
	}
}

func NewForbiddenError(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		Code:       CodeForbidden,
		err:        fmt.Errorf("%w: %s", ErrForbidden, message),
	}
}

func NewNotFoundError(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		Code:       CodeNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

func NewInvalidInputError(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		Code:       CodeInvalidInput,
		err:        fmt.Errorf("%w: %s", ErrInvalidInput, message),
	}
}

func NewInvalidFieldError(field, message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		Code:       CodeInvalidInput,
		err:        fmt.Errorf("%w: %s", ErrInvalidInput, message),
		Field:      field,
	}
}

func NewConflictError(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		Code:       CodeConflict,
		err:        fmt.Errorf("%w: %s", ErrConflict, message),
	}
}

func NewInternalError(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternal,
		err:        fmt.Errorf("%w: %s", ErrInternal, message),
	}
}

func IsAuthenticationRequired(err error) bool {
	return errors.Is(err, ErrAuthenticationRequired)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}
