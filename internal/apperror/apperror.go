package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation error")
	ErrConflict          = errors.New("conflict")
	ErrForbidden         = errors.New("forbidden")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStorage           = errors.New("storage unavailable")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Unauthorized covers failed credential checks and missing sessions.
// The message is intentionally generic — never reveal whether the
// username or the password was the wrong half.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// InsufficientStock is returned when a sale asks for more units than
// the product has. The failed operation leaves all state unchanged.
func InsufficientStock(productName string, stock, requested int) *AppError {
	return &AppError{
		Err:     ErrInsufficientStock,
		Message: fmt.Sprintf("insufficient stock for %s: have %d, requested %d", productName, stock, requested),
	}
}

// StorageUnavailable wraps failures of the persistence medium itself
// (file missing, disk full, corrupt payload). Surfaced to the user as
// a fatal notice rather than swallowed.
func StorageUnavailable(err error) *AppError {
	return &AppError{
		Err:     ErrStorage,
		Message: fmt.Sprintf("storage unavailable: %v", err),
	}
}
