package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller lacks the capability for the attempted action.
var ErrForbidden = errors.New("action forbidden")

// ErrConflict indicates the operation lost a race against a concurrent writer.
var ErrConflict = errors.New("conflicting concurrent update")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrInvalidStateTransition indicates a payable status guard was violated.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// ErrInsufficientFunds indicates the funding account balance does not cover the amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrCurrencyMismatch indicates account and document currencies differ and no exchange rate was available.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// ErrStorageUnavailable indicates a transient storage failure; the atomic unit was rolled back.
var ErrStorageUnavailable = errors.New("storage unavailable")

// AppError carries an HTTP-ish status code alongside a message and cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewStorageError wraps a storage-layer failure so callers can distinguish
// transient I/O errors from business failures.
func NewStorageError(message string, err error) *AppError {
	return &AppError{Code: 503, Message: message, Err: fmt.Errorf("%w: %w", ErrStorageUnavailable, err)}
}

// IsRetryable reports whether the caller may retry the operation.
// Precondition failures are final; only transient storage errors and lost
// races are worth retrying.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable) || errors.Is(err, ErrConflict)
}
