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

// ErrConflict indicates a concurrent modification lost a compare-and-swap race.
var ErrConflict = errors.New("conflicting update")

// ErrInternal indicates an infrastructure failure.
var ErrInternal = errors.New("internal error")

// ErrInvalidAmount indicates a non-positive or malformed money amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInsufficientFunds indicates the source account cannot cover the requested amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrSelfTransferNotAllowed indicates source and destination accounts share an owner.
var ErrSelfTransferNotAllowed = errors.New("self transfer not allowed")

// ErrRecipientNotFound indicates the destination of a transfer does not exist. It matches ErrNotFound.
var ErrRecipientNotFound = fmt.Errorf("recipient account %w", ErrNotFound)

// ErrInvalidState indicates stored data broke an invariant, e.g. an open bill with a non-positive amount.
var ErrInvalidState = errors.New("invalid state")

// AppError carries a status code and message alongside the underlying error.
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

// NewAppError builds an AppError. Codes >= 500 also match ErrInternal.
func NewAppError(code int, message string, err error) *AppError {
	if code >= 500 && err != nil && !errors.Is(err, ErrInternal) {
		err = fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return &AppError{Code: code, Message: message, Err: err}
}
