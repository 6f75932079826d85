package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrTransient indicates a storage or connectivity failure; the operation is safe to retry.
var ErrTransient = errors.New("transient storage error")

// ErrConsistency indicates an internal invariant check failed. It is fatal to
// the operation and must never be silently corrected.
var ErrConsistency = errors.New("consistency violation")

// AppError wraps lower-level failures with an HTTP-ish status code and a message.
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

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// InsufficientStockError reports a sale line that would drive stock negative.
// It names the offending product and the requested vs. available quantity so
// the caller can render an actionable message.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (%s): requested %d, available %d",
		e.ProductName, e.ProductID, e.Requested, e.Available)
}

// ExceedsBalanceError reports a payment larger than the customer's outstanding balance.
type ExceedsBalanceError struct {
	CustomerID  string
	Requested   decimal.Decimal
	Outstanding decimal.Decimal
}

func (e *ExceedsBalanceError) Error() string {
	return fmt.Sprintf("payment of %s exceeds outstanding balance %s for customer %s",
		e.Requested.StringFixed(2), e.Outstanding.StringFixed(2), e.CustomerID)
}
