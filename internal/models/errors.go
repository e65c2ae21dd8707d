package models

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of every input-shape violation raised by the domain types.
var ErrValidation = errors.New("validation failed")

var (
	ErrInvalidAmount      = fmt.Errorf("%w: amount must be zero or greater", ErrValidation)
	ErrInvalidCurrency    = fmt.Errorf("%w: currency must not be blank", ErrValidation)
	ErrInvalidQuantity    = fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	ErrCurrencyMismatch   = errors.New("cannot combine amounts in different currencies")
	ErrInsufficientStock  = errors.New("insufficient stock available")
	ErrProductInactive    = errors.New("product is not active")
	ErrItemNotFound       = errors.New("item not found in cart")
	ErrOrderNotModifiable = errors.New("order items can only be added while the order is pending")
	ErrInvalidRole        = fmt.Errorf("%w: role must be one of CUSTOMER, SELLER, BOTH, ADMIN", ErrValidation)
	ErrInvalidStatus      = fmt.Errorf("%w: unknown order status", ErrValidation)
)

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

type InvalidStateTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition from %s to %s", e.From, e.To)
}

type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s. Available: %d, Requested: %d", e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
