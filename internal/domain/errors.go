package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity does not exist or is not
	// owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrInvalidQuantity indicates a non-positive cart quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrProductNotFound indicates the referenced catalog product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrNoActiveCart indicates checkout was opened on an empty cart.
	ErrNoActiveCart = errors.New("no active cart")

	// ErrNoActiveCheckout indicates no draft order exists for the customer.
	ErrNoActiveCheckout = errors.New("no active checkout")

	// ErrPaymentUnavailable indicates the payment processor could not be reached.
	ErrPaymentUnavailable = errors.New("payment provider unavailable")

	// ErrPaymentNotConfirmed indicates the payment session is unpaid or does
	// not belong to the caller's draft order.
	ErrPaymentNotConfirmed = errors.New("payment not confirmed")
)
