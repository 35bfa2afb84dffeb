package order

import (
	"context"

	"gamestore/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateDraftInput struct {
	CustomerKey string
	Total       decimal.Decimal
	Shipping    domain.ShippingDetails
}

type Repository interface {
	// CreateDraft replaces any existing draft for the customer with a new one
	// in a single transaction, so at most one draft ever exists per customer.
	CreateDraft(ctx context.Context, in CreateDraftInput) (*domain.Order, error)

	// GetDraft returns the customer's in-progress order, or ErrNotFound.
	GetDraft(ctx context.Context, customerKey string) (*domain.Order, error)

	// Finalize converts the customer's cart lines into order lines, empties
	// the cart and closes the draft, all in one transaction.
	Finalize(ctx context.Context, customerKey, orderID string) error

	// ListByCustomer returns the customer's finalized orders, newest first.
	ListByCustomer(ctx context.Context, customerKey string) ([]domain.Order, error)

	// GetByID returns one of the customer's orders with its lines.
	GetByID(ctx context.Context, customerKey, orderID string) (*domain.Order, error)
}
