package cart

import (
	"context"

	"gamestore/internal/domain"
	"github.com/shopspring/decimal"
)

// AddInput is the delta applied when a product is added to a cart. Price is
// the accumulated price for the added quantity, already multiplied out by the
// caller so prior discounts on an existing line are left untouched.
type AddInput struct {
	CustomerKey string
	ProductID   string
	Quantity    int
	Price       decimal.Decimal
}

type Repository interface {
	// Add creates the line for (customer, product) or increments quantity and
	// price on the existing one. The increment is atomic: concurrent adds of
	// the same product never lose an update.
	Add(ctx context.Context, in AddInput) (*domain.CartLine, error)

	// ChangeQuantity sets a line's quantity, repricing it from the product's
	// current unit price while preserving the line's accumulated discount.
	ChangeQuantity(ctx context.Context, customerKey, lineID string, quantity int) (*domain.CartLine, error)

	// Delete removes a line owned by the customer.
	Delete(ctx context.Context, customerKey, lineID string) error

	// ListByCustomer returns the customer's lines, most recently added first.
	ListByCustomer(ctx context.Context, customerKey string) ([]domain.CartLine, error)

	// Total returns the number of lines and the sum of their stored prices.
	Total(ctx context.Context, customerKey string) (int, decimal.Decimal, error)
}
