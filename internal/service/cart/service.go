package cart

import (
	"context"
	"errors"

	"gamestore/internal/domain"
	cartrepo "gamestore/internal/repository/cart"
	"github.com/shopspring/decimal"
)

type cartRepo interface {
	Add(ctx context.Context, in cartrepo.AddInput) (*domain.CartLine, error)
	ChangeQuantity(ctx context.Context, customerKey, lineID string, quantity int) (*domain.CartLine, error)
	Delete(ctx context.Context, customerKey, lineID string) error
	ListByCustomer(ctx context.Context, customerKey string) ([]domain.CartLine, error)
	Total(ctx context.Context, customerKey string) (int, decimal.Decimal, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// Service owns the cart-line ledger for each customer.
type Service struct {
	repo     cartRepo
	products productRepo
}

func New(repo cartRepo, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

// Add puts quantity units of a product into the customer's cart. Adding a
// product already in the cart increments both quantity and accumulated price
// by the delta, leaving any discount on the existing line intact.
func (s *Service) Add(ctx context.Context, customerKey, productID string, quantity int) (*domain.CartLine, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return s.repo.Add(ctx, cartrepo.AddInput{
		CustomerKey: customerKey,
		ProductID:   product.ID,
		Quantity:    quantity,
		Price:       product.Price.Mul(decimal.NewFromInt(int64(quantity))),
	})
}

// Update sets a line's quantity, preserving the flat discount the line
// already carries.
func (s *Service) Update(ctx context.Context, customerKey, lineID string, quantity int) (*domain.CartLine, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	return s.repo.ChangeQuantity(ctx, customerKey, lineID, quantity)
}

// Remove deletes a line from the customer's cart.
func (s *Service) Remove(ctx context.Context, customerKey, lineID string) error {
	return s.repo.Delete(ctx, customerKey, lineID)
}

// List returns the customer's cart lines, most recently added first, together
// with the cart total.
func (s *Service) List(ctx context.Context, customerKey string) ([]domain.CartLine, decimal.Decimal, error) {
	lines, err := s.repo.ListByCustomer(ctx, customerKey)
	if err != nil {
		return nil, decimal.Zero, err
	}
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Price)
	}
	return lines, total, nil
}
