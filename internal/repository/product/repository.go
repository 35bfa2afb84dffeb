package product

import (
	"context"

	"gamestore/internal/domain"
)

// Repository is the read-only catalog lookup consumed by the storefront.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}
