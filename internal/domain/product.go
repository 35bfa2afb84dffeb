package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a read-only catalog item. The catalog itself is maintained
// elsewhere; the storefront only looks products up for pricing.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"createdAt"`
}
