package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one (customer, product) entry in a cart. Price is the
// accumulated price of the whole line, not the unit price: promotions applied
// when the line was added stay baked into it even if the catalog price
// changes later.
type CartLine struct {
	ID          string          `json:"id"`
	CustomerKey string          `json:"-"`
	ProductID   string          `json:"productId"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// PriceAfterQuantityChange recalculates a line's accumulated price for a new
// quantity while keeping the flat discount the line already carries. The
// discount is the gap between list price and stored price; it is preserved as
// an absolute amount across quantity edits, not as a percentage.
func PriceAfterQuantityChange(unitPrice decimal.Decimal, oldQuantity int, storedPrice decimal.Decimal, newQuantity int) decimal.Decimal {
	discount := unitPrice.Mul(decimal.NewFromInt(int64(oldQuantity))).Sub(storedPrice)
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(newQuantity))).Sub(discount)
}
