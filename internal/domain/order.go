package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingDetails carries the contact fields collected at checkout.
type ShippingDetails struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}

// Order is one checkout attempt. While InProgress it is a draft that a new
// checkout submission may supersede; after finalization it is immutable.
// Total is a snapshot of the cart sum at submission time.
type Order struct {
	ID          string          `json:"id"`
	CustomerKey string          `json:"-"`
	InProgress  bool            `json:"inProgress"`
	OrderDate   time.Time       `json:"orderDate"`
	Total       decimal.Decimal `json:"total"`
	ShippingDetails
	Lines []OrderLine `json:"lines,omitempty"`
}

// OrderLine is the immutable record of a purchased cart line. Created only
// when an order is finalized, never mutated afterwards.
type OrderLine struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"orderId"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}
