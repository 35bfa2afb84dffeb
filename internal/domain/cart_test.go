package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPriceAfterQuantityChange_NoDiscount(t *testing.T) {
	// unit 100, qty 2 at full price 200: update to 5 then back to 1.
	unit := dec("100")

	price := PriceAfterQuantityChange(unit, 2, dec("200"), 5)
	if !price.Equal(dec("500")) {
		t.Fatalf("expected 500, got %s", price)
	}

	price = PriceAfterQuantityChange(unit, 5, price, 1)
	if !price.Equal(dec("100")) {
		t.Fatalf("expected 100, got %s", price)
	}
}

func TestPriceAfterQuantityChange_PreservesFlatDiscount(t *testing.T) {
	// Line added at unit 50 x 4 with a 30 discount baked in: 170.
	unit := dec("50")
	stored := dec("170")

	price := PriceAfterQuantityChange(unit, 4, stored, 10)
	if !price.Equal(dec("470")) {
		t.Fatalf("expected 470 (500 - 30), got %s", price)
	}

	// The same 30 stays flat when quantity shrinks.
	price = PriceAfterQuantityChange(unit, 10, price, 2)
	if !price.Equal(dec("70")) {
		t.Fatalf("expected 70 (100 - 30), got %s", price)
	}
}

func TestPriceAfterQuantityChange_NegativeDiscountClamped(t *testing.T) {
	// Stored price above list price (catalog price dropped): no negative
	// discount is invented, the line reprices at list.
	unit := dec("10")
	stored := dec("45")

	price := PriceAfterQuantityChange(unit, 3, stored, 6)
	if !price.Equal(dec("60")) {
		t.Fatalf("expected 60, got %s", price)
	}
}

func TestPriceAfterQuantityChange_CentPrecision(t *testing.T) {
	unit := dec("19.99")

	price := PriceAfterQuantityChange(unit, 1, dec("19.99"), 3)
	if !price.Equal(dec("59.97")) {
		t.Fatalf("expected 59.97, got %s", price)
	}
}
