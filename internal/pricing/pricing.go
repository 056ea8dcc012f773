// Package pricing holds the pure money math shared by the cart summary and
// the order creation transaction. Both sides must call these functions with
// the same Rates so displayed and persisted totals never diverge.
package pricing

import "github.com/shopspring/decimal"

type Rates struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

func DefaultRates() Rates {
	return Rates{
		FreeShippingThreshold: decimal.NewFromInt(3000),
		FlatShippingFee:       decimal.NewFromInt(200),
	}
}

type Item struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

func Subtotal(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(LineTotal(it.UnitPrice, it.Quantity))
	}
	return sum
}

// ShippingCost is free at or above the threshold, a flat fee below it. The
// destination city is part of the contract for future per-city rates; today
// one pair applies everywhere.
func (r Rates) ShippingCost(city string, subtotal decimal.Decimal) decimal.Decimal {
	_ = city
	if subtotal.GreaterThanOrEqual(r.FreeShippingThreshold) {
		return decimal.Zero
	}
	return r.FlatShippingFee
}

func GrandTotal(subtotal, shippingCost, tax decimal.Decimal) decimal.Decimal {
	return subtotal.Add(shippingCost).Add(tax)
}
