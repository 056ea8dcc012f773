package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestLineTotal(t *testing.T) {
	require.True(t, d(3000).Equal(LineTotal(d(1500), 2)))
	require.True(t, decimal.Zero.Equal(LineTotal(d(1500), 0)))
}

func TestSubtotal(t *testing.T) {
	items := []Item{
		{UnitPrice: d(1500), Quantity: 2},
		{UnitPrice: d(2500), Quantity: 1},
	}
	require.True(t, d(5500).Equal(Subtotal(items)))
	require.True(t, decimal.Zero.Equal(Subtotal(nil)))
}

func TestShippingCostBoundary(t *testing.T) {
	r := DefaultRates()

	require.True(t, decimal.Zero.Equal(r.ShippingCost("Karachi", d(3000))))
	require.True(t, d(200).Equal(r.ShippingCost("Karachi", d(2999))))
	require.True(t, decimal.Zero.Equal(r.ShippingCost("Lahore", d(5500))))
}

func TestGrandTotal(t *testing.T) {
	require.True(t, d(3200).Equal(GrandTotal(d(2999), d(200), decimal.NewFromInt(1))))
	require.True(t, d(5500).Equal(GrandTotal(d(5500), decimal.Zero, decimal.Zero)))
}

func TestRecomputeIsDeterministic(t *testing.T) {
	r := DefaultRates()
	items := []Item{
		{UnitPrice: d(1234), Quantity: 3},
		{UnitPrice: d(55), Quantity: 7},
	}

	sub := Subtotal(items)
	ship := r.ShippingCost("Islamabad", sub)
	total := GrandTotal(sub, ship, decimal.Zero)

	for i := 0; i < 10; i++ {
		sub2 := Subtotal(items)
		ship2 := r.ShippingCost("Islamabad", sub2)
		require.True(t, sub.Equal(sub2))
		require.True(t, ship.Equal(ship2))
		require.True(t, total.Equal(GrandTotal(sub2, ship2, decimal.Zero)))
	}
}
