package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hariskhan14/bazario/internal/pricing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(nil, pricing.DefaultRates())
	require.NoError(t, err)
	return s
}

func mugLine(price int64) Line {
	return Line{
		ProductID:   1,
		ProductName: "Blue Mug",
		ProductSlug: "blue-mug",
		VariantID:   7,
		VariantSize: "350ml",
		VariantSKU:  "BM-350-X1",
		UnitPrice:   decimal.NewFromInt(price),
	}
}

func TestAddItemMergesDuplicateVariant(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddItem(mugLine(1800), 2))
	require.NoError(t, s.AddItem(mugLine(1800), 3))

	lines := s.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, 5, lines[0].Quantity)
	require.Equal(t, "1-7", lines[0].Key())
}

func TestAddItemDifferentVariantsStaySeparate(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddItem(mugLine(1800), 1))

	other := mugLine(2100)
	other.VariantID = 8
	other.VariantSize = "500ml"
	require.NoError(t, s.AddItem(other, 1))

	require.Len(t, s.Lines(), 2)
	require.Equal(t, 2, s.ItemCount())
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddItem(mugLine(1800), 2))

	require.NoError(t, s.UpdateQuantity("1-7", 6))
	require.Equal(t, 6, s.Lines()[0].Quantity)

	require.NoError(t, s.UpdateQuantity("1-7", 0))
	require.Empty(t, s.Lines())
}

func TestDerivedTotals(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddItem(mugLine(1500), 2))

	other := mugLine(2500)
	other.ProductID = 2
	other.ProductName = "Teapot"
	require.NoError(t, s.AddItem(other, 1))

	require.Equal(t, 3, s.ItemCount())
	require.True(t, decimal.NewFromInt(5500).Equal(s.Subtotal()))
	require.True(t, decimal.Zero.Equal(s.ShippingCost("Karachi")))
	require.True(t, decimal.NewFromInt(5500).Equal(s.Total("Karachi")))
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddItem(mugLine(1800), 2))
	require.NoError(t, s.Clear())
	require.Empty(t, s.Lines())
	require.Equal(t, 0, s.ItemCount())
}

func TestFileStorageSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	storage := NewFileStorage(dir, "bazario-cart")

	s, err := NewStore(storage, pricing.DefaultRates())
	require.NoError(t, err)
	require.NoError(t, s.AddItem(mugLine(1800), 4))

	reopened, err := NewStore(NewFileStorage(dir, "bazario-cart"), pricing.DefaultRates())
	require.NoError(t, err)
	lines := reopened.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, 4, lines[0].Quantity)
	require.Equal(t, "Blue Mug", lines[0].ProductName)
	require.True(t, decimal.NewFromInt(1800).Equal(lines[0].UnitPrice))
}

func TestFileStorageMissingFileIsEmptyCart(t *testing.T) {
	storage := NewFileStorage(t.TempDir(), "bazario-cart")
	lines, err := storage.Load()
	require.NoError(t, err)
	require.Nil(t, lines)
}
