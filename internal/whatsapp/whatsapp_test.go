package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hariskhan14/bazario/internal/models"
)

func sampleOrder() *models.Order {
	return &models.Order{
		OrderNumber:   "BZR-ABC123-XYZ789",
		CustomerName:  "Ayesha Khan",
		CustomerPhone: "+923001234567",
		Address:       "House 12, Street 4",
		City:          "Karachi",
		Area:          "Clifton",
		Subtotal:      decimal.NewFromInt(5500),
		ShippingCost:  decimal.Zero,
		Total:         decimal.NewFromInt(5500),
		Items: []models.OrderItem{
			{ProductName: "Blue Mug", VariantSize: "350ml", Quantity: 2, LineTotal: decimal.NewFromInt(3000)},
			{ProductName: "Teapot", VariantSize: "1L", Quantity: 1, LineTotal: decimal.NewFromInt(2500)},
		},
	}
}

func TestBuildConfirmationMessage(t *testing.T) {
	msg := BuildConfirmationMessage(sampleOrder())

	require.Contains(t, msg, "BZR-ABC123-XYZ789")
	require.Contains(t, msg, "Blue Mug (350ml) x2 = Rs. 3000")
	require.Contains(t, msg, "Total: Rs. 5500")
	require.Contains(t, msg, "House 12, Street 4, Karachi, Clifton")
	require.Contains(t, msg, "Ayesha Khan")
}

func TestBuildConfirmationMessageIsIdempotent(t *testing.T) {
	order := sampleOrder()
	require.Equal(t, BuildConfirmationMessage(order), BuildConfirmationMessage(order))
}

func TestLinkEncodesMessage(t *testing.T) {
	link := ConfirmationLink("923009998877", sampleOrder())

	require.True(t, strings.HasPrefix(link, "https://wa.me/923009998877?text="))

	u, err := url.Parse(link)
	require.NoError(t, err)
	decoded := u.Query().Get("text")
	require.Contains(t, decoded, "BZR-ABC123-XYZ789")
	require.NotContains(t, link[len("https://wa.me/923009998877?text="):], " ")
}
