// Package whatsapp builds the pre-filled confirmation deep link handed to the
// customer after checkout. No network call happens here; the customer's own
// client opens the link.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hariskhan14/bazario/internal/models"
)

// BuildConfirmationMessage renders the persisted order as the message body a
// customer sends to confirm payment. Regenerating it is idempotent.
func BuildConfirmationMessage(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi! I have placed order %s.\n\n", order.OrderNumber)
	for _, it := range order.Items {
		fmt.Fprintf(&b, "- %s (%s) x%d = Rs. %s\n", it.ProductName, it.VariantSize, it.Quantity, it.LineTotal.StringFixed(0))
	}
	fmt.Fprintf(&b, "\nSubtotal: Rs. %s\n", order.Subtotal.StringFixed(0))
	fmt.Fprintf(&b, "Shipping: Rs. %s\n", order.ShippingCost.StringFixed(0))
	fmt.Fprintf(&b, "Total: Rs. %s\n\n", order.Total.StringFixed(0))

	fmt.Fprintf(&b, "Deliver to: %s, %s", order.Address, order.City)
	if order.Area != "" {
		fmt.Fprintf(&b, ", %s", order.Area)
	}
	if order.PostalCode != "" {
		fmt.Fprintf(&b, " (%s)", order.PostalCode)
	}
	fmt.Fprintf(&b, "\nContact: %s, %s", order.CustomerName, order.CustomerPhone)

	return b.String()
}

// Link URL-encodes the message into a wa.me deep link for the given business
// number (digits only, country code included).
func Link(number string, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(message))
}

func ConfirmationLink(number string, order *models.Order) string {
	return Link(number, BuildConfirmationMessage(order))
}
