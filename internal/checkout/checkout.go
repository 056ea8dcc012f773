// Package checkout validates the raw checkout form before any persistence is
// attempted. Field-level detail stays here; the order service only sees a
// validated Input or a rejection.
package checkout

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/hariskhan14/bazario/internal/models"
)

var ErrInvalid = errors.New("invalid checkout data")

type Input struct {
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	Phone         string               `json:"phone"`
	Address       string               `json:"address"`
	City          string               `json:"city"`
	Area          string               `json:"area,omitempty"`
	PostalCode    string               `json:"postal_code,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

// Validate trims and checks the required fields. The returned Input is the
// normalized form the order transaction persists.
func Validate(in Input) (Input, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.Area = strings.TrimSpace(in.Area)
	in.PostalCode = strings.TrimSpace(in.PostalCode)

	required := map[string]string{
		"name":    in.Name,
		"email":   in.Email,
		"phone":   in.Phone,
		"address": in.Address,
		"city":    in.City,
	}
	for field, v := range required {
		if v == "" {
			return Input{}, fmt.Errorf("%w: %s is required", ErrInvalid, field)
		}
	}

	if _, err := mail.ParseAddress(in.Email); err != nil {
		return Input{}, fmt.Errorf("%w: malformed email", ErrInvalid)
	}

	if !in.PaymentMethod.Valid() {
		return Input{}, fmt.Errorf("%w: unknown payment method %q", ErrInvalid, in.PaymentMethod)
	}

	return in, nil
}
