package checkout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hariskhan14/bazario/internal/models"
)

func validInput() Input {
	return Input{
		Name:          "Ayesha Khan",
		Email:         "ayesha@example.com",
		Phone:         "+923001234567",
		Address:       "House 12, Street 4",
		City:          "Karachi",
		PaymentMethod: models.PaymentMethodWhatsApp,
	}
}

func TestValidateAcceptsCompleteInput(t *testing.T) {
	out, err := Validate(validInput())
	require.NoError(t, err)
	require.Equal(t, "Karachi", out.City)
}

func TestValidateTrimsWhitespace(t *testing.T) {
	in := validInput()
	in.Name = "  Ayesha Khan  "
	in.City = " Karachi "

	out, err := Validate(in)
	require.NoError(t, err)
	require.Equal(t, "Ayesha Khan", out.Name)
	require.Equal(t, "Karachi", out.City)
}

func TestValidateRejectsMissingRequiredFields(t *testing.T) {
	for _, mutate := range []func(*Input){
		func(in *Input) { in.Name = "" },
		func(in *Input) { in.Email = "" },
		func(in *Input) { in.Phone = "" },
		func(in *Input) { in.Address = "" },
		func(in *Input) { in.City = "  " },
	} {
		in := validInput()
		mutate(&in)
		_, err := Validate(in)
		require.ErrorIs(t, err, ErrInvalid)
	}
}

func TestValidateRejectsMalformedEmail(t *testing.T) {
	in := validInput()
	in.Email = "not-an-email"
	_, err := Validate(in)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestValidateRejectsUnknownPaymentMethod(t *testing.T) {
	in := validInput()
	in.PaymentMethod = "BITCOIN"
	_, err := Validate(in)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestValidateOptionalFieldsMayBeEmpty(t *testing.T) {
	in := validInput()
	in.Area = ""
	in.PostalCode = ""
	in.Notes = ""
	_, err := Validate(in)
	require.NoError(t, err)
}
