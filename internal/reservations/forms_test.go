package reservations

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validForm() Form {
	return Form{
		GuestID:         "g-1",
		AccommodationID: "a-1",
		CheckIn:         "2025-09-24",
		CheckOut:        "2025-09-26",
	}
}

func TestFormValidate(t *testing.T) {
	require.Empty(t, validForm().Validate())
}

func TestFormRejectsCheckoutBeforeCheckin(t *testing.T) {
	form := validForm()
	form.CheckIn = "2025-09-25"
	form.CheckOut = "2025-09-24"
	errs := form.Validate()
	require.Contains(t, errs, "CheckOut")
}

func TestFormAcceptsSameDayCheckout(t *testing.T) {
	form := validForm()
	form.CheckIn = "2025-09-24"
	form.CheckOut = "2025-09-24"
	require.Empty(t, form.Validate())
}

func TestFormRequiresGuestAndAccommodation(t *testing.T) {
	form := validForm()
	form.GuestID = ""
	form.AccommodationID = ""
	errs := form.Validate()
	require.Contains(t, errs, "GuestID")
	require.Contains(t, errs, "AccommodationID")
}

func TestEntryFormRejectsDiscountAbovePrice(t *testing.T) {
	form := EntryForm{
		Kind:        "product",
		Description: "Água",
		Quantity:    "2",
		UnitPrice:   "5",
		Discount:    "6",
	}
	errs := form.Validate()
	require.Contains(t, errs, "Discount")
}

func TestEntryFormInputRecomputesAmount(t *testing.T) {
	form := EntryForm{
		Kind:        "room_charge",
		Description: "Diária",
		Quantity:    "3",
		UnitPrice:   "150",
		Discount:    "30",
	}
	require.Empty(t, form.Validate())
	input, err := form.Input()
	require.NoError(t, err)
	require.Equal(t, 360.0, input.Amount)
	require.Equal(t, 120.0, input.UnitPrice-input.Discount)
}

func TestEntryFormAcceptsCommaDecimals(t *testing.T) {
	form := EntryForm{
		Kind:        "service",
		Description: "Lavanderia",
		Quantity:    "1",
		UnitPrice:   "25,50",
	}
	require.Empty(t, form.Validate())
	input, err := form.Input()
	require.NoError(t, err)
	require.Equal(t, 25.50, input.Amount)
}

func TestPaymentFormValidate(t *testing.T) {
	require.Empty(t, PaymentForm{Method: "pix", Amount: "85,50"}.Validate())
	require.Contains(t, PaymentForm{Method: "pix", Amount: "0"}.Validate(), "Amount")
	require.Contains(t, PaymentForm{Method: "boleto", Amount: "10"}.Validate(), "Method")
}
