package reservations

import (
	"net/http"
	"strings"

	"github.com/maresia/maresia/internal/forms"
)

// Form mirrors the reservation create screen.
type Form struct {
	GuestID         string `validate:"required"`
	AccommodationID string `validate:"required"`
	CheckIn         string `validate:"required"`
	CheckOut        string `validate:"required"`
	Channel         string
}

// ParseForm binds and validates a posted reservation form. Checkout must not
// precede check-in.
func ParseForm(r *http.Request) (Form, map[string]string) {
	form := Form{
		GuestID:         strings.TrimSpace(r.PostFormValue("guest_id")),
		AccommodationID: strings.TrimSpace(r.PostFormValue("accommodation_id")),
		CheckIn:         strings.TrimSpace(r.PostFormValue("check_in")),
		CheckOut:        strings.TrimSpace(r.PostFormValue("check_out")),
		Channel:         strings.TrimSpace(r.PostFormValue("channel")),
	}
	return form, form.Validate()
}

func (f Form) Validate() map[string]string {
	errs := forms.Check(f)
	checkIn, inOK := forms.Day(f.CheckIn)
	checkOut, outOK := forms.Day(f.CheckOut)
	if f.CheckIn != "" && !inOK {
		errs["CheckIn"] = "data inválida"
	}
	if f.CheckOut != "" && !outOK {
		errs["CheckOut"] = "data inválida"
	}
	if inOK && outOK && !checkIn.IsZero() && !checkOut.IsZero() && checkOut.Before(checkIn) {
		errs["CheckOut"] = "check-out deve ser a partir do check-in"
	}
	return errs
}

func (f Form) Input() Input {
	return Input{
		GuestID:         f.GuestID,
		AccommodationID: f.AccommodationID,
		CheckIn:         f.CheckIn,
		CheckOut:        f.CheckOut,
		Channel:         forms.OptionalString(f.Channel),
	}
}

// EntryForm mirrors the add/edit folio entry dialog. The stored amount is
// always recomputed here, never trusted from the client.
type EntryForm struct {
	Kind        string `validate:"required,oneof=room_charge product service"`
	Description string `validate:"required"`
	Quantity    string `validate:"required"`
	UnitPrice   string `validate:"required"`
	Discount    string
}

// ParseEntryForm binds and validates a posted folio entry form.
func ParseEntryForm(r *http.Request) (EntryForm, map[string]string) {
	form := EntryForm{
		Kind:        strings.TrimSpace(r.PostFormValue("kind")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Quantity:    strings.TrimSpace(r.PostFormValue("quantity")),
		UnitPrice:   strings.TrimSpace(r.PostFormValue("unit_price")),
		Discount:    strings.TrimSpace(r.PostFormValue("discount")),
	}
	return form, form.Validate()
}

func (f EntryForm) Validate() map[string]string {
	errs := forms.Check(f)
	quantity, qtyOK := forms.RequiredAmount(f.Quantity)
	if f.Quantity != "" && !qtyOK {
		errs["Quantity"] = "quantidade inválida"
	} else if qtyOK && quantity <= 0 {
		errs["Quantity"] = "quantidade deve ser positiva"
	}
	unit, unitOK := forms.RequiredAmount(f.UnitPrice)
	if f.UnitPrice != "" && !unitOK {
		errs["UnitPrice"] = "preço inválido"
	} else if unitOK && unit < 0 {
		errs["UnitPrice"] = "preço não pode ser negativo"
	}
	discount, discOK := forms.Amount(f.Discount)
	if !discOK {
		errs["Discount"] = "desconto inválido"
	} else if discount != nil {
		if _, err := EffectiveUnit(unit, *discount); err != nil {
			switch err {
			case ErrNegativeDiscount:
				errs["Discount"] = "desconto não pode ser negativo"
			case ErrDiscountExceedsPrice:
				errs["Discount"] = "desconto não pode exceder o preço unitário"
			}
		}
	}
	return errs
}

// Input recomputes the entry amount from the validated fields.
func (f EntryForm) Input() (EntryInput, error) {
	quantity, _ := forms.RequiredAmount(f.Quantity)
	unit, _ := forms.RequiredAmount(f.UnitPrice)
	var discount float64
	if value, ok := forms.Amount(f.Discount); ok && value != nil {
		discount = *value
	}
	amount, err := LineTotal(unit, discount, quantity)
	if err != nil {
		return EntryInput{}, err
	}
	return EntryInput{
		Kind:        EntryKind(f.Kind),
		Description: f.Description,
		Quantity:    quantity,
		UnitPrice:   unit,
		Discount:    discount,
		Amount:      amount,
	}, nil
}

// PaymentForm mirrors the add payment dialog.
type PaymentForm struct {
	Method string `validate:"required,oneof=cash card pix transfer other"`
	Amount string `validate:"required"`
}

// ParsePaymentForm binds and validates a posted payment form.
func ParsePaymentForm(r *http.Request) (PaymentForm, map[string]string) {
	form := PaymentForm{
		Method: strings.TrimSpace(r.PostFormValue("method")),
		Amount: strings.TrimSpace(r.PostFormValue("amount")),
	}
	return form, form.Validate()
}

func (f PaymentForm) Validate() map[string]string {
	errs := forms.Check(f)
	amount, ok := forms.RequiredAmount(f.Amount)
	if f.Amount != "" && !ok {
		errs["Amount"] = "valor inválido"
	} else if ok && amount <= 0 {
		errs["Amount"] = "valor deve ser positivo"
	}
	return errs
}

func (f PaymentForm) Input() PaymentInput {
	amount, _ := forms.RequiredAmount(f.Amount)
	return PaymentInput{Method: f.Method, Amount: amount}
}
