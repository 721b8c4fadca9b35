package guests

import (
	"net/http"
	"strings"

	"github.com/maresia/maresia/internal/forms"
)

// Form mirrors the guest create/edit screen.
type Form struct {
	FullName     string `validate:"required"`
	Email        string `validate:"omitempty,email"`
	Phone        string
	DocumentType string `validate:"omitempty,oneof=cpf rg passport other"`
	DocumentID   string
	BirthDate    string
	Street       string
	Number       string
	Complement   string
	District     string
	City         string
	State        string
	Zip          string
	Country      string
	Notes        string
	Blacklisted  bool
}

// ParseForm binds and validates the posted guest form. CPF check digits are
// enforced only when the document type is cpf; any other type accepts the
// document id as-is.
func ParseForm(r *http.Request) (Form, map[string]string) {
	form := Form{
		FullName:     strings.TrimSpace(r.PostFormValue("full_name")),
		Email:        strings.TrimSpace(r.PostFormValue("email")),
		Phone:        strings.TrimSpace(r.PostFormValue("phone")),
		DocumentType: strings.TrimSpace(r.PostFormValue("document_type")),
		DocumentID:   strings.TrimSpace(r.PostFormValue("document_id")),
		BirthDate:    strings.TrimSpace(r.PostFormValue("birth_date")),
		Street:       strings.TrimSpace(r.PostFormValue("street")),
		Number:       strings.TrimSpace(r.PostFormValue("number")),
		Complement:   strings.TrimSpace(r.PostFormValue("complement")),
		District:     strings.TrimSpace(r.PostFormValue("district")),
		City:         strings.TrimSpace(r.PostFormValue("city")),
		State:        strings.TrimSpace(r.PostFormValue("state")),
		Zip:          strings.TrimSpace(r.PostFormValue("zip")),
		Country:      strings.TrimSpace(r.PostFormValue("country")),
		Notes:        strings.TrimSpace(r.PostFormValue("notes")),
		Blacklisted:  r.PostFormValue("blacklisted") == "on",
	}
	errs := form.Validate()
	return form, errs
}

// Validate runs the schema checks and the cross-field document refinement.
func (f Form) Validate() map[string]string {
	errs := forms.Check(f)
	if f.DocumentType == "cpf" && !forms.ValidCPF(f.DocumentID) {
		errs["DocumentID"] = "CPF inválido"
	}
	if f.BirthDate != "" {
		if _, ok := forms.Day(f.BirthDate); !ok {
			errs["BirthDate"] = "data inválida"
		}
	}
	return errs
}

// Input maps the validated form into the service payload.
func (f Form) Input() Input {
	return Input{
		FullName:     f.FullName,
		Email:        forms.OptionalString(f.Email),
		Phone:        forms.OptionalString(f.Phone),
		DocumentType: forms.OptionalString(f.DocumentType),
		DocumentID:   forms.OptionalString(f.DocumentID),
		BirthDate:    forms.OptionalString(f.BirthDate),
		Address: Address{
			Street:     f.Street,
			Number:     f.Number,
			Complement: f.Complement,
			District:   f.District,
			City:       f.City,
			State:      f.State,
			Zip:        f.Zip,
			Country:    f.Country,
		},
		Notes:       forms.OptionalString(f.Notes),
		Blacklisted: f.Blacklisted,
	}
}
