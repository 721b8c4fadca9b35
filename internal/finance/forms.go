package finance

import (
	"net/http"
	"strings"

	"github.com/maresia/maresia/internal/forms"
)

// SupplierForm mirrors the supplier create/edit dialog.
type SupplierForm struct {
	LegalName string `validate:"required"`
	Document  string
	Email     string `validate:"omitempty,email"`
	Phone     string
}

func ParseSupplierForm(r *http.Request) (SupplierForm, map[string]string) {
	form := SupplierForm{
		LegalName: strings.TrimSpace(r.PostFormValue("legal_name")),
		Document:  strings.TrimSpace(r.PostFormValue("document")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Phone:     strings.TrimSpace(r.PostFormValue("phone")),
	}
	return form, forms.Check(form)
}

func (f SupplierForm) Input() SupplierInput {
	return SupplierInput{
		LegalName: f.LegalName,
		Document:  forms.OptionalString(f.Document),
		Email:     forms.OptionalString(f.Email),
		Phone:     forms.OptionalString(f.Phone),
	}
}

// InvoiceForm mirrors the AP/AR invoice create dialog.
type InvoiceForm struct {
	Description  string `validate:"required"`
	Counterparty string `validate:"required"`
	CategoryID   string `validate:"required"`
	Amount       string `validate:"required"`
	DueDate      string `validate:"required"`
}

func ParseInvoiceForm(r *http.Request) (InvoiceForm, map[string]string) {
	form := InvoiceForm{
		Description:  strings.TrimSpace(r.PostFormValue("description")),
		Counterparty: strings.TrimSpace(r.PostFormValue("counterparty")),
		CategoryID:   strings.TrimSpace(r.PostFormValue("category_id")),
		Amount:       strings.TrimSpace(r.PostFormValue("amount")),
		DueDate:      strings.TrimSpace(r.PostFormValue("due_date")),
	}
	return form, form.Validate()
}

func (f InvoiceForm) Validate() map[string]string {
	errs := forms.Check(f)
	if amount, ok := forms.RequiredAmount(f.Amount); f.Amount != "" && !ok {
		errs["Amount"] = "valor inválido"
	} else if ok && amount <= 0 {
		errs["Amount"] = "valor deve ser maior que zero"
	}
	if f.DueDate != "" {
		if _, ok := forms.Day(f.DueDate); !ok {
			errs["DueDate"] = "data inválida"
		}
	}
	return errs
}

func (f InvoiceForm) Input() InvoiceInput {
	amount, _ := forms.RequiredAmount(f.Amount)
	return InvoiceInput{
		Description:  f.Description,
		Counterparty: f.Counterparty,
		CategoryID:   f.CategoryID,
		Amount:       amount,
		DueDate:      f.DueDate,
	}
}

// SettleForm mirrors the pay/receive dialog.
type SettleForm struct {
	CashAccountID string `validate:"required"`
	Amount        string `validate:"required"`
}

func ParseSettleForm(r *http.Request) (SettleForm, map[string]string) {
	form := SettleForm{
		CashAccountID: strings.TrimSpace(r.PostFormValue("cash_account_id")),
		Amount:        strings.TrimSpace(r.PostFormValue("amount")),
	}
	return form, form.Validate()
}

func (f SettleForm) Validate() map[string]string {
	errs := forms.Check(f)
	if amount, ok := forms.RequiredAmount(f.Amount); f.Amount != "" && !ok {
		errs["Amount"] = "valor inválido"
	} else if ok && amount <= 0 {
		errs["Amount"] = "valor deve ser maior que zero"
	}
	return errs
}

func (f SettleForm) Input() SettleInput {
	amount, _ := forms.RequiredAmount(f.Amount)
	return SettleInput{CashAccountID: f.CashAccountID, Amount: amount}
}

// CategoryForm mirrors the finance category dialog.
type CategoryForm struct {
	Name        string `validate:"required"`
	Kind        string `validate:"required,oneof=expense revenue"`
	Description string
}

func ParseCategoryForm(r *http.Request) (CategoryForm, map[string]string) {
	form := CategoryForm{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Kind:        strings.TrimSpace(r.PostFormValue("kind")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
	}
	return form, forms.Check(form)
}

func (f CategoryForm) Category() Category {
	return Category{
		Name:        f.Name,
		Kind:        CategoryKind(f.Kind),
		Description: forms.OptionalString(f.Description),
	}
}
