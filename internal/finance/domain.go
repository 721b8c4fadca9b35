package finance

import (
	"math"
	"time"

	"github.com/maresia/maresia/internal/ui"
)

// InvoiceStatus is shared by payables and receivables. The backend reports
// settled receivables as "received"; both settled values map to the same
// badge variant.
type InvoiceStatus string

const (
	InvoiceOpen     InvoiceStatus = "open"
	InvoicePaid     InvoiceStatus = "paid"
	InvoiceReceived InvoiceStatus = "received"
	InvoiceCanceled InvoiceStatus = "canceled"
)

// CategoryKind splits finance categories between expense and revenue.
type CategoryKind string

const (
	KindExpense CategoryKind = "expense"
	KindRevenue CategoryKind = "revenue"
)

// Supplier is a vendor the property buys from.
type Supplier struct {
	ID        string  `json:"id"`
	LegalName string  `json:"legal_name"`
	Document  *string `json:"document"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

// SupplierInput is the create/update payload.
type SupplierInput struct {
	LegalName string  `json:"legal_name"`
	Document  *string `json:"document"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

// CashAccount holds a running balance maintained by the backend ledger.
type CashAccount struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// LedgerEntry is one movement on a cash account.
type LedgerEntry struct {
	ID            string    `json:"id"`
	CashAccountID string    `json:"cash_account_id"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Category labels invoices and ledger entries.
type Category struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Kind        CategoryKind `json:"kind"`
	Description *string      `json:"description"`
}

// Invoice is an accounts payable or receivable document.
type Invoice struct {
	ID           string        `json:"id"`
	Description  string        `json:"description"`
	Counterparty string        `json:"counterparty"`
	CategoryID   string        `json:"category_id"`
	CategoryName string        `json:"category_name"`
	Amount       float64       `json:"amount"`
	DueDate      string        `json:"due_date"`
	Status       InvoiceStatus `json:"status"`
	Payments     []Payment     `json:"payments"`
}

// Payment settles (part of) an invoice against a cash account.
type Payment struct {
	ID            string    `json:"id"`
	CashAccountID string    `json:"cash_account_id"`
	Amount        float64   `json:"amount"`
	PaidAt        time.Time `json:"paid_at"`
}

// InvoiceInput is the create payload for AP and AR invoices.
type InvoiceInput struct {
	Description  string  `json:"description"`
	Counterparty string  `json:"counterparty"`
	CategoryID   string  `json:"category_id"`
	Amount       float64 `json:"amount"`
	DueDate      string  `json:"due_date"`
}

// SettleInput posts a payment (AP) or receipt (AR).
type SettleInput struct {
	CashAccountID string  `json:"cash_account_id"`
	Amount        float64 `json:"amount"`
}

// Outstanding is the invoice amount minus settled payments, floored at zero
// display-wise by the caller.
func Outstanding(inv Invoice) float64 {
	paid := 0.0
	for _, p := range inv.Payments {
		paid += p.Amount
	}
	return round2(inv.Amount - paid)
}

// StatusBadge maps invoice status to a display badge.
func StatusBadge(status InvoiceStatus) ui.Badge {
	switch status {
	case InvoiceOpen:
		return ui.Badge{Label: "Em aberto", Variant: ui.VariantWarning}
	case InvoicePaid:
		return ui.Badge{Label: "Pago", Variant: ui.VariantSuccess}
	case InvoiceReceived:
		return ui.Badge{Label: "Recebido", Variant: ui.VariantSuccess}
	case InvoiceCanceled:
		return ui.Badge{Label: "Cancelado", Variant: ui.VariantNeutral}
	default:
		return ui.Badge{Label: string(status), Variant: ui.VariantNeutral}
	}
}

// KindBadge maps category kind to a display badge.
func KindBadge(kind CategoryKind) ui.Badge {
	if kind == KindRevenue {
		return ui.Badge{Label: "Receita", Variant: ui.VariantSuccess}
	}
	return ui.Badge{Label: "Despesa", Variant: ui.VariantDanger}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
