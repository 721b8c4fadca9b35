package reservations

import (
	"time"

	"github.com/maresia/maresia/internal/ui"
)

// Status enumerates reservation lifecycle states.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCanceled   Status = "canceled"
)

// EntryKind enumerates folio entry kinds.
type EntryKind string

const (
	EntryRoomCharge EntryKind = "room_charge"
	EntryProduct    EntryKind = "product"
	EntryService    EntryKind = "service"
)

// Reservation as listed (reserva).
type Reservation struct {
	ID                string    `json:"id"`
	Code              string    `json:"code"`
	GuestID           string    `json:"guest_id"`
	GuestName         string    `json:"guest_name"`
	AccommodationID   string    `json:"accommodation_id"`
	AccommodationCode string    `json:"accommodation_code"`
	CheckIn           string    `json:"check_in"`
	CheckOut          string    `json:"check_out"`
	Status            Status    `json:"status"`
	Channel           string    `json:"channel"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Detail is a reservation with its folio.
type Detail struct {
	Reservation
	Entries  []FolioEntry `json:"folio_entries"`
	Payments []Payment    `json:"payments"`
}

// FolioEntry is one charge on the reservation folio. Amount is the stored
// line total: quantity times the unit price net of the per-unit discount.
type FolioEntry struct {
	ID          string    `json:"id"`
	Kind        EntryKind `json:"kind"`
	Description string    `json:"description"`
	Quantity    float64   `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	Discount    float64   `json:"discount"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// Payment is a folio payment.
type Payment struct {
	ID        string    `json:"id"`
	Method    string    `json:"method"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// Input is the create payload.
type Input struct {
	GuestID         string  `json:"guest_id"`
	AccommodationID string  `json:"accommodation_id"`
	CheckIn         string  `json:"check_in"`
	CheckOut        string  `json:"check_out"`
	Channel         *string `json:"channel"`
}

// EntryInput is the add/edit folio entry payload.
type EntryInput struct {
	Kind        EntryKind `json:"kind"`
	Description string    `json:"description"`
	Quantity    float64   `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	Discount    float64   `json:"discount"`
	Amount      float64   `json:"amount"`
}

// PaymentInput is the add payment payload.
type PaymentInput struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

// CanTransition reports whether a status change is allowed. Cancellation is
// reachable from every non-terminal state; the forward path is strictly
// pending → confirmed → checked_in → checked_out.
func CanTransition(from, to Status) bool {
	switch to {
	case StatusConfirmed:
		return from == StatusPending
	case StatusCheckedIn:
		return from == StatusConfirmed
	case StatusCheckedOut:
		return from == StatusCheckedIn
	case StatusCanceled:
		return from == StatusPending || from == StatusConfirmed || from == StatusCheckedIn
	default:
		return false
	}
}

// StatusBadge maps a reservation status for both listing layouts.
func StatusBadge(status Status) ui.Badge {
	switch status {
	case StatusPending:
		return ui.Badge{Label: "Pendente", Variant: ui.VariantWarning}
	case StatusConfirmed:
		return ui.Badge{Label: "Confirmada", Variant: ui.VariantInfo}
	case StatusCheckedIn:
		return ui.Badge{Label: "Check-in", Variant: ui.VariantSuccess}
	case StatusCheckedOut:
		return ui.Badge{Label: "Check-out", Variant: ui.VariantNeutral}
	case StatusCanceled:
		return ui.Badge{Label: "Cancelada", Variant: ui.VariantDanger}
	default:
		return ui.Badge{Label: string(status), Variant: ui.VariantNeutral}
	}
}
