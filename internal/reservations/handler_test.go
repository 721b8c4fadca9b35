package reservations

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maresia/maresia/internal/view"
)

func TestDetailPageFolioEntryActions(t *testing.T) {
	engine, err := view.NewEngine()
	require.NoError(t, err)

	detail := Detail{
		Reservation: Reservation{
			ID:                "res-1",
			Code:              "R-001",
			GuestName:         "Ana Souza",
			AccommodationCode: "101",
			CheckIn:           "2025-09-24",
			CheckOut:          "2025-09-26",
			Status:            StatusCheckedIn,
			Channel:           "direct",
		},
		Entries: []FolioEntry{{
			ID:          "entry-1",
			Kind:        EntryRoomCharge,
			Description: "Diária",
			Quantity:    2,
			UnitPrice:   150,
			Discount:    30,
			Amount:      240,
		}},
	}

	rec := httptest.NewRecorder()
	err = engine.Render(rec, "pages/reservation_detail.html", view.TemplateData{
		Title: "Reserva R-001",
		Data: map[string]any{
			"Reservation": detail,
			"Badge":       StatusBadge(detail.Status),
			"Balance":     Balance(detail.Entries, detail.Payments),
			"CanCheckIn":  false,
			"CanCheckOut": true,
			"CanCancel":   true,
			"EntryForm":   EntryForm{},
			"PaymentForm": PaymentForm{},
		},
	})
	require.NoError(t, err)

	body := rec.Body.String()
	// Each entry row offers an edit dialog prefilled with its current
	// values and a delete form, posting to the per-entry folio routes.
	require.Contains(t, body, `action="/reservas/res-1/folio/lancamentos/entry-1"`)
	require.Contains(t, body, `action="/reservas/res-1/folio/lancamentos/entry-1/excluir"`)
	require.Contains(t, body, `name="unit_price" value="150"`)
	require.Contains(t, body, `name="discount" value="30"`)
	require.Contains(t, body, `value="room_charge" selected`)
}
