package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/maresia/maresia/internal/finance"
	"github.com/maresia/maresia/internal/lodging"
	"github.com/maresia/maresia/internal/reservations"
)

type fakeReservations struct {
	items []reservations.Reservation
	err   error
}

func (f fakeReservations) List(context.Context, reservations.ListFilters) ([]reservations.Reservation, error) {
	return f.items, f.err
}

type fakeAccommodations struct {
	items []lodging.Accommodation
	err   error
}

func (f fakeAccommodations) ListAccommodations(context.Context, string, lodging.ListFilters) ([]lodging.Accommodation, error) {
	return f.items, f.err
}

type fakeInvoices struct {
	payables    []finance.Invoice
	receivables []finance.Invoice
	err         error
}

func (f fakeInvoices) ListPayables(context.Context, string, finance.InvoiceFilters) ([]finance.Invoice, error) {
	return f.payables, f.err
}

func (f fakeInvoices) ListReceivables(context.Context, string, finance.InvoiceFilters) ([]finance.Invoice, error) {
	return f.receivables, f.err
}

func fixedClock(t *testing.T, value string) func() time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return func() time.Time { return parsed }
}

func TestLoadAggregatesSummary(t *testing.T) {
	svc := NewService(
		fakeReservations{items: []reservations.Reservation{
			{Status: reservations.StatusConfirmed, CheckIn: "2025-09-24", CheckOut: "2025-09-26"},
			{Status: reservations.StatusCheckedIn, CheckIn: "2025-09-22", CheckOut: "2025-09-24"},
			{Status: reservations.StatusCheckedIn, CheckIn: "2025-09-23", CheckOut: "2025-09-28"},
			{Status: reservations.StatusCanceled, CheckIn: "2025-09-24", CheckOut: "2025-09-25"},
		}},
		fakeAccommodations{items: []lodging.Accommodation{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}},
		fakeInvoices{
			payables: []finance.Invoice{{Status: finance.InvoiceOpen}, {Status: finance.InvoiceOpen}},
			receivables: []finance.Invoice{
				{Status: finance.InvoiceOpen, Amount: 300, DueDate: "2025-10-01"},
				{Status: finance.InvoiceReceived, Amount: 500, DueDate: "2025-09-10"},
				{Status: finance.InvoiceReceived, Amount: 120.50, DueDate: "2025-09-20"},
				{Status: finance.InvoiceReceived, Amount: 400, DueDate: "2025-08-15"},
				{Status: finance.InvoiceCanceled, Amount: 999, DueDate: "2025-09-05"},
			},
		},
	)
	svc.now = fixedClock(t, "2025-09-24")

	summary, err := svc.Load(context.Background(), "prop-1")
	require.NoError(t, err)

	require.Equal(t, 1, summary.ArrivalsToday)
	require.Equal(t, 1, summary.DeparturesToday)
	require.InDelta(t, 50.0, summary.OccupancyPercent, 0.0001)
	require.Equal(t, 2, summary.OpenPayables)
	require.Equal(t, 1, summary.OpenReceivables)
	require.InDelta(t, 620.50, summary.RevenueCurrent, 0.0001)
	require.InDelta(t, 400.0, summary.RevenuePrevious, 0.0001)
	require.InDelta(t, 55.125, summary.RevenueDelta, 0.0001)
}

func TestLoadEmptyProperty(t *testing.T) {
	svc := NewService(fakeReservations{}, fakeAccommodations{}, fakeInvoices{})
	svc.now = fixedClock(t, "2025-09-24")

	summary, err := svc.Load(context.Background(), "prop-1")
	require.NoError(t, err)
	require.Zero(t, summary.OccupancyPercent)
	require.Zero(t, summary.RevenueDelta)
}

func TestLoadPropagatesErrors(t *testing.T) {
	boom := errors.New("backend indisponível")
	svc := NewService(fakeReservations{err: boom}, fakeAccommodations{}, fakeInvoices{})
	svc.now = fixedClock(t, "2025-09-24")

	_, err := svc.Load(context.Background(), "prop-1")
	require.ErrorIs(t, err, boom)
}
