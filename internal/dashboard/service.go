package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/maresia/maresia/internal/finance"
	"github.com/maresia/maresia/internal/lodging"
	"github.com/maresia/maresia/internal/reservations"
)

// ReservationSource lists reservations for the KPI cards.
type ReservationSource interface {
	List(ctx context.Context, filters reservations.ListFilters) ([]reservations.Reservation, error)
}

// AccommodationSource lists accommodations for the occupancy card.
type AccommodationSource interface {
	ListAccommodations(ctx context.Context, propertyID string, filters lodging.ListFilters) ([]lodging.Accommodation, error)
}

// InvoiceSource lists AP/AR invoices for the finance cards.
type InvoiceSource interface {
	ListPayables(ctx context.Context, propertyID string, filters finance.InvoiceFilters) ([]finance.Invoice, error)
	ListReceivables(ctx context.Context, propertyID string, filters finance.InvoiceFilters) ([]finance.Invoice, error)
}

// Summary feeds the dashboard KPI cards.
type Summary struct {
	RevenueCurrent   float64
	RevenuePrevious  float64
	RevenueDelta     float64
	OccupancyPercent float64
	ArrivalsToday    int
	DeparturesToday  int
	OpenPayables     int
	OpenReceivables  int
}

type Service struct {
	reservations   ReservationSource
	accommodations AccommodationSource
	invoices       InvoiceSource
	now            func() time.Time
}

func NewService(res ReservationSource, acc AccommodationSource, inv InvoiceSource) *Service {
	return &Service{reservations: res, accommodations: acc, invoices: inv, now: time.Now}
}

// Load fans out the dashboard queries and aggregates them into one summary.
// Any failed query fails the whole load; the page renders an error state
// instead of partial or fabricated numbers.
func (s *Service) Load(ctx context.Context, propertyID string) (Summary, error) {
	today := s.now().Format("2006-01-02")
	monthStart := s.now().AddDate(0, 0, 1-s.now().Day()).Format("2006-01-02")
	prevStart := s.now().AddDate(0, -1, 1-s.now().Day()).Format("2006-01-02")

	var (
		summary     Summary
		reservas    []reservations.Reservation
		rooms       []lodging.Accommodation
		payables    []finance.Invoice
		receivables []finance.Invoice
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := s.reservations.List(ctx, reservations.ListFilters{})
		if err != nil {
			return err
		}
		reservas = items
		return nil
	})

	g.Go(func() error {
		items, err := s.accommodations.ListAccommodations(ctx, propertyID, lodging.ListFilters{})
		if err != nil {
			return err
		}
		rooms = items
		return nil
	})

	g.Go(func() error {
		items, err := s.invoices.ListPayables(ctx, propertyID, finance.InvoiceFilters{Status: string(finance.InvoiceOpen)})
		if err != nil {
			return err
		}
		payables = items
		return nil
	})

	g.Go(func() error {
		items, err := s.invoices.ListReceivables(ctx, propertyID, finance.InvoiceFilters{})
		if err != nil {
			return err
		}
		receivables = items
		return nil
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	occupied := 0
	for _, res := range reservas {
		switch {
		case res.CheckIn == today && res.Status == reservations.StatusConfirmed:
			summary.ArrivalsToday++
		case res.CheckOut == today && res.Status == reservations.StatusCheckedIn:
			summary.DeparturesToday++
		}
		if res.Status == reservations.StatusCheckedIn {
			occupied++
		}
	}
	if len(rooms) > 0 {
		summary.OccupancyPercent = float64(occupied) / float64(len(rooms)) * 100
	}

	summary.OpenPayables = len(payables)
	for _, invoice := range receivables {
		switch invoice.Status {
		case finance.InvoiceOpen:
			summary.OpenReceivables++
		case finance.InvoiceReceived:
			switch {
			case invoice.DueDate >= monthStart:
				summary.RevenueCurrent += invoice.Amount
			case invoice.DueDate >= prevStart:
				summary.RevenuePrevious += invoice.Amount
			}
		}
	}
	summary.RevenueDelta = RevenueDelta(summary.RevenuePrevious, summary.RevenueCurrent)

	return summary, nil
}
