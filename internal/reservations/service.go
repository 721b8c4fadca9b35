package reservations

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/maresia/maresia/internal/platform/api"
	"github.com/maresia/maresia/internal/query"
)

// Scope is the cache scope for reservation listings and folio details.
const Scope = "reservas"

// ListFilters narrows a reservation listing.
type ListFilters struct {
	Status string
	Guest  string
	From   string
	To     string
	Page   int
}

// Service exposes the reservation endpoints, including the folio and the
// dedicated transition actions.
type Service struct {
	api   *api.Client
	cache *query.Cache
}

func NewService(client *api.Client, cache *query.Cache) *Service {
	return &Service{api: client, cache: cache}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Reservation, error) {
	key, err := s.cache.Key(ctx, Scope, filters.Status, filters.Guest, filters.From, filters.To, strconv.Itoa(filters.Page))
	if err != nil {
		return nil, err
	}
	var items []Reservation
	err = s.cache.FetchJSON(ctx, Scope, key, &items, func(ctx context.Context) (any, error) {
		params := url.Values{}
		if filters.Status != "" {
			params.Set("status", filters.Status)
		}
		if filters.Guest != "" {
			params.Set("guest", filters.Guest)
		}
		if filters.From != "" {
			params.Set("from", filters.From)
		}
		if filters.To != "" {
			params.Set("to", filters.To)
		}
		if filters.Page > 0 {
			params.Set("page", strconv.Itoa(filters.Page))
		}
		return api.GetList[Reservation](ctx, s.api, "/reservas", params)
	})
	return items, err
}

// Get fetches a reservation with its folio.
func (s *Service) Get(ctx context.Context, id string) (Detail, error) {
	key, err := s.cache.Key(ctx, Scope, "id", id)
	if err != nil {
		return Detail{}, err
	}
	var detail Detail
	err = s.cache.FetchJSON(ctx, Scope, key, &detail, func(ctx context.Context) (any, error) {
		var out Detail
		if err := s.api.Get(ctx, "/reservas/"+id, nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	return detail, err
}

func (s *Service) Create(ctx context.Context, input Input) (Reservation, error) {
	var created Reservation
	if err := s.api.Post(ctx, "/reservas", input, &created); err != nil {
		return Reservation{}, err
	}
	return created, s.cache.Bump(ctx, Scope)
}

// CheckIn posts the check-in action. The transition is guarded client-side
// so an action buttoned in a stale tab fails fast instead of hitting the
// backend with an impossible request.
func (s *Service) CheckIn(ctx context.Context, res Reservation) error {
	return s.transition(ctx, res, StatusCheckedIn, "check-in")
}

// CheckOut posts the check-out action.
func (s *Service) CheckOut(ctx context.Context, res Reservation) error {
	return s.transition(ctx, res, StatusCheckedOut, "check-out")
}

// Cancel posts the cancel action.
func (s *Service) Cancel(ctx context.Context, res Reservation) error {
	return s.transition(ctx, res, StatusCanceled, "cancel")
}

func (s *Service) transition(ctx context.Context, res Reservation, to Status, action string) error {
	if !CanTransition(res.Status, to) {
		return fmt.Errorf("reservations: transition %s → %s not allowed", res.Status, to)
	}
	if err := s.api.Post(ctx, "/reservas/"+res.ID+"/"+action, nil, nil); err != nil {
		return err
	}
	return s.cache.Bump(ctx, Scope)
}

// AddEntry appends a folio entry.
func (s *Service) AddEntry(ctx context.Context, reservationID string, input EntryInput) error {
	if err := s.api.Post(ctx, "/reservas/"+reservationID+"/folio/entries", input, nil); err != nil {
		return err
	}
	return s.cache.Bump(ctx, Scope)
}

// UpdateEntry resubmits an edited folio entry; the stored amount has already
// been recomputed from quantity, base price and discount by the form layer.
func (s *Service) UpdateEntry(ctx context.Context, reservationID, entryID string, input EntryInput) error {
	if err := s.api.Patch(ctx, "/reservas/"+reservationID+"/folio/entries/"+entryID, input, nil); err != nil {
		return err
	}
	return s.cache.Bump(ctx, Scope)
}

// DeleteEntry removes a folio entry; callers must have confirmed explicitly.
func (s *Service) DeleteEntry(ctx context.Context, reservationID, entryID string) error {
	if err := s.api.Delete(ctx, "/reservas/"+reservationID+"/folio/entries/"+entryID); err != nil {
		return err
	}
	return s.cache.Bump(ctx, Scope)
}

// AddPayment appends a payment to the folio.
func (s *Service) AddPayment(ctx context.Context, reservationID string, input PaymentInput) error {
	if err := s.api.Post(ctx, "/reservas/"+reservationID+"/folio/payments", input, nil); err != nil {
		return err
	}
	return s.cache.Bump(ctx, Scope)
}
