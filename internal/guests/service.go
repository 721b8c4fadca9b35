package guests

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/maresia/maresia/internal/platform/api"
	"github.com/maresia/maresia/internal/query"
)

// Scope is the cache scope for guest listings and details.
const Scope = "hospedes"

// ListFilters narrows a guest listing.
type ListFilters struct {
	Search string
	Page   int
}

// Service exposes the guest endpoints of the backend.
type Service struct {
	api   *api.Client
	cache *query.Cache
}

func NewService(client *api.Client, cache *query.Cache) *Service {
	return &Service{api: client, cache: cache}
}

// List fetches guests. The search term is passed through to the backend and,
// because older backend versions ignore it, also applied client-side as a
// substring match over the searchable fields.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Guest, error) {
	key, err := s.cache.Key(ctx, Scope, filters.Search, strconv.Itoa(filters.Page))
	if err != nil {
		return nil, err
	}
	var guests []Guest
	err = s.cache.FetchJSON(ctx, Scope, key, &guests, func(ctx context.Context) (any, error) {
		params := url.Values{}
		if filters.Search != "" {
			params.Set("search", filters.Search)
		}
		if filters.Page > 0 {
			params.Set("page", strconv.Itoa(filters.Page))
		}
		items, err := api.GetList[Guest](ctx, s.api, "/hospedes", params)
		if err != nil {
			return nil, err
		}
		return filterBySearch(items, filters.Search), nil
	})
	if err != nil {
		return nil, err
	}
	return guests, nil
}

// Get fetches one guest by id.
func (s *Service) Get(ctx context.Context, id string) (Guest, error) {
	key, err := s.cache.Key(ctx, Scope, "id", id)
	if err != nil {
		return Guest{}, err
	}
	var guest Guest
	err = s.cache.FetchJSON(ctx, Scope, key, &guest, func(ctx context.Context) (any, error) {
		var out Guest
		if err := s.api.Get(ctx, "/hospedes/"+id, nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	return guest, err
}

// Create registers a new guest and invalidates guest listings.
func (s *Service) Create(ctx context.Context, input Input) (Guest, error) {
	var created Guest
	if err := s.api.Post(ctx, "/hospedes", input, &created); err != nil {
		return Guest{}, err
	}
	if err := s.cache.Bump(ctx, Scope); err != nil {
		return created, fmt.Errorf("guests: bump cache: %w", err)
	}
	return created, nil
}

// Update edits an existing guest.
func (s *Service) Update(ctx context.Context, id string, input Input) error {
	if err := s.api.Patch(ctx, "/hospedes/"+id, input, nil); err != nil {
		return err
	}
	return s.cache.Bump(ctx, Scope)
}

// SetBlacklist toggles the blacklist flag.
func (s *Service) SetBlacklist(ctx context.Context, id string, blacklisted bool) error {
	payload := map[string]bool{"blacklisted": blacklisted}
	if err := s.api.Patch(ctx, "/hospedes/"+id, payload, nil); err != nil {
		return err
	}
	return s.cache.Bump(ctx, Scope)
}

func filterBySearch(items []Guest, search string) []Guest {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return items
	}
	filtered := make([]Guest, 0, len(items))
	for _, guest := range items {
		if strings.Contains(strings.ToLower(guest.SearchText()), term) {
			filtered = append(filtered, guest)
		}
	}
	return filtered
}
