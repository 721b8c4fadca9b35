package lodging

import (
	"context"
	"net/url"

	"github.com/maresia/maresia/internal/platform/api"
	"github.com/maresia/maresia/internal/query"
)

// Cache scopes. Amenity links live under the room type scope.
const (
	ScopeAccommodations = "quartos"
	ScopeRoomTypes      = "room-types"
	ScopeAmenities      = "amenities"
)

// ListFilters narrows an accommodation listing.
type ListFilters struct {
	Status string
	Type   string
}

// Service exposes accommodation, room type and amenity endpoints. Every call
// is scoped to the active property passed in explicitly.
type Service struct {
	api   *api.Client
	cache *query.Cache
}

func NewService(client *api.Client, cache *query.Cache) *Service {
	return &Service{api: client, cache: cache}
}

func (s *Service) ListAccommodations(ctx context.Context, propertyID string, filters ListFilters) ([]Accommodation, error) {
	key, err := s.cache.Key(ctx, ScopeAccommodations, propertyID, filters.Status, filters.Type)
	if err != nil {
		return nil, err
	}
	var items []Accommodation
	err = s.cache.FetchJSON(ctx, ScopeAccommodations, key, &items, func(ctx context.Context) (any, error) {
		params := url.Values{}
		if filters.Status != "" {
			params.Set("status", filters.Status)
		}
		if filters.Type != "" {
			params.Set("type", filters.Type)
		}
		return api.GetList[Accommodation](ctx, s.api, "/pousadas/"+propertyID+"/quartos", params)
	})
	return items, err
}

func (s *Service) GetAccommodation(ctx context.Context, id string) (Accommodation, error) {
	key, err := s.cache.Key(ctx, ScopeAccommodations, "id", id)
	if err != nil {
		return Accommodation{}, err
	}
	var acc Accommodation
	err = s.cache.FetchJSON(ctx, ScopeAccommodations, key, &acc, func(ctx context.Context) (any, error) {
		var out Accommodation
		if err := s.api.Get(ctx, "/quartos/"+id, nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	return acc, err
}

func (s *Service) CreateAccommodation(ctx context.Context, propertyID string, input AccommodationInput) (Accommodation, error) {
	var created Accommodation
	if err := s.api.Post(ctx, "/pousadas/"+propertyID+"/quartos", input, &created); err != nil {
		return Accommodation{}, err
	}
	return created, s.cache.Bump(ctx, ScopeAccommodations)
}

func (s *Service) UpdateAccommodation(ctx context.Context, id string, input AccommodationInput) error {
	if err := s.api.Patch(ctx, "/quartos/"+id, input, nil); err != nil {
		return err
	}
	return s.cache.Bump(ctx, ScopeAccommodations)
}

// SetStatus posts an operational status change (available/occupied/maintenance).
func (s *Service) SetStatus(ctx context.Context, id string, status AccommodationStatus) error {
	payload := map[string]string{"status": string(status)}
	if err := s.api.Patch(ctx, "/quartos/"+id, payload, nil); err != nil {
		return err
	}
	return s.cache.Bump(ctx, ScopeAccommodations)
}

// SetHousekeeping posts a housekeeping status change.
func (s *Service) SetHousekeeping(ctx context.Context, id string, status HousekeepingStatus) error {
	payload := map[string]string{"housekeeping_status": string(status)}
	if err := s.api.Patch(ctx, "/quartos/"+id, payload, nil); err != nil {
		return err
	}
	return s.cache.Bump(ctx, ScopeAccommodations)
}

func (s *Service) ListRoomTypes(ctx context.Context, propertyID string) ([]RoomType, error) {
	key, err := s.cache.Key(ctx, ScopeRoomTypes, propertyID)
	if err != nil {
		return nil, err
	}
	var items []RoomType
	err = s.cache.FetchJSON(ctx, ScopeRoomTypes, key, &items, func(ctx context.Context) (any, error) {
		return api.GetList[RoomType](ctx, s.api, "/pousadas/"+propertyID+"/room-types", nil)
	})
	return items, err
}

func (s *Service) GetRoomType(ctx context.Context, id string) (RoomType, error) {
	key, err := s.cache.Key(ctx, ScopeRoomTypes, "id", id)
	if err != nil {
		return RoomType{}, err
	}
	var rt RoomType
	err = s.cache.FetchJSON(ctx, ScopeRoomTypes, key, &rt, func(ctx context.Context) (any, error) {
		var out RoomType
		if err := s.api.Get(ctx, "/room-types/"+id, nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	return rt, err
}

func (s *Service) CreateRoomType(ctx context.Context, propertyID string, input RoomTypeInput) (RoomType, error) {
	var created RoomType
	if err := s.api.Post(ctx, "/pousadas/"+propertyID+"/room-types", input, &created); err != nil {
		return RoomType{}, err
	}
	return created, s.cache.Bump(ctx, ScopeRoomTypes)
}

func (s *Service) UpdateRoomType(ctx context.Context, id string, input RoomTypeInput) error {
	if err := s.api.Patch(ctx, "/room-types/"+id, input, nil); err != nil {
		return err
	}
	return s.cache.Bump(ctx, ScopeRoomTypes, ScopeAccommodations)
}

// DeleteRoomType removes a room type; the backend refuses when rooms still
// reference it and its message is surfaced to the user.
func (s *Service) DeleteRoomType(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, "/room-types/"+id); err != nil {
		return err
	}
	return s.cache.Bump(ctx, ScopeRoomTypes, ScopeAccommodations)
}

func (s *Service) ListAmenities(ctx context.Context, propertyID string) ([]Amenity, error) {
	key, err := s.cache.Key(ctx, ScopeAmenities, propertyID)
	if err != nil {
		return nil, err
	}
	var items []Amenity
	err = s.cache.FetchJSON(ctx, ScopeAmenities, key, &items, func(ctx context.Context) (any, error) {
		return api.GetList[Amenity](ctx, s.api, "/pousadas/"+propertyID+"/amenities", nil)
	})
	return items, err
}

func (s *Service) CreateAmenity(ctx context.Context, propertyID, name string) (Amenity, error) {
	var created Amenity
	payload := map[string]string{"name": name}
	if err := s.api.Post(ctx, "/pousadas/"+propertyID+"/amenities", payload, &created); err != nil {
		return Amenity{}, err
	}
	return created, s.cache.Bump(ctx, ScopeAmenities)
}

func (s *Service) DeleteAmenity(ctx context.Context, propertyID, id string) error {
	if err := s.api.Delete(ctx, "/pousadas/"+propertyID+"/amenities/"+id); err != nil {
		return err
	}
	return s.cache.Bump(ctx, ScopeAmenities, ScopeRoomTypes)
}

// LinkAmenity attaches an amenity to a room type.
func (s *Service) LinkAmenity(ctx context.Context, roomTypeID, amenityID string) error {
	payload := map[string]string{"amenity_id": amenityID}
	if err := s.api.Post(ctx, "/room-types/"+roomTypeID+"/amenities", payload, nil); err != nil {
		return err
	}
	return s.cache.Bump(ctx, ScopeRoomTypes)
}

// UnlinkAmenity detaches an amenity from a room type.
func (s *Service) UnlinkAmenity(ctx context.Context, roomTypeID, amenityID string) error {
	if err := s.api.Delete(ctx, "/room-types/"+roomTypeID+"/amenities/"+amenityID); err != nil {
		return err
	}
	return s.cache.Bump(ctx, ScopeRoomTypes)
}
