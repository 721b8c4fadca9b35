package settings

import (
	"context"

	"github.com/maresia/maresia/internal/platform/api"
	"github.com/maresia/maresia/internal/query"
)

// Scope caches the property listing itself.
const Scope = "pousadas"

// Property is a pousada the logged-in user can operate.
type Property struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	TimeZone string `json:"time_zone"`
	City     string `json:"city"`
}

// Configs holds per-property operational settings.
type Configs struct {
	CheckInHour    string  `json:"check_in_hour"`
	CheckOutHour   string  `json:"check_out_hour"`
	Currency       string  `json:"currency"`
	DailyRateRound bool    `json:"daily_rate_round"`
	CityTaxPercent float64 `json:"city_tax_percent"`
}

// Profile is the logged-in user as reported by the backend.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PasswordInput is the password change payload.
type PasswordInput struct {
	Current string `json:"current_password"`
	New     string `json:"new_password"`
}

// Service exposes property, configuration and profile endpoints.
type Service struct {
	api   *api.Client
	cache *query.Cache
}

func NewService(client *api.Client, cache *query.Cache) *Service {
	return &Service{api: client, cache: cache}
}

func (s *Service) ListProperties(ctx context.Context) ([]Property, error) {
	key, err := s.cache.Key(ctx, Scope)
	if err != nil {
		return nil, err
	}
	var items []Property
	err = s.cache.FetchJSON(ctx, Scope, key, &items, func(ctx context.Context) (any, error) {
		return api.GetList[Property](ctx, s.api, "/pousadas", nil)
	})
	return items, err
}

func (s *Service) GetConfigs(ctx context.Context, propertyID string) (Configs, error) {
	var configs Configs
	err := s.api.Get(ctx, "/pousadas/"+propertyID+"/configs", nil, &configs)
	return configs, err
}

func (s *Service) UpdateConfigs(ctx context.Context, propertyID string, configs Configs) error {
	return s.api.Patch(ctx, "/pousadas/"+propertyID+"/configs", configs, nil)
}

func (s *Service) Me(ctx context.Context) (Profile, error) {
	var profile Profile
	err := s.api.Get(ctx, "/me", nil, &profile)
	return profile, err
}

func (s *Service) UpdatePassword(ctx context.Context, input PasswordInput) error {
	return s.api.Post(ctx, "/me/password", input, nil)
}

// SwitchProperty invalidates every property-scoped cache so nothing listed
// under the previous pousada leaks into the next one.
func (s *Service) SwitchProperty(ctx context.Context, scopes ...string) error {
	return s.cache.Bump(ctx, scopes...)
}
