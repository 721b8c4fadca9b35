package auth

import (
	"context"
	"errors"

	"github.com/maresia/maresia/internal/platform/api"
	"github.com/maresia/maresia/internal/shared"
)

// Credentials is the login payload sent to the backend.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Grant is what a successful login returns: the bearer token used on every
// subsequent call plus enough profile data to fill the header.
type Grant struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

// Service performs authentication against the backend.
type Service struct {
	api *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{api: client}
}

// Login exchanges credentials for a bearer token. Any backend rejection is
// collapsed into ErrInvalidCredentials so the form never leaks which part
// was wrong.
func (s *Service) Login(ctx context.Context, creds Credentials) (Grant, error) {
	var grant Grant
	if err := s.api.Post(ctx, "/auth/login", creds, &grant); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status < 500 {
			return Grant{}, shared.ErrInvalidCredentials
		}
		return Grant{}, err
	}
	if grant.Token == "" {
		return Grant{}, shared.ErrInvalidCredentials
	}
	return grant, nil
}
