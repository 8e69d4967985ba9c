package api

import (
	"context"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/domain"
)

type AuthService struct {
	C *Client
}

func NewAuthService(c *Client) *AuthService { return &AuthService{C: c} }

type LoginResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	in := map[string]string{"email": email, "password": password}
	var out LoginResult
	err := s.C.post(ctx, "/auth/login", "", in, &out)
	return out, err
}

// Profile re-reads the session user, used to refresh roles after hydration.
func (s *AuthService) Profile(ctx context.Context, token string) (domain.User, error) {
	var out struct {
		User domain.User `json:"user"`
	}
	err := s.C.get(ctx, "/auth/profile", token, &out)
	return out.User, err
}
