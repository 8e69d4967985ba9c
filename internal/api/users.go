package api

import (
	"context"
	"net/url"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/domain"
)

type UserService struct {
	C *Client
}

func NewUserService(c *Client) *UserService { return &UserService{C: c} }

func (s *UserService) List(ctx context.Context, token string) ([]domain.User, error) {
	var out struct {
		Users []domain.User `json:"users"`
	}
	err := s.C.get(ctx, "/admin/users", token, &out)
	return out.Users, err
}

func (s *UserService) Delete(ctx context.Context, token, id string) error {
	return s.C.delete(ctx, "/admin/users/"+url.PathEscape(id), token)
}
