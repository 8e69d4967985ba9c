package api

import (
	"context"
	"net/url"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/domain"
)

type CategoryService struct {
	C *Client
}

func NewCategoryService(c *Client) *CategoryService { return &CategoryService{C: c} }

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	var out struct {
		Categories []domain.Category `json:"categories"`
	}
	err := s.C.get(ctx, "/categories", "", &out)
	return out.Categories, err
}

func (s *CategoryService) Create(ctx context.Context, token, name string) (domain.Category, error) {
	in := map[string]string{"name": name}
	var out struct {
		Category domain.Category `json:"category"`
	}
	err := s.C.post(ctx, "/categories", token, in, &out)
	return out.Category, err
}

func (s *CategoryService) Update(ctx context.Context, token string, cat domain.Category) (domain.Category, error) {
	var out struct {
		Category domain.Category `json:"category"`
	}
	err := s.C.put(ctx, "/categories/"+url.PathEscape(cat.ID), token, cat, &out)
	return out.Category, err
}

func (s *CategoryService) Delete(ctx context.Context, token, id string) error {
	return s.C.delete(ctx, "/categories/"+url.PathEscape(id), token)
}
