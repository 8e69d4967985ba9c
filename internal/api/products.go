package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/domain"
)

type ProductService struct {
	C *Client
}

func NewProductService(c *Client) *ProductService { return &ProductService{C: c} }

// Filters narrows a product listing. The zero value means "everything".
type Filters struct {
	Category string
	Query    string
	Page     int
	PageSize int
}

// Key is the coalescing identity for a filter set: two Fetch calls with equal
// keys while one is outstanding share a single backend request.
func (f Filters) Key() string {
	return strings.Join([]string{
		f.Category, f.Query, strconv.Itoa(f.Page), strconv.Itoa(f.PageSize),
	}, "|")
}

func (f Filters) query() string {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(f.PageSize))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (s *ProductService) List(ctx context.Context, f Filters) ([]domain.Product, error) {
	var out struct {
		Products []domain.Product `json:"products"`
	}
	if err := s.C.get(ctx, "/products"+f.query(), "", &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (s *ProductService) Get(ctx context.Context, slug string) (domain.Product, error) {
	var out struct {
		Product domain.Product `json:"product"`
	}
	err := s.C.get(ctx, "/products/"+url.PathEscape(slug), "", &out)
	return out.Product, err
}

// Admin CRUD. All writes carry the caller's bearer token; the backend does
// its own role check on top of our route guard.

func (s *ProductService) Create(ctx context.Context, token string, p domain.Product) (domain.Product, error) {
	var out struct {
		Product domain.Product `json:"product"`
	}
	err := s.C.post(ctx, "/products", token, p, &out)
	return out.Product, err
}

func (s *ProductService) Update(ctx context.Context, token string, p domain.Product) (domain.Product, error) {
	var out struct {
		Product domain.Product `json:"product"`
	}
	err := s.C.put(ctx, "/products/"+url.PathEscape(p.ID), token, p, &out)
	return out.Product, err
}

func (s *ProductService) Delete(ctx context.Context, token, id string) error {
	return s.C.delete(ctx, "/products/"+url.PathEscape(id), token)
}
