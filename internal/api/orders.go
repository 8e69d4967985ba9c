package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/domain"
)

type OrderService struct {
	C *Client
}

func NewOrderService(c *Client) *OrderService { return &OrderService{C: c} }

// OrderRequest is what checkout posts: the cart contents plus shipping and
// contact details. Prices are the client's variant snapshots; the backend
// recomputes and is authoritative.
type OrderRequest struct {
	Items         []domain.OrderItem  `json:"items"`
	Shipping      domain.ShippingInfo `json:"shipping"`
	PaymentMethod string              `json:"paymentMethod"`
	CustomerName  string              `json:"customerName"`
	CustomerEmail string              `json:"customerEmail"`
	ClientTotal   decimal.Decimal     `json:"clientTotal"`
	ClientRef     string              `json:"clientRef"`
}

func (s *OrderService) Create(ctx context.Context, token string, req OrderRequest) (domain.Order, error) {
	var out struct {
		Order domain.Order `json:"order"`
	}
	err := s.C.post(ctx, "/orders", token, req, &out)
	return out.Order, err
}

func (s *OrderService) Get(ctx context.Context, token, id string) (domain.Order, error) {
	var out struct {
		Order domain.Order `json:"order"`
	}
	err := s.C.get(ctx, "/orders/"+url.PathEscape(id), token, &out)
	return out.Order, err
}

func (s *OrderService) ListMine(ctx context.Context, token string) ([]domain.Order, error) {
	var out struct {
		Orders []domain.Order `json:"orders"`
	}
	err := s.C.get(ctx, "/orders", token, &out)
	return out.Orders, err
}

func (s *OrderService) ListAll(ctx context.Context, token string, limit int) ([]domain.Order, error) {
	path := "/admin/orders"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out struct {
		Orders []domain.Order `json:"orders"`
	}
	err := s.C.get(ctx, path, token, &out)
	return out.Orders, err
}

func (s *OrderService) UpdateStatus(ctx context.Context, token, id, status string) (domain.Order, error) {
	in := map[string]string{"status": status}
	var out struct {
		Order domain.Order `json:"order"`
	}
	err := s.C.put(ctx, "/admin/orders/"+url.PathEscape(id)+"/status", token, in, &out)
	return out.Order, err
}
