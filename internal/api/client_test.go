package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/api"
)

func TestListDecodesProductsAndPrices(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		require.Equal(t, "carne", r.URL.Query().Get("category"))
		w.Write([]byte(`{"products":[{
			"id":"p1","name":"Lomo Vetado","slug":"lomo-vetado",
			"variants":[{"id":"v1","sku":"LV-1","weight":1,"unit":"kg",
				"basePrice":12990,"discountPct":10,"finalPrice":11691,"stock":4,"isDefault":true}]
		}]}`))
	}))
	defer backend.Close()

	svc := api.NewProductService(api.New(backend.URL))
	products, err := svc.List(context.Background(), api.Filters{Category: "carne"})
	require.NoError(t, err)
	require.Len(t, products, 1)

	v, ok := products[0].DefaultVariant()
	require.True(t, ok)
	require.True(t, v.BasePrice.Equal(decimal.NewFromInt(12990)))
	require.True(t, v.Price().Equal(decimal.NewFromInt(11691)))
}

func TestBackendMessageSurfacesInError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "SKU duplicado"})
	}))
	defer backend.Close()

	svc := api.NewProductService(api.New(backend.URL))
	_, err := svc.List(context.Background(), api.Filters{})
	require.Error(t, err)

	var ae *api.APIError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, http.StatusConflict, ae.Status)
	require.Equal(t, "SKU duplicado", ae.Message)
	require.Equal(t, "SKU duplicado", api.Humanize(err))
}

func TestErrorWithoutBodyFallsBackToGenericMessage(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer backend.Close()

	svc := api.NewProductService(api.New(backend.URL))
	_, err := svc.List(context.Background(), api.Filters{})
	require.Error(t, err)
	require.Equal(t, api.GenericErr, api.Humanize(err))
}

func TestBearerTokenIsForwarded(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"orders": []any{}})
	}))
	defer backend.Close()

	svc := api.NewOrderService(api.New(backend.URL))
	_, err := svc.ListMine(context.Background(), "tok-123")
	require.NoError(t, err)
}

func TestFiltersKeyDistinguishesFilterSets(t *testing.T) {
	a := api.Filters{Category: "carne"}
	b := api.Filters{Category: "carne"}
	c := api.Filters{Category: "carne", Page: 2}
	require.Equal(t, a.Key(), b.Key())
	require.NotEqual(t, a.Key(), c.Key())
}
