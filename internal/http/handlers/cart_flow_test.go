package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/api"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/domain"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/http/handlers"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/state"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/storage"
)

func productBackend(t *testing.T) *httptest.Server {
	t.Helper()
	lomo := domain.Product{
		ID: "prod-lomo", Name: "Lomo Vetado", Slug: "lomo-vetado", Active: true,
		Variants: []domain.Variant{{
			ID: "var-1kg", SKU: "LV-1", Unit: "kg", Stock: 5, IsDefault: true,
		}},
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/lomo-vetado":
			json.NewEncoder(w).Encode(map[string]any{"product": lomo})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "Producto no encontrado"})
		}
	}))
}

func newCartApp(t *testing.T, backendURL string) *fiber.App {
	t.Helper()
	st, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	products := api.NewProductService(api.New(backendURL))
	h := &handlers.CartHandler{Carts: state.NewCartStore(st), Products: products}

	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Get("/carrito", h.View)
	app.Post("/carrito", h.Add)
	app.Post("/carrito/eliminar", h.Remove)
	return app
}

func postForm(path, sid string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	return req
}

func TestCartAddAndViewThroughHandlers(t *testing.T) {
	backend := productBackend(t)
	defer backend.Close()
	app := newCartApp(t, backend.URL)

	form := url.Values{"slug": {"lomo-vetado"}, "variantId": {"var-1kg"}, "qty": {"2"}}
	resp, err := app.Test(postForm("/carrito", "sid-1", form))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("add should redirect to the cart, got %d", resp.StatusCode)
	}

	// same variant again: one line, quantity 3
	form.Set("qty", "1")
	if _, err := app.Test(postForm("/carrito", "sid-1", form)); err != nil {
		t.Fatal(err)
	}

	view := httptest.NewRequest("GET", "/carrito", nil)
	view.AddCookie(&http.Cookie{Name: "sid", Value: "sid-1"})
	resp, err = app.Test(view)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("view: got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Lomo Vetado") {
		t.Fatal("cart view should list the added product")
	}
	if !strings.Contains(string(body), "Tu carro (3)") {
		t.Fatalf("cart should hold one line with quantity 3, body:\n%s", body)
	}
}

func TestCartAddUnknownProductRenders404(t *testing.T) {
	backend := productBackend(t)
	defer backend.Close()
	app := newCartApp(t, backend.URL)

	form := url.Values{"slug": {"no-existe"}, "qty": {"1"}}
	resp, err := app.Test(postForm("/carrito", "sid-1", form))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
}

func TestCartsAreIsolatedPerSession(t *testing.T) {
	backend := productBackend(t)
	defer backend.Close()
	app := newCartApp(t, backend.URL)

	form := url.Values{"slug": {"lomo-vetado"}, "variantId": {"var-1kg"}, "qty": {"2"}}
	if _, err := app.Test(postForm("/carrito", "sid-a", form)); err != nil {
		t.Fatal(err)
	}

	view := httptest.NewRequest("GET", "/carrito", nil)
	view.AddCookie(&http.Cookie{Name: "sid", Value: "sid-b"})
	resp, err := app.Test(view)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Tu carro (0)") {
		t.Fatal("a different session must see an empty cart")
	}
}
