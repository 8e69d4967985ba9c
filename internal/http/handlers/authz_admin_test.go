package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/api"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/domain"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/http/handlers"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/state"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/storage"
)

func liveToken(t *testing.T) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1", "exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// seedSession persists an auth record directly through the storage adapter,
// the same blob Login writes.
func seedSession(t *testing.T, st *storage.Store, sid string, roles []string) {
	t.Helper()
	rec := map[string]any{
		"token": liveToken(t),
		"user":  domain.User{ID: "u1", Email: "admin@hacienda.cl", Roles: roles},
	}
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Set("auth:"+sid, string(b)); err != nil {
		t.Fatal(err)
	}
}

func newAdminApp(t *testing.T) (*fiber.App, *storage.Store) {
	t.Helper()
	st, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	sessions := state.NewSessions(api.NewAuthService(api.New("http://backend.invalid")), st)

	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())

	admin := app.Group("/admin", handlers.RequireAdmin(sessions))
	admin.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	return app, st
}

func TestAdminGuardAnonymousRedirectsToLogin(t *testing.T) {
	app, _ := newAdminApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("want 302 redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("want redirect to /login, got %q", loc)
	}
}

// The guard must deny exactly when the role set lacks "admin" — not the
// other way around.
func TestAdminGuardDeniesNonAdminRole(t *testing.T) {
	app, st := newAdminApp(t)
	seedSession(t, st, "sid-customer", []string{"customer"})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-customer"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("customer role must be denied, got %d", resp.StatusCode)
	}
}

func TestAdminGuardPermitsAdminRole(t *testing.T) {
	app, st := newAdminApp(t)
	seedSession(t, st, "sid-admin", []string{"customer", "admin"})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-admin"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin role must be permitted, got %d", resp.StatusCode)
	}
}

func TestAdminGuardDeniesExpiredAdminToken(t *testing.T) {
	app, st := newAdminApp(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1", "exp": time.Now().Add(-time.Minute).Unix(),
	})
	s, err := expired.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	rec := map[string]any{"token": s, "user": domain.User{ID: "u1", Roles: []string{"admin"}}}
	b, _ := json.Marshal(rec)
	if err := st.Set("auth:sid-stale", string(b)); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-stale"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode == http.StatusOK {
		t.Fatal("expired token must not pass the admin guard")
	}
}
