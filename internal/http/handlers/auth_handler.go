package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/api"
	applog "github.com/clynova/haciendacantabriafrontend-sub002/internal/log"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/state"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/validate"
)

type AuthHandler struct {
	Sessions *state.Sessions
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")

	// Client-side pre-checks never reach the backend (inline errors only).
	if _, ok := validate.Email(email); !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return c.Status(401).Render("login", fiber.Map{"Err": "Correo o contraseña incorrectos"})
	}
	if !validate.Password(pass) {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_password_format"})
		return c.Status(401).Render("login", fiber.Map{"Err": "Correo o contraseña incorrectos"})
	}

	if _, err := h.Sessions.Login(c.Context(), sid, email, pass); err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(401).Render("login", fiber.Map{"Err": api.Humanize(err)})
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	h.Sessions.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}
