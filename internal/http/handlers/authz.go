package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/clynova/haciendacantabriafrontend-sub002/internal/log"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/state"
)

// RequireUser redirects anonymous visitors to the login page.
func RequireUser(sessions *state.Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u := sessions.Current(sid)
		if u == nil {
			return c.Redirect("/login")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireAdmin denies entry when there is no user or the user's role set
// does not include "admin".
func RequireAdmin(sessions *state.Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u := sessions.Current(sid)
		if u == nil || !u.HasRole("admin") {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Acceso denegado"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}
