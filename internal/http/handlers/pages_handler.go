package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/clynova/haciendacantabriafrontend-sub002/internal/log"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/state"
)

// PagesHandler serves the static marketing pages and the cookie banner.
type PagesHandler struct {
	Consent *state.ConsentStore
}

func (h *PagesHandler) static(tmpl string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := ensureSID(c)
		_, answered := h.Consent.Answered(sid)
		return render(c, tmpl, fiber.Map{"ShowConsent": !answered})
	}
}

func (h *PagesHandler) About() fiber.Handler    { return h.static("about") }
func (h *PagesHandler) FAQ() fiber.Handler      { return h.static("faq") }
func (h *PagesHandler) Terms() fiber.Handler    { return h.static("terms") }
func (h *PagesHandler) Policies() fiber.Handler { return h.static("policies") }

// ConsentAnswer records the banner response and returns the visitor to the
// page they were on.
func (h *PagesHandler) ConsentAnswer(c *fiber.Ctx) error {
	sid := ensureSID(c)
	accepted := c.FormValue("accept") == "1"
	h.Consent.Set(sid, accepted)
	applog.Info(c, "consent.answer", map[string]any{"accepted": accepted})
	back := c.Get("Referer")
	if back == "" {
		back = "/"
	}
	return c.Redirect(back)
}
