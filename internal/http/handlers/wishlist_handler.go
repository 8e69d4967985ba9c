package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/api"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/domain"
	applog "github.com/clynova/haciendacantabriafrontend-sub002/internal/log"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/state"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/validate"
)

type WishlistHandler struct {
	Wishlists *state.WishlistStore
	Products  *api.ProductService
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	sid := ensureSID(c)
	ids := h.Wishlists.List(sid)

	// Saved entries whose product no longer resolves are shown by id only.
	items := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		p, err := h.Products.Get(c.Context(), id)
		if err != nil || p.ID == "" {
			items = append(items, domain.Product{ID: id, Name: id})
			continue
		}
		items = append(items, p)
	}
	return render(c, "wishlist", fiber.Map{"Items": items})
}

func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	sid := ensureSID(c)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	h.Wishlists.Save(sid, pid)
	applog.Audit(c, "wishlist.save", map[string]any{"product": pid})
	back := c.Get("Referer")
	if back == "" {
		back = "/favoritos"
	}
	return c.Redirect(back)
}

func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	sid := ensureSID(c)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	h.Wishlists.Unsave(sid, pid)
	applog.Audit(c, "wishlist.unsave", map[string]any{"product": pid})
	return c.Redirect("/favoritos")
}
