package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/api"
	applog "github.com/clynova/haciendacantabriafrontend-sub002/internal/log"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/state"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/validate"
)

type CartHandler struct {
	Carts    *state.CartStore
	Products *api.ProductService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	cart := h.Carts.Get(ensureSID(c))
	return render(c, "cart", fiber.Map{
		"Lines":     cart.Lines(),
		"Subtotal":  cart.Subtotal(),
		"ItemCount": cart.ItemCount(),
	})
}

// Add resolves the product and selected variant from the backend, then hands
// them to the cart container. Stock exhaustion never errors here: the
// container records the snapshot and checkout is re-checked server-side.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	slug, okSlug := validate.Slug(c.FormValue("slug"))
	variantID, okVar := validate.ID(c.FormValue("variantId"))
	if !okSlug {
		return c.Status(400).SendString("missing product")
	}
	qty := validate.Qty(c.FormValue("qty"))

	p, err := h.Products.Get(c.Context(), slug)
	if err != nil || p.ID == "" {
		applog.Error(c, "cart.add.product", err, map[string]any{"slug": slug})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Este producto ya no está disponible"})
	}
	variant, found := p.Variant(variantID)
	if !okVar || !found {
		variant, found = p.DefaultVariant()
	}
	if !found {
		return c.Status(400).SendString("product has no variants")
	}

	h.Carts.Get(sid).Add(p, variant, qty)
	applog.Audit(c, "cart.add", map[string]any{"product": p.ID, "variant": variant.ID, "qty": qty})
	return c.Redirect("/carrito")
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)
	pid, okP := validate.ID(c.FormValue("productId"))
	vid, okV := validate.ID(c.FormValue("variantId"))
	if !okP || !okV {
		return c.Status(400).SendString("missing productId or variantId")
	}
	qty := validate.Qty(c.FormValue("qty"))
	h.Carts.Get(sid).UpdateQuantity(pid, vid, qty)
	return c.Redirect("/carrito")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	pid, okP := validate.ID(c.FormValue("productId"))
	vid, okV := validate.ID(c.FormValue("variantId"))
	if !okP || !okV {
		return c.Status(400).SendString("missing productId or variantId")
	}
	h.Carts.Get(sid).Remove(pid, vid)
	return c.Redirect("/carrito")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	h.Carts.Get(ensureSID(c)).Clear()
	return c.Redirect("/carrito")
}
