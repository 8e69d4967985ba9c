package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/api"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/domain"
	applog "github.com/clynova/haciendacantabriafrontend-sub002/internal/log"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/state"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/validate"
)

type OrderHandler struct {
	Carts    *state.CartStore
	Orders   *api.OrderService
	Sessions *state.Sessions
}

func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	cart := h.Carts.Get(ensureSID(c))
	if cart.ItemCount() == 0 {
		return c.Redirect("/carrito")
	}
	return render(c, "checkout", fiber.Map{
		"Lines":    cart.Lines(),
		"Subtotal": cart.Subtotal(),
	})
}

// Place posts the cart contents as an order creation request. The backend
// recomputes prices and stock; any rejection comes back as its message.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cart := h.Carts.Get(sid)
	lines := cart.Lines()
	if len(lines) == 0 {
		return c.Redirect("/carrito")
	}

	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return c.Status(fiber.StatusBadRequest).SendString("nombre inválido")
	}
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return c.Status(fiber.StatusBadRequest).SendString("correo inválido")
	}
	address := strings.TrimSpace(c.FormValue("address"))
	city := strings.TrimSpace(c.FormValue("city"))
	region := strings.TrimSpace(c.FormValue("region"))
	if address == "" || city == "" || region == "" {
		applog.Security(c, "validation.fail", map[string]any{"field": "shipping"})
		return c.Status(fiber.StatusBadRequest).SendString("dirección incompleta")
	}
	method := strings.ToLower(strings.TrimSpace(c.FormValue("shippingMethod")))
	if method != "retiro" && method != "despacho" {
		method = "despacho"
	}
	payment := strings.ToLower(strings.TrimSpace(c.FormValue("paymentMethod")))
	if payment == "" {
		payment = "webpay"
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.OrderItem{
			ProductID:   l.ProductID,
			VariantID:   l.VariantID,
			ProductName: l.ProductName,
			SKU:         l.SKU,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}
	req := api.OrderRequest{
		Items:         items,
		Shipping:      domain.ShippingInfo{Address: address, City: city, Region: region, Method: method},
		PaymentMethod: payment,
		CustomerName:  name,
		CustomerEmail: email,
		ClientTotal:   cart.Subtotal(),
		ClientRef:     uuid.NewString(),
	}

	order, err := h.Orders.Create(c.Context(), h.Sessions.Token(sid), req)
	if err != nil {
		applog.Error(c, "order.place.fail", err, map[string]any{"sid": sid})
		return c.Status(fiber.StatusBadRequest).Render("checkout", fiber.Map{
			"Lines": lines, "Subtotal": cart.Subtotal(), "Err": api.Humanize(err),
		})
	}

	cart.Clear()
	applog.Audit(c, "order.place", map[string]any{
		"order_id":     order.ID,
		"client_total": req.ClientTotal.String(),
		"server_total": order.Total.String(),
		"mismatch":     !req.ClientTotal.Equal(order.Total),
	})
	return c.Redirect("/pedido/" + order.ID)
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Pedido no encontrado"})
	}
	sid := ensureSID(c)
	order, err := h.Orders.Get(c.Context(), h.Sessions.Token(sid), oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Pedido no encontrado"})
	}
	return render(c, "order", fiber.Map{"Order": order})
}

// History lists the logged-in user's orders. The refresh button re-requests
// this page; there is no automatic retry.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	sid := ensureSID(c)
	orders, err := h.Orders.ListMine(c.Context(), h.Sessions.Token(sid))
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return render(c, "order_history", fiber.Map{"Orders": nil, "Err": api.Humanize(err)})
	}
	return render(c, "order_history", fiber.Map{"Orders": orders})
}
