package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/api"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/domain"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/export"
	applog "github.com/clynova/haciendacantabriafrontend-sub002/internal/log"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/state"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/validate"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/ws"
)

// AdminHandler backs the console screens. Every write goes straight to the
// backend with the admin's bearer token; nothing is mutated locally.
type AdminHandler struct {
	Products   *api.ProductService
	Orders     *api.OrderService
	Users      *api.UserService
	Categories *api.CategoryService
	Sessions   *state.Sessions
	Hub        *ws.Hub
}

func (h *AdminHandler) token(c *fiber.Ctx) string {
	return h.Sessions.Token(c.Cookies("sid"))
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	return render(c, "admin_dashboard", fiber.Map{})
}

// GET /admin/productos
func (h *AdminHandler) ProductsPage(c *fiber.Ctx) error {
	products, err := h.Products.List(c.Context(), api.Filters{PageSize: 200})
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": api.Humanize(err)})
	}
	cats, _ := h.Categories.List(c.Context())
	return render(c, "admin_products", fiber.Map{"Products": products, "Categories": cats})
}

// POST /admin/productos — create, or update when an id is posted.
func (h *AdminHandler) SaveProduct(c *fiber.Ctx) error {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return c.Status(400).SendString("nombre inválido")
	}
	basePrice, err := decimal.NewFromString(strings.TrimSpace(c.FormValue("basePrice")))
	if err != nil || basePrice.IsNegative() {
		return c.Status(400).SendString("precio inválido")
	}
	discount := decimal.Zero
	if raw := strings.TrimSpace(c.FormValue("discountPct")); raw != "" {
		if discount, err = decimal.NewFromString(raw); err != nil || discount.IsNegative() {
			return c.Status(400).SendString("descuento inválido")
		}
	}
	weight, err := decimal.NewFromString(strings.TrimSpace(c.FormValue("weight")))
	if err != nil {
		return c.Status(400).SendString("peso inválido")
	}
	stock, err := strconv.Atoi(strings.TrimSpace(c.FormValue("stock")))
	if err != nil || stock < 0 {
		return c.Status(400).SendString("stock inválido")
	}

	p := domain.Product{
		ID:          strings.TrimSpace(c.FormValue("id")),
		Name:        name,
		Description: strings.TrimSpace(c.FormValue("description")),
		Categories:  splitCSV(c.FormValue("categories")),
		Active:      c.FormValue("active") != "0",
		Variants: []domain.Variant{{
			ID:          strings.TrimSpace(c.FormValue("variantId")),
			SKU:         strings.TrimSpace(c.FormValue("sku")),
			Weight:      weight,
			Unit:        strings.TrimSpace(c.FormValue("unit")),
			BasePrice:   basePrice,
			DiscountPct: discount,
			Stock:       stock,
			IsDefault:   true,
		}},
	}

	tok := h.token(c)
	if p.ID == "" {
		_, err = h.Products.Create(c.Context(), tok, p)
	} else {
		_, err = h.Products.Update(c.Context(), tok, p)
	}
	if err != nil {
		applog.Error(c, "admin.products.save.fail", err, map[string]any{"product": p.ID})
		return c.Status(400).SendString(api.Humanize(err))
	}
	applog.Audit(c, "admin.products.save", map[string]any{"product": p.ID, "name": p.Name})
	return c.Redirect("/admin/productos")
}

// POST /admin/productos/:id/delete
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Products.Delete(c.Context(), h.token(c), id); err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product": id})
		return c.Status(400).SendString(api.Humanize(err))
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product": id})
	return c.Redirect("/admin/productos")
}

// GET /admin/productos/export
func (h *AdminHandler) ExportProducts(c *fiber.Ctx) error {
	products, err := h.Products.List(c.Context(), api.Filters{PageSize: 1000})
	if err != nil {
		applog.Error(c, "admin.products.export.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": api.Humanize(err)})
	}
	b, err := export.ProductsXLSX(products)
	if err != nil {
		applog.Error(c, "admin.products.export.build", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudo generar el archivo"})
	}
	applog.Audit(c, "admin.products.export", map[string]any{"count": len(products)})
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="productos.xlsx"`)
	return c.Send(b)
}

// GET /admin/pedidos
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	orders, err := h.Orders.ListAll(c.Context(), h.token(c), 100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": api.Humanize(err)})
	}
	return render(c, "admin_orders", fiber.Map{"Orders": orders, "Statuses": domain.OrderStatuses})
}

// POST /admin/pedidos/:id/status — request a transition, broadcast on success.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	status := strings.TrimSpace(c.FormValue("status"))
	if !ok || !domain.ValidOrderStatus(status) {
		return c.Status(400).SendString("missing id or status")
	}
	order, err := h.Orders.UpdateStatus(c.Context(), h.token(c), id, status)
	if err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		return c.Status(400).SendString(api.Humanize(err))
	}
	if h.Hub != nil {
		h.Hub.BroadcastOrderStatus(order.ID, order.Status)
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/admin/pedidos")
}

// GET /admin/usuarios
func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	users, err := h.Users.List(c.Context(), h.token(c))
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": api.Humanize(err)})
	}
	return render(c, "admin_users", fiber.Map{"Users": users})
}

// POST /admin/usuarios/:id/delete
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Users.Delete(c.Context(), h.token(c), id); err != nil {
		applog.Error(c, "admin.users.delete.fail", err, map[string]any{"user_id": id})
		return c.Status(400).SendString(api.Humanize(err))
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"user_id": id})
	return c.Redirect("/admin/usuarios")
}

// GET /admin/categorias
func (h *AdminHandler) CategoriesPage(c *fiber.Ctx) error {
	cats, err := h.Categories.List(c.Context())
	if err != nil {
		applog.Error(c, "admin.categories.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": api.Humanize(err)})
	}
	return render(c, "admin_categories", fiber.Map{"Categories": cats})
}

// POST /admin/categorias — create, or rename when an id is posted.
func (h *AdminHandler) SaveCategory(c *fiber.Ctx) error {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return c.Status(400).SendString("nombre inválido")
	}
	id := strings.TrimSpace(c.FormValue("id"))
	var err error
	if id == "" {
		_, err = h.Categories.Create(c.Context(), h.token(c), name)
	} else {
		_, err = h.Categories.Update(c.Context(), h.token(c), domain.Category{ID: id, Name: name})
	}
	if err != nil {
		applog.Error(c, "admin.categories.save.fail", err, map[string]any{"category": id})
		return c.Status(400).SendString(api.Humanize(err))
	}
	applog.Audit(c, "admin.categories.save", map[string]any{"category": id, "name": name})
	return c.Redirect("/admin/categorias")
}

// POST /admin/categorias/:id/delete
func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Categories.Delete(c.Context(), h.token(c), id); err != nil {
		applog.Error(c, "admin.categories.delete.fail", err, map[string]any{"category": id})
		return c.Status(400).SendString(api.Humanize(err))
	}
	applog.Audit(c, "admin.categories.delete", map[string]any{"category": id})
	return c.Redirect("/admin/categorias")
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
