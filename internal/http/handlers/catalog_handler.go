package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/api"
	applog "github.com/clynova/haciendacantabriafrontend-sub002/internal/log"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/state"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/validate"
)

type CatalogHandler struct {
	Catalog    *state.Catalog
	Products   *api.ProductService
	Categories *api.CategoryService
}

func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	cats, err := h.Categories.List(c.Context())
	if err != nil {
		applog.Error(c, "home.categories", err, nil)
		cats = nil
	}
	_, _ = h.Catalog.Fetch(c.Context(), api.Filters{PageSize: 8})
	products, loading, errMsg := h.Catalog.Snapshot()
	return render(c, "home", fiber.Map{
		"Categories": cats, "Products": products, "Loading": loading, "Err": errMsg,
	})
}

// List shows the product listing, optionally narrowed to one category.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	category := strings.TrimSpace(c.Params("slug"))
	if category != "" {
		if _, ok := validate.Slug(category); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "category"})
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Categoría no encontrada"})
		}
	}
	_, _ = h.Catalog.Fetch(c.Context(), api.Filters{Category: category})
	products, loading, errMsg := h.Catalog.Snapshot()
	return render(c, "products", fiber.Map{
		"Category": category, "Products": products, "Loading": loading, "Err": errMsg,
	})
}

func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Este producto ya no está disponible"})
	}
	p, err := h.Products.Get(c.Context(), slug)
	if err != nil || p.ID == "" {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Este producto ya no está disponible"})
	}
	def, _ := p.DefaultVariant()
	return render(c, "product", fiber.Map{"P": p, "Default": def})
}

func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		return render(c, "search", fiber.Map{"Q": "", "Products": []any{}, "Count": 0})
	}
	q, ok := validate.Q(rawQ)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return c.Status(fiber.StatusBadRequest).Render("search", fiber.Map{
			"Q": "", "Products": []any{}, "Count": 0, "Err": "Ingresa una búsqueda válida",
		})
	}
	products, err := h.Catalog.Fetch(c.Context(), api.Filters{Query: strings.ToLower(q)})
	if err != nil {
		applog.Error(c, "search.error", err, nil)
		return c.Status(500).Render("search", fiber.Map{
			"Q": q, "Products": []any{}, "Count": 0, "Err": api.Humanize(err),
		})
	}
	return render(c, "search", fiber.Map{"Q": q, "Products": products, "Count": len(products)})
}
