package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/api"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/config"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/http/handlers"
	applog "github.com/clynova/haciendacantabriafrontend-sub002/internal/log"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/storage"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/ws"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	store, err := storage.Open(cfg.StateDB)
	if err != nil {
		log.Fatal(err)
	}

	client := api.New(cfg.APIBase)
	hub := ws.NewHub()
	deps := handlers.NewDeps(client, store, hub)

	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Algo salió mal. Intenta nuevamente.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Algo salió mal. Intenta nuevamente.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for templates/headers)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u := deps.Sessions.Current(sid); u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Falló la verificación de seguridad. Recarga la página."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	app.Static("/static", "./web/static")

	// ---------- Storefront ----------
	app.Get("/", deps.CatalogHandler.Home)
	app.Get("/buscar", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.CatalogHandler.Search)
	app.Get("/productos", deps.CatalogHandler.List)
	app.Get("/categoria/:slug", deps.CatalogHandler.List)
	app.Get("/producto/:slug", deps.CatalogHandler.Detail)

	app.Get("/carrito", deps.CartHandler.View)
	app.Post("/carrito", deps.CartHandler.Add)
	app.Post("/carrito/actualizar", deps.CartHandler.Update)
	app.Post("/carrito/eliminar", deps.CartHandler.Remove)
	app.Post("/carrito/vaciar", deps.CartHandler.Clear)

	app.Get("/checkout", deps.OrderHandler.Checkout)
	app.Post("/pedidos", deps.OrderHandler.Place)
	app.Get("/pedido/:id", deps.OrderHandler.View)
	app.Get("/pedidos", handlers.RequireUser(deps.Sessions), deps.OrderHandler.History)

	app.Get("/favoritos", deps.WishlistHandler.List)
	app.Post("/favoritos", deps.WishlistHandler.Save)
	app.Post("/favoritos/eliminar", deps.WishlistHandler.Unsave)

	// Static marketing pages & cookie banner
	app.Get("/nosotros", deps.PagesHandler.About())
	app.Get("/preguntas-frecuentes", deps.PagesHandler.FAQ())
	app.Get("/terminos", deps.PagesHandler.Terms())
	app.Get("/politicas", deps.PagesHandler.Policies())
	app.Post("/cookies", deps.PagesHandler.ConsentAnswer)

	// Auth (login throttled)
	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Demasiados intentos. Vuelve a intentarlo más tarde."})
		},
	}), deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)

	// ---------- Admin console ----------
	admin := app.Group("/admin", handlers.RequireAdmin(deps.Sessions))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/productos", deps.AdminHandler.ProductsPage)
	admin.Post("/productos", deps.AdminHandler.SaveProduct)
	admin.Post("/productos/:id/delete", deps.AdminHandler.DeleteProduct)
	admin.Get("/productos/export", deps.AdminHandler.ExportProducts)
	admin.Get("/pedidos", deps.AdminHandler.OrdersPage)
	admin.Post("/pedidos/:id/status", deps.AdminHandler.UpdateOrderStatus)
	admin.Get("/usuarios", deps.AdminHandler.UsersPage)
	admin.Post("/usuarios/:id/delete", deps.AdminHandler.DeleteUser)
	admin.Get("/categorias", deps.AdminHandler.CategoriesPage)
	admin.Post("/categorias", deps.AdminHandler.SaveCategory)
	admin.Post("/categorias/:id/delete", deps.AdminHandler.DeleteCategory)

	// Live order-status feed for the console
	admin.Use("/pedidos/live", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	admin.Get("/pedidos/live", websocket.New(hub.Handler()))

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Página no encontrada"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
