package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-admin/internal/api/http/handlers"
	"github.com/spec-kit/catalog-admin/internal/auth"
)

// Permissions gating privileged mutations. Coarse route access only needs
// an authenticated admin; these require a live permission check.
const (
	PermManageProducts  = "manage_products"
	PermManageOrders    = "manage_orders"
	PermManageInventory = "manage_inventory"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Customer       *handlers.CustomerHandler
	Products       *handlers.ProductsHandler
	Orders         *handlers.OrdersHandler
	Inventory      *handlers.InventoryHandler
	Dashboard      *handlers.DashboardHandler
	RouteGate      *auth.RouteGate
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The route gate runs before every
// handler; protected mutations additionally pass the live admin and
// permission checks.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.RouteGate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/login", cfg.Auth.LoginPage)
	app.Post("/login", cfg.Auth.Login)
	app.Post("/logout", cfg.Auth.Logout)
	app.Get("/auth/me", cfg.AuthMiddleware.RequireAdmin(), cfg.Auth.Me)

	app.Get("/dashboard", cfg.Dashboard.Home)
	app.Get("/analytics", cfg.Dashboard.Analytics)

	products := app.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Get("/:id", cfg.Products.Get)
	products.Post("/", cfg.AuthMiddleware.RequireAdmin(), auth.RequirePermission(PermManageProducts), cfg.Products.Create)
	products.Put("/:id", cfg.AuthMiddleware.RequireAdmin(), auth.RequirePermission(PermManageProducts), cfg.Products.Update)
	products.Delete("/:id", cfg.AuthMiddleware.RequireAdmin(), auth.RequirePermission(PermManageProducts), cfg.Products.Delete)

	orders := app.Group("/orders")
	orders.Get("/", cfg.Orders.List)
	orders.Get("/:id", cfg.Orders.Get)
	orders.Put("/:id/status", cfg.AuthMiddleware.RequireAdmin(), auth.RequirePermission(PermManageOrders), cfg.Orders.UpdateStatus)

	inventory := app.Group("/inventory")
	inventory.Get("/", cfg.Inventory.List)
	inventory.Put("/:sku", cfg.AuthMiddleware.RequireAdmin(), auth.RequirePermission(PermManageInventory), cfg.Inventory.Adjust)

	customer := app.Group("/customer")
	customer.Post("/otp/request", cfg.Customer.RequestOTP)
	customer.Post("/otp/verify", cfg.Customer.VerifyOTP)
	customer.Get("/me", cfg.AuthMiddleware.RequireCustomer(), cfg.Customer.Me)
}
