package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-admin/internal/repository"
	apperrors "github.com/spec-kit/catalog-admin/pkg/util/errorutil"
)

// DashboardHandler serves the protected home and the analytics view.
type DashboardHandler struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(products repository.ProductRepository, orders repository.OrderRepository) *DashboardHandler {
	return &DashboardHandler{products: products, orders: orders}
}

// Home handles GET /dashboard.
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	productCount, err := h.products.Count(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	orderCount, err := h.orders.Count(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"products": productCount,
			"orders":   orderCount,
		},
	})
}

// Analytics handles GET /analytics with a configurable lookback window.
func (h *DashboardHandler) Analytics(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	summary, err := h.orders.Summarize(c.Context(), since)
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"since":         since,
			"total_orders":  summary.TotalOrders,
			"revenue_cents": summary.RevenueCents,
			"by_status":     summary.ByStatus,
		},
	})
}
