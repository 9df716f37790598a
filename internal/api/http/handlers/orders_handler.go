package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/catalog-admin/internal/api/dto"
	"github.com/spec-kit/catalog-admin/internal/auth"
	"github.com/spec-kit/catalog-admin/internal/domain"
	"github.com/spec-kit/catalog-admin/internal/events"
	"github.com/spec-kit/catalog-admin/internal/repository"
	apperrors "github.com/spec-kit/catalog-admin/pkg/util/errorutil"
)

// OrdersHandler exposes order views and the status transition.
type OrdersHandler struct {
	orders     repository.OrderRepository
	dispatcher events.Dispatcher
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders repository.OrderRepository, dispatcher events.Dispatcher) *OrdersHandler {
	return &OrdersHandler{orders: orders, dispatcher: dispatcher}
}

// List handles GET /orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	orders, err := h.orders.List(c.Context(), limit, offset)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"orders": orders}})
}

// Get handles GET /orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	order, err := h.orders.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"order": order}})
}

var validTransitions = map[domain.OrderStatus]bool{
	domain.OrderStatusPending:   true,
	domain.OrderStatusPaid:      true,
	domain.OrderStatusShipped:   true,
	domain.OrderStatusDelivered: true,
	domain.OrderStatusCancelled: true,
}

// UpdateStatus handles PUT /orders/:id/status. Runs behind
// RequirePermission, so the acting admin has been live-checked.
func (h *OrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.OrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if !validTransitions[req.Status] {
		return fiber.NewError(http.StatusBadRequest, "unknown order status")
	}

	order, err := h.orders.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}

	if err := h.orders.UpdateStatus(c.Context(), order.ID, req.Status); err != nil {
		return apperrors.MapError(err)
	}

	if session, ok := auth.AdminFromContext(c); ok && h.dispatcher != nil {
		_ = h.dispatcher.Publish(c.Context(), events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderStatusChanged,
			Timestamp: time.Now(),
			Payload: events.OrderStatusChangedPayload{
				OrderID:   order.ID,
				OldStatus: order.Status,
				NewStatus: req.Status,
				AdminID:   session.ID,
			},
		})
	}

	order.Status = req.Status
	return c.JSON(fiber.Map{"data": fiber.Map{"order": order}})
}
