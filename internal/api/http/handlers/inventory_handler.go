package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-admin/internal/api/dto"
	"github.com/spec-kit/catalog-admin/internal/repository"
	apperrors "github.com/spec-kit/catalog-admin/pkg/util/errorutil"
)

// InventoryHandler exposes stock views and adjustments.
type InventoryHandler struct {
	inventory repository.InventoryRepository
}

// NewInventoryHandler constructs handler.
func NewInventoryHandler(inventory repository.InventoryRepository) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// List handles GET /inventory.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)

	items, err := h.inventory.List(c.Context(), limit, offset)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"inventory": items}})
}

// Adjust handles PUT /inventory/:sku. Stock never goes below zero.
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var req dto.InventoryAdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Delta == 0 {
		return fiber.NewError(http.StatusBadRequest, "delta must be non-zero")
	}

	item, err := h.inventory.Adjust(c.Context(), c.Params("sku"), req.Delta)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"item": item}})
}
