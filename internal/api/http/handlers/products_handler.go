package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-admin/internal/api/dto"
	"github.com/spec-kit/catalog-admin/internal/domain"
	"github.com/spec-kit/catalog-admin/internal/repository"
	apperrors "github.com/spec-kit/catalog-admin/pkg/util/errorutil"
)

// ProductsHandler exposes thin catalogue CRUD behind the route gate.
type ProductsHandler struct {
	products repository.ProductRepository
}

// NewProductsHandler constructs handler.
func NewProductsHandler(products repository.ProductRepository) *ProductsHandler {
	return &ProductsHandler{products: products}
}

// List handles GET /products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	products, err := h.products.List(c.Context(), limit, offset)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"products": products}})
}

// Get handles GET /products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.products.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"product": product}})
}

// Create handles POST /products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	product, err := parseProduct(c)
	if err != nil {
		return err
	}
	if err := h.products.Create(c.Context(), product); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"product": product}})
}

// Update handles PUT /products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	product, err := parseProduct(c)
	if err != nil {
		return err
	}
	product.ID = c.Params("id")
	if err := h.products.Update(c.Context(), product); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"product": product}})
}

// Delete handles DELETE /products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	if err := h.products.Delete(c.Context(), c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func parseProduct(c *fiber.Ctx) (*domain.Product, error) {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.SKU == "" || req.Name == "" {
		return nil, fiber.NewError(http.StatusBadRequest, "sku and name required")
	}

	status := domain.ProductStatus(req.Status)
	if status == "" {
		status = domain.ProductStatusActive
	}

	return &domain.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Status:      status,
	}, nil
}
