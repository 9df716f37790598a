package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-admin/internal/api/dto"
	"github.com/spec-kit/catalog-admin/internal/auth"
	"github.com/spec-kit/catalog-admin/internal/service"
	apperrors "github.com/spec-kit/catalog-admin/pkg/util/errorutil"
)

// CustomerHandler exposes the OTP authentication flow and the customer
// profile endpoint.
type CustomerHandler struct {
	auth *service.AuthService
}

// NewCustomerHandler constructs handler.
func NewCustomerHandler(authService *service.AuthService) *CustomerHandler {
	return &CustomerHandler{auth: authService}
}

// RequestOTP handles POST /customer/otp/request.
func (h *CustomerHandler) RequestOTP(c *fiber.Ctx) error {
	var req dto.OTPRequestPayload
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Phone == "" {
		return fiber.NewError(http.StatusBadRequest, "phone required")
	}

	expiresAt, err := h.auth.RequestCustomerOTP(c.Context(), req.Phone)
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"sent":       true,
			"expires_at": expiresAt,
		},
	})
}

// VerifyOTP handles POST /customer/otp/verify. A correct, unexpired code
// yields a bearer token; any other outcome is a generic 401.
func (h *CustomerHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.OTPVerifyPayload
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Phone == "" || req.Code == "" {
		return fiber.NewError(http.StatusBadRequest, "phone and code required")
	}

	customer, token, exp, err := h.auth.VerifyCustomerOTP(c.Context(), req.Phone, req.Code)
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired code")
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"customer": dto.NewCustomerResponse(customer),
			"auth":     dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Me handles GET /customer/me behind RequireCustomer.
func (h *CustomerHandler) Me(c *fiber.Ctx) error {
	session, ok := auth.CustomerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"customer": dto.NewCustomerResponse(session.Customer),
		},
	})
}
