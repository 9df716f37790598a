package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-admin/internal/api/dto"
	"github.com/spec-kit/catalog-admin/internal/auth"
	"github.com/spec-kit/catalog-admin/internal/service"
	apperrors "github.com/spec-kit/catalog-admin/pkg/util/errorutil"
)

// AuthHandler exposes the admin session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// LoginPage handles GET /login, the forward target for unauthenticated
// web clients. The gate bounces authenticated admins off this path.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "authentication required",
		"login":   auth.LoginPath,
	})
}

// Login handles POST /login. On success the token rides the admin cookie;
// the body carries only public identity fields.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	admin, token, exp, err := h.auth.LoginAdmin(c.Context(), req.Username, req.Password)
	if err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.AdminCookieName,
		Value:    token,
		Expires:  exp,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"admin": dto.NewAdminResponse(admin),
		},
	})
}

// Logout handles POST /logout. Clearing an absent cookie is not an error.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     auth.AdminCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// Me handles GET /auth/me, the verification endpoint. Runs behind
// RequireAdmin, so the session here reflects a live store lookup.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	session, ok := auth.AdminFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"admin": dto.AdminResponse{
				ID:          session.ID,
				Username:    session.Username,
				Role:        session.Role,
				Permissions: session.Permissions,
			},
		},
	})
}
