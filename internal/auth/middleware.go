package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/catalog-admin/pkg/util/errorutil"
)

const (
	adminSessionKey    = "auth_admin_session"
	customerSessionKey = "auth_customer_session"
)

// Middleware loads verified sessions into request locals for handlers
// that need the resolved identity rather than just the gate decision.
type Middleware struct {
	resolver *SessionResolver
}

// NewMiddleware constructs middleware over a resolver.
func NewMiddleware(resolver *SessionResolver) *Middleware {
	return &Middleware{resolver: resolver}
}

// RequireAdmin resolves the admin cookie with a live store lookup and
// rejects anything but an active admin. Inactive and missing identities
// collapse to the same generic 401 the absent-cookie case produces.
func (m *Middleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := m.resolver.ResolveAdminLive(c.Context(), c.Cookies(AdminCookieName))
		if err != nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		c.Locals(adminSessionKey, session)
		return c.Next()
	}
}

// RequirePermission enforces a named permission on top of RequireAdmin.
// Must run after it; the live lookup has already refreshed the set.
func RequirePermission(perm string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := AdminFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if session.HasPermission(perm) {
			return c.Next()
		}
		return apperrors.NewForbidden("insufficient permissions")
	}
}

// RequireCustomer resolves the bearer header into a customer session.
func (m *Middleware) RequireCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := m.resolver.ResolveCustomer(c.Context(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return apperrors.NewUnauthorized("account no longer exists")
			}
			return apperrors.NewUnauthorized("authentication required")
		}
		c.Locals(customerSessionKey, session)
		return c.Next()
	}
}

// AdminFromContext retrieves the resolved admin session.
func AdminFromContext(c *fiber.Ctx) (*AdminSession, bool) {
	session, ok := c.Locals(adminSessionKey).(*AdminSession)
	return session, ok
}

// CustomerFromContext retrieves the resolved customer session.
func CustomerFromContext(c *fiber.Ctx) (*CustomerSession, bool) {
	session, ok := c.Locals(customerSessionKey).(*CustomerSession)
	return session, ok
}
