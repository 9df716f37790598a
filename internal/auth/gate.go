package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GateOutcome is the terminal decision for one inbound request.
type GateOutcome int

const (
	// Forward lets the request proceed to its handler.
	Forward GateOutcome = iota
	// RedirectToLogin sends an unauthenticated request to the login surface.
	RedirectToLogin
	// RedirectToProtectedHome bounces an already-authenticated admin off
	// the login surface.
	RedirectToProtectedHome
)

// Route table. Classification is prefix-based and closed: paths matching
// none of these are forwarded as-is (public by default).
const (
	LoginPath         = "/login"
	ProtectedHomePath = "/dashboard"
)

var protectedPrefixes = []string{
	"/dashboard",
	"/products",
	"/orders",
	"/inventory",
	"/analytics",
}

// Decide classifies a request path against the route table. Pure function
// of (path, authenticated); precedence: login bounce, then protected
// check, then forward.
func Decide(path string, authenticated bool) GateOutcome {
	if path == LoginPath && authenticated {
		return RedirectToProtectedHome
	}
	if isProtected(path) && !authenticated {
		return RedirectToLogin
	}
	return Forward
}

func isProtected(path string) bool {
	for _, prefix := range protectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// RouteGate intercepts every request before its handler and applies the
// gate decision using the coarse (claims-only) admin resolution.
type RouteGate struct {
	resolver *SessionResolver
}

// NewRouteGate constructs the gate middleware.
func NewRouteGate(resolver *SessionResolver) *RouteGate {
	return &RouteGate{resolver: resolver}
}

// Handle evaluates the gate once per request. Paths outside the route
// table forward unconditionally, so the token is only verified where the
// decision can depend on it.
func (g *RouteGate) Handle(c *fiber.Ctx) error {
	path := c.Path()
	if path != LoginPath && !isProtected(path) {
		return c.Next()
	}

	_, err := g.resolver.ResolveAdmin(c.Context(), c.Cookies(AdminCookieName))
	authenticated := err == nil

	switch Decide(path, authenticated) {
	case RedirectToLogin:
		return c.Redirect(LoginPath, fiber.StatusFound)
	case RedirectToProtectedHome:
		return c.Redirect(ProtectedHomePath, fiber.StatusFound)
	default:
		return c.Next()
	}
}
