package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-admin/internal/domain"
	apperrors "github.com/spec-kit/catalog-admin/pkg/util/errorutil"
)

// domainErrorHandler mirrors the service's global error middleware closely
// enough for status assertions.
func domainErrorHandler(c *fiber.Ctx, err error) error {
	domainErr := apperrors.ToDomainError(err)
	return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
		"error": fiber.Map{"code": domainErr.Code, "message": domainErr.Message},
	})
}

func newProtectedApp(t *testing.T, lookup AdminLookup) (*fiber.App, *TokenManager) {
	t.Helper()
	resolver, tm := newTestResolver(lookup, &stubCustomerLookup{})
	mw := NewMiddleware(resolver)

	app := fiber.New(fiber.Config{ErrorHandler: domainErrorHandler})
	app.Put("/orders/1/status",
		mw.RequireAdmin(),
		RequirePermission("manage_orders"),
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)
	return app, tm
}

func TestRequirePermissionUsesLiveSet(t *testing.T) {
	// The store grants manage_orders even though the token claims do not.
	live := testAdmin()
	live.Permissions = []string{"view_orders", "manage_orders"}
	app, tm := newProtectedApp(t, &stubAdminLookup{admin: live})

	token, _, err := tm.IssueAdmin(testAdmin())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/orders/1/status", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermissionDeniesMissingPermission(t *testing.T) {
	app, tm := newProtectedApp(t, &stubAdminLookup{admin: testAdmin()})

	token, _, err := tm.IssueAdmin(testAdmin())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/orders/1/status", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireAdminRejectsDeactivatedAccount(t *testing.T) {
	deactivated := testAdmin()
	deactivated.Active = false
	app, tm := newProtectedApp(t, &stubAdminLookup{admin: deactivated})

	token, _, err := tm.IssueAdmin(testAdmin())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/orders/1/status", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAdminRejectsMissingCookie(t *testing.T) {
	app, _ := newProtectedApp(t, &stubAdminLookup{admin: testAdmin()})

	resp, err := app.Test(httptest.NewRequest(http.MethodPut, "/orders/1/status", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireCustomerLoadsSession(t *testing.T) {
	customer := &domain.Customer{ID: "cust-1", Phone: "+15551234567"}
	resolver, tm := newTestResolver(&stubAdminLookup{}, &stubCustomerLookup{customer: customer})
	mw := NewMiddleware(resolver)

	app := fiber.New()
	app.Get("/customer/me", mw.RequireCustomer(), func(c *fiber.Ctx) error {
		session, ok := CustomerFromContext(c)
		require.True(t, ok)
		return c.SendString(session.ID)
	})

	token, _, err := tm.IssueCustomer("cust-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/customer/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
