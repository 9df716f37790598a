package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-admin/internal/auth"
	"github.com/spec-kit/catalog-admin/internal/config"
	"github.com/spec-kit/catalog-admin/internal/domain"
	"github.com/spec-kit/catalog-admin/internal/service"
	apperrors "github.com/spec-kit/catalog-admin/pkg/util/errorutil"
)

type fakeAdminRepo struct {
	admin *domain.Admin
}

func (f *fakeAdminRepo) Create(_ context.Context, _ *domain.Admin) error { return nil }

func (f *fakeAdminRepo) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	if f.admin != nil && f.admin.ID == id {
		return f.admin, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*domain.Admin, error) {
	if f.admin != nil && f.admin.Username == username {
		return f.admin, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAdminRepo) UpdateLastLogin(_ context.Context, _ string) error { return nil }

// newSessionApp wires the auth handler behind the route gate the way the
// router does, close enough to exercise the full login/logout cookie flow.
func newSessionApp(t *testing.T) *fiber.App {
	t.Helper()

	// Low cost keeps the test fast.
	hash, err := auth.HashPassword("s3cret", 4)
	require.NoError(t, err)

	repo := &fakeAdminRepo{admin: &domain.Admin{
		ID:           "adm-1",
		Username:     "rita",
		PasswordHash: hash,
		Role:         domain.AdminRoleStaff,
		Permissions:  []string{"view_orders"},
		Active:       true,
	}}

	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:             "handler-test-secret",
		AdminTokenTTLHours:    1,
		CustomerTokenTTLHours: 1,
		OTPTTLMinutes:         5,
		BcryptCost:            4,
	}}
	svc := service.NewAuthService(cfg, service.AuthDependencies{
		AdminRepo: repo,
		Logger:    zap.NewNop(),
	})
	handler := NewAuthHandler(svc)
	resolver := auth.NewSessionResolver(svc.TokenManager(), repo, nil, zap.NewNop())

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"error": fiber.Map{"code": domainErr.Code, "message": domainErr.Message},
			})
		},
	})
	app.Use(auth.NewRouteGate(resolver).Handle)
	app.Post("/login", handler.Login)
	app.Post("/logout", handler.Logout)
	app.Get("/dashboard", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func loginRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, ck := range resp.Cookies() {
		if ck.Name == auth.AdminCookieName {
			return ck
		}
	}
	t.Fatalf("response carries no %s cookie", auth.AdminCookieName)
	return nil
}

func TestLoginSetsSessionCookie(t *testing.T) {
	app := newSessionApp(t)

	resp, err := app.Test(loginRequest(`{"username":"rita","password":"s3cret"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ck := sessionCookie(t, resp)
	require.NotEmpty(t, ck.Value)
	require.True(t, ck.HttpOnly)
	require.Equal(t, "/", ck.Path)
	require.True(t, ck.Expires.After(time.Now()))
}

func TestLoginRejectsBadPassword(t *testing.T) {
	app := newSessionApp(t)

	resp, err := app.Test(loginRequest(`{"username":"rita","password":"wrong"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Empty(t, resp.Cookies())
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	app := newSessionApp(t)

	loginResp, err := app.Test(loginRequest(`{"username":"rita","password":"s3cret"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	token := sessionCookie(t, loginResp).Value

	logoutReq := httptest.NewRequest(http.MethodPost, "/logout", nil)
	logoutReq.AddCookie(&http.Cookie{Name: auth.AdminCookieName, Value: token})
	logoutResp, err := app.Test(logoutReq)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, logoutResp.StatusCode)

	cleared := sessionCookie(t, logoutResp)
	require.Empty(t, cleared.Value)
	require.True(t, cleared.Expires.Before(time.Now()))

	// A client honoring the clear now carries an empty value; the gate
	// must treat the follow-up protected request as unauthenticated.
	next := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	next.AddCookie(&http.Cookie{Name: auth.AdminCookieName, Value: cleared.Value})
	nextResp, err := app.Test(next)
	require.NoError(t, err)
	require.Equal(t, http.StatusFound, nextResp.StatusCode)
	require.Equal(t, auth.LoginPath, nextResp.Header.Get("Location"))
}

func TestLogoutWithoutSessionIsIdempotent(t *testing.T) {
	app := newSessionApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cleared := sessionCookie(t, resp)
	require.Empty(t, cleared.Value)
	require.True(t, cleared.Expires.Before(time.Now()))
}
