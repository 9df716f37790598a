package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-admin/internal/domain"
)

type stubAdminLookup struct {
	admin *domain.Admin
	err   error
	calls int
}

func (s *stubAdminLookup) GetByID(_ context.Context, _ string) (*domain.Admin, error) {
	s.calls++
	return s.admin, s.err
}

type stubCustomerLookup struct {
	customer *domain.Customer
	err      error
}

func (s *stubCustomerLookup) GetByID(_ context.Context, _ string) (*domain.Customer, error) {
	return s.customer, s.err
}

func newTestResolver(admins AdminLookup, customers CustomerLookup) (*SessionResolver, *TokenManager) {
	tm := NewTokenManager("secret", 168, 720)
	return NewSessionResolver(tm, admins, customers, zap.NewNop()), tm
}

func TestResolveAdminNoCookie(t *testing.T) {
	resolver, _ := newTestResolver(&stubAdminLookup{}, &stubCustomerLookup{})

	_, err := resolver.ResolveAdmin(context.Background(), "")
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveAdminCollapsesTokenErrors(t *testing.T) {
	resolver, tm := newTestResolver(&stubAdminLookup{}, &stubCustomerLookup{})

	// Forged: signed with a different secret.
	forged, _, err := NewTokenManager("other", 168, 720).IssueAdmin(testAdmin())
	require.NoError(t, err)

	// Wrong kind: customer token on the admin carrier.
	customerToken, _, err := tm.IssueCustomer("cust-1")
	require.NoError(t, err)

	for _, token := range []string{"garbage", forged, customerToken} {
		_, err := resolver.ResolveAdmin(context.Background(), token)
		require.ErrorIs(t, err, ErrUnauthenticated, "token %q", token)
	}
}

func TestResolveAdminFromClaims(t *testing.T) {
	resolver, tm := newTestResolver(&stubAdminLookup{}, &stubCustomerLookup{})

	token, _, err := tm.IssueAdmin(testAdmin())
	require.NoError(t, err)

	session, err := resolver.ResolveAdmin(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "adm-1", session.ID)
	require.Equal(t, "alice", session.Username)
	require.Equal(t, domain.AdminRoleStaff, session.Role)
	require.Equal(t, []string{"view_orders"}, session.Permissions)

	// Idempotent: the same unexpired token resolves to the same identity.
	again, err := resolver.ResolveAdmin(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, session, again)
}

func TestResolveAdminLiveRefreshesFromStore(t *testing.T) {
	stored := testAdmin()
	stored.Role = domain.AdminRoleManager
	stored.Permissions = []string{"view_orders", "manage_orders"}
	lookup := &stubAdminLookup{admin: stored}
	resolver, tm := newTestResolver(lookup, &stubCustomerLookup{})

	// Token minted before the role change carries stale claims.
	token, _, err := tm.IssueAdmin(testAdmin())
	require.NoError(t, err)

	session, err := resolver.ResolveAdminLive(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, domain.AdminRoleManager, session.Role)
	require.Equal(t, []string{"view_orders", "manage_orders"}, session.Permissions)
	require.Equal(t, 1, lookup.calls)
}

func TestResolveAdminLiveInactive(t *testing.T) {
	deactivated := testAdmin()
	deactivated.Active = false
	resolver, tm := newTestResolver(&stubAdminLookup{admin: deactivated}, &stubCustomerLookup{})

	token, _, err := tm.IssueAdmin(testAdmin())
	require.NoError(t, err)

	_, err = resolver.ResolveAdminLive(context.Background(), token)
	require.ErrorIs(t, err, ErrInactive)
}

func TestResolveAdminLiveNotFound(t *testing.T) {
	resolver, tm := newTestResolver(&stubAdminLookup{err: pgx.ErrNoRows}, &stubCustomerLookup{})

	token, _, err := tm.IssueAdmin(testAdmin())
	require.NoError(t, err)

	_, err = resolver.ResolveAdminLive(context.Background(), token)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolveAdminLiveStoreFailureFailsClosed(t *testing.T) {
	resolver, tm := newTestResolver(&stubAdminLookup{err: errors.New("connection refused")}, &stubCustomerLookup{})

	token, _, err := tm.IssueAdmin(testAdmin())
	require.NoError(t, err)

	_, err = resolver.ResolveAdminLive(context.Background(), token)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveCustomer(t *testing.T) {
	customer := &domain.Customer{ID: "cust-1", Phone: "+15551234567"}
	resolver, tm := newTestResolver(&stubAdminLookup{}, &stubCustomerLookup{customer: customer})

	token, _, err := tm.IssueCustomer("cust-1")
	require.NoError(t, err)

	session, err := resolver.ResolveCustomer(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	require.Equal(t, "cust-1", session.ID)
	require.Equal(t, customer, session.Customer)
}

func TestResolveCustomerMissingRecord(t *testing.T) {
	resolver, tm := newTestResolver(&stubAdminLookup{}, &stubCustomerLookup{err: pgx.ErrNoRows})

	token, _, err := tm.IssueCustomer("cust-gone")
	require.NoError(t, err)

	_, err = resolver.ResolveCustomer(context.Background(), "Bearer "+token)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolveCustomerBadHeader(t *testing.T) {
	resolver, tm := newTestResolver(&stubAdminLookup{}, &stubCustomerLookup{})

	token, _, err := tm.IssueCustomer("cust-1")
	require.NoError(t, err)

	for _, header := range []string{"", token, "Basic " + token} {
		_, err := resolver.ResolveCustomer(context.Background(), header)
		require.ErrorIs(t, err, ErrUnauthenticated, "header %q", header)
	}
}
