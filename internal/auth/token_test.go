package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-admin/internal/domain"
)

func testAdmin() *domain.Admin {
	return &domain.Admin{
		ID:          "adm-1",
		Username:    "alice",
		Role:        domain.AdminRoleStaff,
		Permissions: []string{"view_orders"},
		Active:      true,
	}
}

func TestIssueAndParseAdminToken(t *testing.T) {
	issued := time.Now()
	tm := NewTokenManager("secret", 168, 720)

	token, exp, err := tm.IssueAdmin(testAdmin())
	require.NoError(t, err)
	require.WithinDuration(t, issued.Add(7*24*time.Hour), exp, 2*time.Second)

	// Verify one second later.
	tm.WithClock(func() time.Time { return issued.Add(time.Second) })
	claims, err := tm.ParseAdmin(token)
	require.NoError(t, err)
	require.Equal(t, "adm-1", claims.Subject)
	require.Equal(t, "alice", claims.Username)
	require.NotNil(t, claims.Role)
	require.Equal(t, domain.AdminRoleStaff, *claims.Role)
	require.Equal(t, []string{"view_orders"}, claims.Permissions)
	require.Equal(t, domain.TokenKindAdmin, claims.Kind)
}

func TestParseAdminTokenExpired(t *testing.T) {
	issued := time.Now()
	tm := NewTokenManager("secret", 168, 720)

	token, _, err := tm.IssueAdmin(testAdmin())
	require.NoError(t, err)

	// Advance the clock past the 7 day TTL.
	tm.WithClock(func() time.Time { return issued.Add(7*24*time.Hour + time.Minute) })
	_, err = tm.ParseAdmin(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestParseAdminTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", 168, 720)
	other := NewTokenManager("secret-b", 168, 720)

	token, _, err := tm.IssueAdmin(testAdmin())
	require.NoError(t, err)

	_, err = other.ParseAdmin(token)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestParseRejectsWrongTokenKind(t *testing.T) {
	tm := NewTokenManager("secret", 168, 720)

	customerToken, _, err := tm.IssueCustomer("cust-1")
	require.NoError(t, err)
	_, err = tm.ParseAdmin(customerToken)
	require.ErrorIs(t, err, ErrWrongTokenKind)

	adminToken, _, err := tm.IssueAdmin(testAdmin())
	require.NoError(t, err)
	_, err = tm.ParseCustomer(adminToken)
	require.ErrorIs(t, err, ErrWrongTokenKind)
}

func TestParseMalformedToken(t *testing.T) {
	tm := NewTokenManager("secret", 168, 720)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := tm.ParseAdmin(token)
		require.ErrorIs(t, err, ErrMalformed, "token %q", token)
	}
}

func TestIssueRequiresSubject(t *testing.T) {
	tm := NewTokenManager("secret", 168, 720)

	_, _, err := tm.IssueAdmin(&domain.Admin{})
	require.Error(t, err)

	_, _, err = tm.IssueCustomer("")
	require.Error(t, err)
}

func TestIssueCustomerRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 168, 720)

	token, _, err := tm.IssueCustomer("cust-9")
	require.NoError(t, err)

	claims, err := tm.ParseCustomer(token)
	require.NoError(t, err)
	require.Equal(t, "cust-9", claims.Subject)
	require.Equal(t, domain.TokenKindCustomer, claims.Kind)
	require.Empty(t, claims.Permissions)
	require.Nil(t, claims.Role)
}
