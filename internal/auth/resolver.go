package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-admin/internal/domain"
)

// AdminCookieName is the cookie carrier for admin sessions. Customer
// sessions ride the Authorization bearer header instead; the two carriers
// are never interchangeable.
const AdminCookieName = "admin-token"

// lookupTimeout bounds the live identity re-fetch so a slow store cannot
// hang a request. On timeout the session is treated as unauthenticated.
const lookupTimeout = 3 * time.Second

// AdminLookup is the narrow identity-store contract the resolver needs.
type AdminLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
}

// CustomerLookup resolves customer records referenced by bearer tokens.
type CustomerLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

// AdminSession is a resolved admin identity. ID, Username, Role and
// Permissions come from token claims; the live-lookup path replaces them
// with current store values.
type AdminSession struct {
	ID          string
	Username    string
	Role        domain.AdminRole
	Permissions []string
}

// HasPermission reports whether the resolved permission set contains perm.
func (s *AdminSession) HasPermission(perm string) bool {
	for _, p := range s.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// CustomerSession is a resolved customer identity.
type CustomerSession struct {
	ID       string
	Customer *domain.Customer
}

// SessionResolver recovers verified identities from credential carriers.
// Every token-level failure collapses to ErrUnauthenticated so callers
// cannot distinguish expired from forged from absent.
type SessionResolver struct {
	tokens    *TokenManager
	admins    AdminLookup
	customers CustomerLookup
	logger    *zap.Logger
}

// NewSessionResolver constructs a resolver.
func NewSessionResolver(tokens *TokenManager, admins AdminLookup, customers CustomerLookup, logger *zap.Logger) *SessionResolver {
	return &SessionResolver{tokens: tokens, admins: admins, customers: customers, logger: logger}
}

// ResolveAdmin verifies the admin cookie value against embedded claims
// only. Cheap, no I/O; suitable for coarse route gating where staleness
// relative to administrative changes is acceptable.
func (r *SessionResolver) ResolveAdmin(_ context.Context, cookieValue string) (*AdminSession, error) {
	if cookieValue == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := r.tokens.ParseAdmin(cookieValue)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	session := &AdminSession{
		ID:          claims.Subject,
		Username:    claims.Username,
		Permissions: claims.Permissions,
	}
	if claims.Role != nil {
		session.Role = *claims.Role
	}
	return session, nil
}

// ResolveAdminLive verifies the cookie and then re-fetches the admin
// record to confirm it is still active and to pick up current role and
// permissions. Required before any permission-gated operation, since
// token claims can be stale relative to deactivation or role changes.
// Store failures fail closed.
func (r *SessionResolver) ResolveAdminLive(ctx context.Context, cookieValue string) (*AdminSession, error) {
	session, err := r.ResolveAdmin(ctx, cookieValue)
	if err != nil {
		return nil, err
	}

	lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	admin, err := r.admins.GetByID(lookupCtx, session.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		// Storage failure, not an authentication failure. Logged so it is
		// diagnosable, but the request is still treated as unauthenticated.
		r.logger.Error("admin identity lookup failed", zap.Error(err))
		return nil, ErrUnauthenticated
	}
	if !admin.Active {
		return nil, ErrInactive
	}

	return &AdminSession{
		ID:          admin.ID,
		Username:    admin.Username,
		Role:        admin.Role,
		Permissions: admin.Permissions,
	}, nil
}

// ResolveCustomer verifies a bearer header value and loads the referenced
// customer record. Returns ErrNotFound when the token verifies but the
// record no longer exists.
func (r *SessionResolver) ResolveCustomer(ctx context.Context, bearerValue string) (*CustomerSession, error) {
	token := stripBearer(bearerValue)
	if token == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := r.tokens.ParseCustomer(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	customer, err := r.customers.GetByID(lookupCtx, claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("customer identity lookup failed", zap.Error(err))
		return nil, ErrUnauthenticated
	}

	return &CustomerSession{ID: customer.ID, Customer: customer}, nil
}

func stripBearer(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
