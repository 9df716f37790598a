package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/catalog-admin/internal/domain"
)

// TokenManager handles issuing and validating JWT tokens for both
// identity kinds. Admin and customer tokens share the signing secret but
// carry a kind discriminant checked on parse.
type TokenManager struct {
	secret      []byte
	adminTTL    time.Duration
	customerTTL time.Duration
	now         func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, adminTTLHours, customerTTLHours int) *TokenManager {
	if adminTTLHours <= 0 {
		adminTTLHours = 168
	}
	if customerTTLHours <= 0 {
		customerTTLHours = 720
	}
	return &TokenManager{
		secret:      []byte(secret),
		adminTTL:    time.Duration(adminTTLHours) * time.Hour,
		customerTTL: time.Duration(customerTTLHours) * time.Hour,
		now:         time.Now,
	}
}

// WithClock overrides the manager clock. Used by tests to advance time
// past token expiry.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	tm.now = now
	return tm
}

// Claims describes the JWT payload for both token kinds. Username, Role
// and Permissions are populated only on admin tokens.
type Claims struct {
	Kind        domain.TokenKind  `json:"kind"`
	Username    string            `json:"username,omitempty"`
	Role        *domain.AdminRole `json:"role,omitempty"`
	Permissions []string          `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// IssueAdmin signs a token for an admin session.
func (tm *TokenManager) IssueAdmin(admin *domain.Admin) (string, time.Time, error) {
	if admin == nil || admin.ID == "" {
		return "", time.Time{}, errors.New("admin subject required")
	}
	role := admin.Role
	return tm.sign(&Claims{
		Kind:        domain.TokenKindAdmin,
		Username:    admin.Username,
		Role:        &role,
		Permissions: admin.Permissions,
	}, admin.ID, tm.adminTTL)
}

// IssueCustomer signs a token for an OTP-verified customer session.
func (tm *TokenManager) IssueCustomer(customerID string) (string, time.Time, error) {
	if customerID == "" {
		return "", time.Time{}, errors.New("customer subject required")
	}
	return tm.sign(&Claims{Kind: domain.TokenKindCustomer}, customerID, tm.customerTTL)
}

func (tm *TokenManager) sign(claims *Claims, subjectID string, ttl time.Duration) (string, time.Time, error) {
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseAdmin validates the token and returns its claims, rejecting
// customer tokens with ErrWrongTokenKind.
func (tm *TokenManager) ParseAdmin(tokenStr string) (*Claims, error) {
	return tm.parse(tokenStr, domain.TokenKindAdmin)
}

// ParseCustomer validates the token and returns its claims, rejecting
// admin tokens with ErrWrongTokenKind.
func (tm *TokenManager) ParseCustomer(tokenStr string) (*Claims, error) {
	return tm.parse(tokenStr, domain.TokenKindCustomer)
}

func (tm *TokenManager) parse(tokenStr string, kind domain.TokenKind) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidSignature
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return tm.now() }))
	if err != nil {
		return nil, mapTokenError(err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformed
	}
	if claims.Kind != kind {
		return nil, ErrWrongTokenKind
	}
	if claims.Subject == "" {
		return nil, ErrMalformed
	}
	return claims, nil
}

// mapTokenError translates golang-jwt errors into the local taxonomy.
// Expiry takes precedence so an expired token is never reported as forged.
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrInvalidSignature):
		return ErrInvalidSignature
	default:
		return ErrMalformed
	}
}
