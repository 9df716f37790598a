package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-admin/internal/auth"
	"github.com/spec-kit/catalog-admin/internal/config"
	"github.com/spec-kit/catalog-admin/internal/domain"
	"github.com/spec-kit/catalog-admin/internal/events"
	"github.com/spec-kit/catalog-admin/internal/repository"
)

// AuthService coordinates admin login and the customer OTP flow.
type AuthService struct {
	admins     repository.AdminRepository
	customers  repository.CustomerRepository
	otps       repository.OTPRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	logger     *zap.Logger
	otpTTL     time.Duration
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	AdminRepo    repository.AdminRepository
	CustomerRepo repository.CustomerRepository
	OTPRepo      repository.OTPRepository
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		admins:     deps.AdminRepo,
		customers:  deps.CustomerRepo,
		otps:       deps.OTPRepo,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AdminTokenTTLHours, cfg.Auth.CustomerTokenTTLHours),
		logger:     deps.Logger,
		otpTTL:     cfg.Auth.OTPTTL(),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// LoginAdmin authenticates an admin by username and password and issues a
// cookie-carried token. Every failure collapses to a single error so the
// response cannot reveal whether the username exists, the password was
// wrong, or the account is deactivated.
func (s *AuthService) LoginAdmin(ctx context.Context, username, password string) (*domain.Admin, string, time.Time, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error("admin lookup failed", zap.Error(err))
		}
		return nil, "", time.Time{}, auth.ErrUnauthenticated
	}
	if !admin.Active {
		return nil, "", time.Time{}, auth.ErrUnauthenticated
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, auth.ErrUnauthenticated
	}

	token, exp, err := s.tokenMgr.IssueAdmin(admin)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if err := s.admins.UpdateLastLogin(ctx, admin.ID); err != nil {
		s.logger.Warn("failed to stamp last login", zap.String("admin_id", admin.ID), zap.Error(err))
	}

	s.publish(ctx, events.EventAdminLoggedIn, events.AdminLoggedInPayload{
		AdminID:  admin.ID,
		Username: admin.Username,
		Role:     admin.Role,
	})

	return admin, token, exp, nil
}

// RequestCustomerOTP generates a one-time code for the phone number and
// stores it with its expiry. Delivery happens out of band through the
// notification pipeline; the code never appears in logs or events.
func (s *AuthService) RequestCustomerOTP(ctx context.Context, phone string) (time.Time, error) {
	code, err := auth.GenerateCode()
	if err != nil {
		return time.Time{}, err
	}

	expiresAt := time.Now().Add(s.otpTTL)
	if err := s.otps.Save(ctx, &domain.OTPCode{Phone: phone, Code: code, ExpiresAt: expiresAt}); err != nil {
		return time.Time{}, err
	}

	s.publish(ctx, events.EventCustomerOTPRequested, events.CustomerOTPRequestedPayload{
		Phone:     phone,
		ExpiresAt: expiresAt,
	})

	return expiresAt, nil
}

// VerifyCustomerOTP checks the presented code, creating the customer
// record on first verification, and issues a bearer token. The stored
// code is consumed only on success; a failed attempt leaves it in place
// until its expiry so a mistyped code does not force a fresh request.
func (s *AuthService) VerifyCustomerOTP(ctx context.Context, phone, presented string) (*domain.Customer, string, time.Time, error) {
	stored, err := s.otps.Get(ctx, phone)
	if err != nil {
		if !errors.Is(err, repository.ErrOTPNotFound) {
			s.logger.Error("otp lookup failed", zap.Error(err))
		}
		return nil, "", time.Time{}, auth.ErrUnauthenticated
	}

	if !auth.VerifyCode(presented, stored.Code, stored.ExpiresAt) {
		return nil, "", time.Time{}, auth.ErrUnauthenticated
	}

	if err := s.otps.Delete(ctx, phone); err != nil {
		s.logger.Warn("failed to consume otp code", zap.Error(err))
	}

	customer, err := s.customers.GetByPhone(ctx, phone)
	if errors.Is(err, pgx.ErrNoRows) {
		customer = &domain.Customer{Phone: phone}
		if err := s.customers.Create(ctx, customer); err != nil {
			return nil, "", time.Time{}, err
		}
		s.publish(ctx, events.EventCustomerVerified, events.CustomerVerifiedPayload{
			CustomerID: customer.ID,
			Phone:      phone,
		})
	} else if err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.IssueCustomer(customer.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return customer, token, exp, nil
}

// RegisterAdmin creates a new admin account with a hashed secret.
func (s *AuthService) RegisterAdmin(ctx context.Context, admin *domain.Admin, password string) error {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	admin.PasswordHash = hash
	if admin.Role == "" {
		admin.Role = domain.AdminRoleStaff
	}
	admin.Active = true
	return s.admins.Create(ctx, admin)
}

// TokenManager exposes the underlying token manager for resolver wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
