package dto

import (
	"time"

	"github.com/spec-kit/catalog-admin/internal/domain"
)

// AdminLoginRequest payload for POST /login.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminResponse is the public view of an admin identity. Never carries
// the password hash or raw token claims.
type AdminResponse struct {
	ID          string           `json:"id"`
	Username    string           `json:"username"`
	Role        domain.AdminRole `json:"role"`
	Permissions []string         `json:"permissions"`
}

// OTPRequestPayload payload for POST /customer/otp/request.
type OTPRequestPayload struct {
	Phone string `json:"phone"`
}

// OTPVerifyPayload payload for POST /customer/otp/verify.
type OTPVerifyPayload struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// CustomerResponse is the public view of a customer profile.
type CustomerResponse struct {
	ID    string `json:"id"`
	Phone string `json:"phone"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// AuthResponse standard response for token-issuing endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewAdminResponse maps a domain admin to its public view.
func NewAdminResponse(admin *domain.Admin) AdminResponse {
	perms := admin.Permissions
	if perms == nil {
		perms = []string{}
	}
	return AdminResponse{
		ID:          admin.ID,
		Username:    admin.Username,
		Role:        admin.Role,
		Permissions: perms,
	}
}

// NewCustomerResponse maps a domain customer to its public view.
func NewCustomerResponse(customer *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:    customer.ID,
		Phone: customer.Phone,
		Name:  customer.Name,
		Email: customer.Email,
	}
}
