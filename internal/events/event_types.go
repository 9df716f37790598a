package events

import (
	"time"

	"github.com/spec-kit/catalog-admin/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAdminLoggedIn        EventType = "admin_logged_in"
	EventCustomerOTPRequested EventType = "customer_otp_requested"
	EventCustomerVerified     EventType = "customer_verified"
	EventOrderStatusChanged   EventType = "order_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AdminLoggedInPayload payload.
type AdminLoggedInPayload struct {
	AdminID  string           `json:"admin_id"`
	Username string           `json:"username"`
	Role     domain.AdminRole `json:"role"`
}

// CustomerOTPRequestedPayload payload. The code itself is deliberately
// absent; only the delivery target travels on the event.
type CustomerOTPRequestedPayload struct {
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CustomerVerifiedPayload payload.
type CustomerVerifiedPayload struct {
	CustomerID string `json:"customer_id"`
	Phone      string `json:"phone"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OrderID   string             `json:"order_id"`
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
	AdminID   string             `json:"admin_id"`
}
