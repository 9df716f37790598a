package domain

import "time"

// TokenKind differentiates admin vs customer tokens.
type TokenKind string

const (
	TokenKindAdmin    TokenKind = "ADMIN"
	TokenKindCustomer TokenKind = "CUSTOMER"
)

// OTPCode is a pending one-time code bound to a customer phone number.
type OTPCode struct {
	Phone     string
	Code      string
	ExpiresAt time.Time
}
