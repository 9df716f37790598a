package domain

import "time"

// Customer is a shopper account authenticated through the OTP flow.
type Customer struct {
	ID        string
	Phone     string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
