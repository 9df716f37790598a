package domain

import "time"

// AdminRole enumerates back-office operator roles.
type AdminRole string

const (
	AdminRoleAdmin   AdminRole = "admin"
	AdminRoleManager AdminRole = "manager"
	AdminRoleStaff   AdminRole = "staff"
)

// Admin models a back-office operator account.
type Admin struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         AdminRole
	Permissions  []string
	Active       bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
