package model

import "time"

// Role classifies account capabilities.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
	RoleDefault  Role = "default"
)

// User represents a registered storefront account.
type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
}
