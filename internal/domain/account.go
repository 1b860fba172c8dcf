package domain

import (
	"strings"
	"time"
)

// Role controls what an account is allowed to do in the marketplace.
type Role string

const (
	RoleUser  Role = "user"
	RoleOwner Role = "owner"
)

// Account is the domain model for marketplace users and car owners.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Image        string
	IsVerified   bool
	OTPCode      *string
	OTPExpiresAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail lowers and trims an email address. Applied at every
// boundary that reads or writes an email so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
