package dto

import (
	"time"

	"github.com/spec-kit/car-rental-service/internal/domain"
)

// SendOTPRequest payload for OTP registration.
type SendOTPRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyOTPRequest payload for registration verification. UserID is the
// correlation key returned by send-otp; Email is accepted as a fallback for
// the older client.
type VerifyOTPRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	OTP    string `json:"otp"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmailRequest payload for resend-otp and forgot-password.
type EmailRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest payload for reset-password.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// AccountResponse is the public view of an account, without the password hash.
type AccountResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Image      string    `json:"image"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewAccountResponse maps a domain account to its public view.
func NewAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:         account.ID,
		Name:       account.Name,
		Email:      account.Email,
		Role:       string(account.Role),
		Image:      account.Image,
		IsVerified: account.IsVerified,
		CreatedAt:  account.CreatedAt,
	}
}
