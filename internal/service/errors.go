package service

import "errors"

// Domain errors surfaced by the service layer. Handlers map each one to a
// response code; anything not in this list is treated as an infrastructure
// failure and never leaks detail to the client.
var (
	ErrValidation         = errors.New("fill all the fields")
	ErrAlreadyExists      = errors.New("user already exists")
	ErrNotFound           = errors.New("user not found")
	ErrAlreadyVerified    = errors.New("user already verified")
	ErrNotVerified        = errors.New("email not verified")
	ErrInvalidCode        = errors.New("invalid OTP")
	ErrCodeExpired        = errors.New("OTP expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrNotificationFailed = errors.New("failed to send OTP")
	ErrForbidden          = errors.New("unauthorized")
	ErrCarUnavailable     = errors.New("car is not available")
)
