package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/car-rental-service/internal/service"
	apperrors "github.com/spec-kit/car-rental-service/pkg/util"
)

// mapServiceError translates service sentinels into the DomainError shape
// rendered by the error middleware. Unknown errors collapse into a generic
// internal failure.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return apperrors.NewDomainError("VALIDATION_FAILED", "Fill all the fields.", http.StatusBadRequest, nil)
	case errors.Is(err, service.ErrWeakPassword):
		return apperrors.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters.", http.StatusBadRequest, nil)
	case errors.Is(err, service.ErrAlreadyExists):
		return apperrors.NewDomainError("ALREADY_EXISTS", "User already exists.", http.StatusConflict, nil)
	case errors.Is(err, service.ErrNotFound):
		return apperrors.NewDomainError("NOT_FOUND", "User not found.", http.StatusNotFound, nil)
	case errors.Is(err, service.ErrAlreadyVerified):
		return apperrors.NewDomainError("ALREADY_VERIFIED", "User already verified.", http.StatusConflict, nil)
	case errors.Is(err, service.ErrNotVerified):
		return apperrors.NewDomainError("NOT_VERIFIED", "Email not verified.", http.StatusForbidden,
			map[string]any{"needsVerification": true})
	case errors.Is(err, service.ErrInvalidCode):
		return apperrors.NewDomainError("INVALID_CODE", "Invalid OTP.", http.StatusBadRequest, nil)
	case errors.Is(err, service.ErrCodeExpired):
		return apperrors.NewDomainError("CODE_EXPIRED", "OTP expired.", http.StatusBadRequest, nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		return apperrors.NewDomainError("INVALID_CREDENTIALS", "Invalid credentials.", http.StatusUnauthorized, nil)
	case errors.Is(err, service.ErrNotificationFailed):
		return apperrors.NewDomainError("NOTIFICATION_FAILED", "Failed to send OTP.", http.StatusBadGateway, nil)
	case errors.Is(err, service.ErrForbidden):
		return apperrors.NewForbidden("Unauthorized")
	case errors.Is(err, service.ErrCarUnavailable):
		return apperrors.NewDomainError("CAR_UNAVAILABLE", "Car is not available.", http.StatusConflict, nil)
	default:
		return apperrors.MapError(err)
	}
}

// ok renders a success response in the `{success: true, ...}` shape shared
// by every endpoint.
func ok(c *fiber.Ctx, status int, payload fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

func badRequest(message string) error {
	return apperrors.NewValidationError(message, nil)
}
