package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/car-rental-service/internal/api/dto"
	"github.com/spec-kit/car-rental-service/internal/auth"
	"github.com/spec-kit/car-rental-service/internal/service"
)

// AccountsHandler exposes the authentication and recovery endpoints.
type AccountsHandler struct {
	auth *service.AuthService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(authService *service.AuthService) *AccountsHandler {
	return &AccountsHandler{auth: authService}
}

// SendOTP handles POST /api/user/send-otp.
func (h *AccountsHandler) SendOTP(c *fiber.Ctx) error {
	var req dto.SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload")
	}

	userID, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return mapServiceError(err)
	}

	return ok(c, http.StatusOK, fiber.Map{
		"message": "OTP sent to your email.",
		"userId":  userID,
	})
}

// VerifyOTP handles POST /api/user/verify-otp.
func (h *AccountsHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload")
	}

	accountID := req.UserID
	if accountID == "" {
		// Older clients correlate by email instead of the id from send-otp.
		if req.Email == "" {
			return badRequest("userId or email required")
		}
		var err error
		accountID, err = h.auth.ResolveAccountID(c.Context(), req.Email)
		if err != nil {
			return mapServiceError(err)
		}
	}

	token, err := h.auth.VerifyRegistration(c.Context(), accountID, req.OTP)
	if err != nil {
		return mapServiceError(err)
	}

	return ok(c, http.StatusOK, fiber.Map{"token": token})
}

// Login handles POST /api/user/login.
func (h *AccountsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest("email and password required")
	}

	token, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return mapServiceError(err)
	}

	return ok(c, http.StatusOK, fiber.Map{"token": token})
}

// ResendOTP handles POST /api/user/resend-otp.
func (h *AccountsHandler) ResendOTP(c *fiber.Ctx) error {
	var req dto.EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload")
	}
	if req.Email == "" {
		return badRequest("email required")
	}

	if err := h.auth.ResendCode(c.Context(), req.Email); err != nil {
		return mapServiceError(err)
	}
	return ok(c, http.StatusOK, fiber.Map{"message": "OTP resent."})
}

// ForgotPassword handles POST /api/user/forgot-password.
func (h *AccountsHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload")
	}
	if req.Email == "" {
		return badRequest("email required")
	}

	if err := h.auth.ForgotPassword(c.Context(), req.Email); err != nil {
		return mapServiceError(err)
	}
	return ok(c, http.StatusOK, fiber.Map{"message": "OTP sent."})
}

// ResetPassword handles POST /api/user/reset-password.
func (h *AccountsHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload")
	}

	if err := h.auth.ResetPassword(c.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		return mapServiceError(err)
	}
	return ok(c, http.StatusOK, fiber.Map{"message": "Password reset successful."})
}

// Register handles POST /api/user/register, the pre-OTP path that creates a
// verified account immediately.
func (h *AccountsHandler) Register(c *fiber.Ctx) error {
	var req dto.SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload")
	}

	token, err := h.auth.RegisterLegacy(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return mapServiceError(err)
	}
	return ok(c, http.StatusCreated, fiber.Map{"token": token})
}

// Data handles GET /api/user/data.
func (h *AccountsHandler) Data(c *fiber.Ctx) error {
	account, okAuth := auth.AccountFromContext(c)
	if !okAuth {
		return badRequest("missing account context")
	}
	return ok(c, http.StatusOK, fiber.Map{"user": dto.NewAccountResponse(account)})
}
