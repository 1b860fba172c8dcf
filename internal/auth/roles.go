package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/car-rental-service/internal/domain"
	apperrors "github.com/spec-kit/car-rental-service/pkg/util"
)

// RequireOwner ensures the authenticated account holds the owner role.
func RequireOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		account, ok := AccountFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("not authorized")
		}
		if account.Role != domain.RoleOwner {
			return apperrors.NewForbidden("owner role required")
		}
		return c.Next()
	}
}
