package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/car-rental-service/internal/domain"
	"github.com/spec-kit/car-rental-service/internal/repository"
	apperrors "github.com/spec-kit/car-rental-service/pkg/util"
)

const accountKey = "auth_account"

// Middleware validates bearer tokens and loads the caller's account. The
// account is re-read on every request so role and verification state are
// current, not whatever the token was minted with.
type Middleware struct {
	tokens   *TokenManager
	accounts repository.AccountRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, accounts repository.AccountRepository) *Middleware {
	return &Middleware{tokens: tokens, accounts: accounts}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	if header == "" {
		return apperrors.NewUnauthorized("not authorized")
	}

	// The reference clients send the raw token; a Bearer prefix is optional.
	token := header
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		token = header[7:]
	}

	accountID, err := m.tokens.Validate(token)
	if err != nil {
		return apperrors.NewUnauthorized("not authorized - invalid token")
	}

	account, err := m.accounts.GetByID(c.Context(), accountID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("User not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(accountKey, account)
	return c.Next()
}

// AccountFromContext retrieves the authenticated account.
func AccountFromContext(c *fiber.Ctx) (*domain.Account, bool) {
	val := c.Locals(accountKey)
	if val == nil {
		return nil, false
	}
	account, ok := val.(*domain.Account)
	return account, ok
}
