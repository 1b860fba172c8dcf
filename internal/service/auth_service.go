package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/car-rental-service/internal/auth"
	"github.com/spec-kit/car-rental-service/internal/config"
	"github.com/spec-kit/car-rental-service/internal/domain"
	"github.com/spec-kit/car-rental-service/internal/notification"
	"github.com/spec-kit/car-rental-service/internal/repository"
)

const minPasswordLength = 8

// AuthService coordinates registration, verification, login and password
// recovery. Each operation persists the pending code before the email goes
// out; a failed send leaves the code in place so a resend can pick up the
// flow without rollback.
type AuthService struct {
	accounts   repository.AccountRepository
	sender     notification.Sender
	tokens     *auth.TokenManager
	codes      auth.CodeGenerator
	bcryptCost int
	otpTTL     time.Duration
	now        func() time.Time
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	AccountRepo repository.AccountRepository
	Sender      notification.Sender
	Codes       auth.CodeGenerator
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	codes := deps.Codes
	if codes == nil {
		codes = auth.NewCodeGenerator()
	}
	return &AuthService{
		accounts:   deps.AccountRepo,
		sender:     deps.Sender,
		tokens:     auth.NewTokenManager(cfg.JWTSecret),
		codes:      codes,
		bcryptCost: cfg.BcryptCost,
		otpTTL:     cfg.OTPTTL(),
		now:        time.Now,
	}
}

// Register starts OTP registration: it upserts an unverified account with a
// fresh code and emails the code. The returned account id is the correlation
// key the client echoes back to VerifyRegistration.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	email = domain.NormalizeEmail(email)
	if name == "" || email == "" || password == "" || len(password) < minPasswordLength {
		return "", ErrValidation
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", err
	}
	code, err := s.codes.Generate()
	if err != nil {
		return "", err
	}
	expiry := s.now().Add(s.otpTTL)

	account := &domain.Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		OTPCode:      &code,
		OTPExpiresAt: &expiry,
	}
	if err := s.accounts.UpsertUnverified(ctx, account); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrAlreadyExists
		}
		return "", err
	}

	// Code is persisted at this point; a send failure is reported but not
	// rolled back, so a resend can reuse the stored state.
	if err := s.sender.SendCode(ctx, email, code, notification.PurposeVerification); err != nil {
		return account.ID, ErrNotificationFailed
	}
	return account.ID, nil
}

// VerifyRegistration checks the submitted code against the pending one and
// flips the account to verified. Verification is one-way: once set, the
// account can never be re-registered.
func (s *AuthService) VerifyRegistration(ctx context.Context, accountID, code string) (string, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}

	if account.IsVerified {
		return "", ErrAlreadyVerified
	}
	if account.OTPCode == nil || *account.OTPCode != code {
		return "", ErrInvalidCode
	}
	if account.OTPExpiresAt == nil || !s.now().Before(*account.OTPExpiresAt) {
		return "", ErrCodeExpired
	}

	if err := s.accounts.MarkVerified(ctx, account.ID); err != nil {
		return "", err
	}
	return s.tokens.Issue(account.ID)
}

// Login authenticates a verified account and issues a session token. The
// unverified branch does not compare the password, so it never reveals
// whether the password was correct.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	account, err := s.getByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if !account.IsVerified {
		return "", ErrNotVerified
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(account.ID)
}

// ResendCode replaces the pending registration code with a fresh one. The
// previous code stops working as soon as the new one is persisted.
func (s *AuthService) ResendCode(ctx context.Context, email string) error {
	account, err := s.getByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account.IsVerified {
		return ErrAlreadyVerified
	}
	return s.issueCode(ctx, account, notification.PurposeVerification)
}

// ForgotPassword issues a password-reset code. Verification state is not
// required; a reset code for an unverified account is allowed.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	account, err := s.getByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.issueCode(ctx, account, notification.PurposePasswordReset)
}

// ResetPassword replaces the password after checking the reset code. A
// missing account and a wrong code are indistinguishable to the caller so
// the endpoint cannot be used to enumerate accounts.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	account, err := s.getByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidCode
		}
		return err
	}
	if account.OTPCode == nil || *account.OTPCode != code {
		return ErrInvalidCode
	}
	if account.OTPExpiresAt == nil || !s.now().Before(*account.OTPExpiresAt) {
		return ErrCodeExpired
	}
	if len(newPassword) < minPasswordLength {
		return ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.accounts.ResetPassword(ctx, account.ID, hash)
}

// RegisterLegacy creates a verified account immediately, skipping the code
// flow. Kept for the pre-OTP client.
func (s *AuthService) RegisterLegacy(ctx context.Context, name, email, password string) (string, error) {
	email = domain.NormalizeEmail(email)
	if name == "" || email == "" || password == "" || len(password) < minPasswordLength {
		return "", ErrValidation
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return "", ErrAlreadyExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", err
	}
	account := &domain.Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsVerified:   true,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return "", err
	}
	return s.tokens.Issue(account.ID)
}

// ResolveAccountID maps an email to its account id for clients that still
// correlate verification by email instead of the id from Register.
func (s *AuthService) ResolveAccountID(ctx context.Context, email string) (string, error) {
	account, err := s.getByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return account.ID, nil
}

// GetAccount loads an account by id for the profile endpoint.
func (s *AuthService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) getByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

// issueCode persists a fresh code then sends it. Persist-before-send is the
// ordering the recovery flows rely on.
func (s *AuthService) issueCode(ctx context.Context, account *domain.Account, purpose notification.Purpose) error {
	code, err := s.codes.Generate()
	if err != nil {
		return err
	}
	expiry := s.now().Add(s.otpTTL)

	if err := s.accounts.RefreshCode(ctx, account.ID, code, expiry); err != nil {
		return err
	}
	if err := s.sender.SendCode(ctx, account.Email, code, purpose); err != nil {
		return ErrNotificationFailed
	}
	return nil
}
