package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/car-rental-service/internal/config"
	"github.com/spec-kit/car-rental-service/internal/notification"
)

func newTestAuthService(repo *fakeAccountRepo, sender *fakeSender, codes ...string) *AuthService {
	if len(codes) == 0 {
		codes = []string{"123456"}
	}
	svc := NewAuthService(config.AuthConfig{
		JWTSecret:     "test-secret",
		BcryptCost:    4,
		OTPTTLMinutes: 5,
	}, AuthDependencies{
		AccountRepo: repo,
		Sender:      sender,
		Codes:       &stubCodes{codes: codes},
	})
	return svc
}

func TestRegisterAndVerify(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAccountRepo()
	sender := &fakeSender{}
	svc := newTestAuthService(repo, sender)

	userID, err := svc.Register(ctx, "Ana", "ana@x.com", "longpassword1")
	require.NoError(t, err)
	require.NotEmpty(t, userID)

	require.Len(t, sender.sent, 1)
	require.Equal(t, "ana@x.com", sender.sent[0].Email)
	require.Equal(t, "123456", sender.sent[0].Code)
	require.Equal(t, notification.PurposeVerification, sender.sent[0].Purpose)

	token, err := svc.VerifyRegistration(ctx, userID, "123456")
	require.NoError(t, err)

	gotID, err := svc.TokenManager().Validate(token)
	require.NoError(t, err)
	require.Equal(t, userID, gotID)

	account, err := svc.GetAccount(ctx, userID)
	require.NoError(t, err)
	require.True(t, account.IsVerified)
	require.Nil(t, account.OTPCode)
	require.Nil(t, account.OTPExpiresAt)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestAuthService(newFakeAccountRepo(), &fakeSender{})

	_, err := svc.Register(ctx, "", "ana@x.com", "longpassword1")
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, "Ana", "ana@x.com", "short")
	require.ErrorIs(t, err, ErrValidation)
}

func TestRegister_VerifiedEmailBlocked(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAccountRepo()
	svc := newTestAuthService(repo, &fakeSender{}, "123456", "654321")

	userID, err := svc.Register(ctx, "Ana", "ana@x.com", "longpassword1")
	require.NoError(t, err)
	_, err = svc.VerifyRegistration(ctx, userID, "123456")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Impostor", "ANA@x.com ", "otherpassword")
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestRegister_UnverifiedIsRefreshedInPlace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAccountRepo()
	svc := newTestAuthService(repo, &fakeSender{}, "111111", "222222")

	firstID, err := svc.Register(ctx, "Ana", "ana@x.com", "longpassword1")
	require.NoError(t, err)

	secondID, err := svc.Register(ctx, "Ana Maria", "Ana@X.com", "newpassword9")
	require.NoError(t, err)
	require.Equal(t, firstID, secondID, "re-registration must keep the original account id")

	// Only the latest code verifies.
	_, err = svc.VerifyRegistration(ctx, firstID, "111111")
	require.ErrorIs(t, err, ErrInvalidCode)
	_, err = svc.VerifyRegistration(ctx, firstID, "222222")
	require.NoError(t, err)

	account, err := svc.GetAccount(ctx, firstID)
	require.NoError(t, err)
	require.Equal(t, "Ana Maria", account.Name)
}

func TestRegister_SendFailureKeepsCode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAccountRepo()
	sender := &fakeSender{fail: true}
	svc := newTestAuthService(repo, sender)

	userID, err := svc.Register(ctx, "Ana", "ana@x.com", "longpassword1")
	require.ErrorIs(t, err, ErrNotificationFailed)

	// The code stays persisted so the flow can continue out-of-band.
	account, err := repo.GetByID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, account.OTPCode)
	require.Equal(t, "123456", *account.OTPCode)
}

func TestVerifyRegistration_Failures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAccountRepo()
	svc := newTestAuthService(repo, &fakeSender{})

	_, err := svc.VerifyRegistration(ctx, "missing-id", "123456")
	require.ErrorIs(t, err, ErrNotFound)

	userID, err := svc.Register(ctx, "Ana", "ana@x.com", "longpassword1")
	require.NoError(t, err)

	_, err = svc.VerifyRegistration(ctx, userID, "999999")
	require.ErrorIs(t, err, ErrInvalidCode)

	account, err := svc.GetAccount(ctx, userID)
	require.NoError(t, err)
	require.False(t, account.IsVerified, "failed verification must not verify the account")

	_, err = svc.VerifyRegistration(ctx, userID, "123456")
	require.NoError(t, err)

	_, err = svc.VerifyRegistration(ctx, userID, "123456")
	require.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestVerifyRegistration_Expired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAccountRepo()
	svc := newTestAuthService(repo, &fakeSender{})

	userID, err := svc.Register(ctx, "Ana", "ana@x.com", "longpassword1")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(5*time.Minute + time.Second) }

	_, err = svc.VerifyRegistration(ctx, userID, "123456")
	require.ErrorIs(t, err, ErrCodeExpired)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAccountRepo()
	svc := newTestAuthService(repo, &fakeSender{})

	userID, err := svc.Register(ctx, "Ana", "ana@x.com", "longpassword1")
	require.NoError(t, err)

	// Unverified login never reveals password correctness.
	_, err = svc.Login(ctx, "ana@x.com", "longpassword1")
	require.ErrorIs(t, err, ErrNotVerified)
	_, err = svc.Login(ctx, "ana@x.com", "wrongpassword")
	require.ErrorIs(t, err, ErrNotVerified)

	_, err = svc.VerifyRegistration(ctx, userID, "123456")
	require.NoError(t, err)

	// Email lookup is case-insensitive and trimmed.
	token, err := svc.Login(ctx, " Ana@X.com ", "longpassword1")
	require.NoError(t, err)
	gotID, err := svc.TokenManager().Validate(token)
	require.NoError(t, err)
	require.Equal(t, userID, gotID)

	_, err = svc.Login(ctx, "ana@x.com", "wrongpassword")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@x.com", "longpassword1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResendCode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAccountRepo()
	sender := &fakeSender{}
	svc := newTestAuthService(repo, sender, "111111", "222222")

	require.ErrorIs(t, svc.ResendCode(ctx, "nobody@x.com"), ErrNotFound)

	userID, err := svc.Register(ctx, "Ana", "ana@x.com", "longpassword1")
	require.NoError(t, err)

	require.NoError(t, svc.ResendCode(ctx, "ana@x.com"))
	require.Len(t, sender.sent, 2)
	require.Equal(t, "222222", sender.sent[1].Code)

	// Resend invalidates the previous code.
	_, err = svc.VerifyRegistration(ctx, userID, "111111")
	require.ErrorIs(t, err, ErrInvalidCode)
	_, err = svc.VerifyRegistration(ctx, userID, "222222")
	require.NoError(t, err)

	require.ErrorIs(t, svc.ResendCode(ctx, "ana@x.com"), ErrAlreadyVerified)
}

func TestForgotAndResetPassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAccountRepo()
	sender := &fakeSender{}
	svc := newTestAuthService(repo, sender, "123456", "654321")

	userID, err := svc.Register(ctx, "Ana", "ana@x.com", "longpassword1")
	require.NoError(t, err)
	_, err = svc.VerifyRegistration(ctx, userID, "123456")
	require.NoError(t, err)

	require.ErrorIs(t, svc.ForgotPassword(ctx, "nobody@x.com"), ErrNotFound)
	require.NoError(t, svc.ForgotPassword(ctx, "ana@x.com"))
	require.Equal(t, notification.PurposePasswordReset, sender.sent[len(sender.sent)-1].Purpose)

	require.ErrorIs(t, svc.ResetPassword(ctx, "ana@x.com", "654321", "short"), ErrWeakPassword)
	require.NoError(t, svc.ResetPassword(ctx, "ana@x.com", "654321", "newpassword1"))

	_, err = svc.Login(ctx, "ana@x.com", "longpassword1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "ana@x.com", "newpassword1")
	require.NoError(t, err)

	// The code is cleared on use; replaying it fails.
	require.ErrorIs(t, svc.ResetPassword(ctx, "ana@x.com", "654321", "anotherpass1"), ErrInvalidCode)
}

func TestResetPassword_NoAccountEnumeration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAccountRepo()
	svc := newTestAuthService(repo, &fakeSender{})

	userID, err := svc.Register(ctx, "Ana", "ana@x.com", "longpassword1")
	require.NoError(t, err)
	_ = userID

	// Unknown email and wrong code are indistinguishable.
	require.ErrorIs(t, svc.ResetPassword(ctx, "nobody@x.com", "123456", "newpassword1"), ErrInvalidCode)
	require.ErrorIs(t, svc.ResetPassword(ctx, "ana@x.com", "999999", "newpassword1"), ErrInvalidCode)
}

func TestResetPassword_ExpiredCode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAccountRepo()
	svc := newTestAuthService(repo, &fakeSender{})

	_, err := svc.Register(ctx, "Ana", "ana@x.com", "longpassword1")
	require.NoError(t, err)
	require.NoError(t, svc.ForgotPassword(ctx, "ana@x.com"))

	svc.now = func() time.Time { return time.Now().Add(6 * time.Minute) }

	require.ErrorIs(t, svc.ResetPassword(ctx, "ana@x.com", "000000", "newpassword1"), ErrCodeExpired)
}

func TestRegisterLegacy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAccountRepo()
	svc := newTestAuthService(repo, &fakeSender{})

	token, err := svc.RegisterLegacy(ctx, "Ana", "ana@x.com", "longpassword1")
	require.NoError(t, err)

	userID, err := svc.TokenManager().Validate(token)
	require.NoError(t, err)

	account, err := svc.GetAccount(ctx, userID)
	require.NoError(t, err)
	require.True(t, account.IsVerified)

	_, err = svc.RegisterLegacy(ctx, "Ana", "ana@x.com", "longpassword1")
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestResolveAccountID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAccountRepo()
	svc := newTestAuthService(repo, &fakeSender{})

	userID, err := svc.Register(ctx, "Ana", "ana@x.com", "longpassword1")
	require.NoError(t, err)

	gotID, err := svc.ResolveAccountID(ctx, "Ana@X.com")
	require.NoError(t, err)
	require.Equal(t, userID, gotID)

	_, err = svc.ResolveAccountID(ctx, "nobody@x.com")
	require.ErrorIs(t, err, ErrNotFound)
}
