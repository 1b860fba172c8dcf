package notification

import "context"

// Purpose distinguishes the message copy sent with a one-time code.
type Purpose string

const (
	PurposeVerification  Purpose = "verification"
	PurposePasswordReset Purpose = "password_reset"
)

// Sender delivers one-time codes to an email address. Implementations are
// injected into the auth service so tests can substitute a mock.
type Sender interface {
	SendCode(ctx context.Context, email, code string, purpose Purpose) error
}
