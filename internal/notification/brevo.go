package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spec-kit/car-rental-service/internal/config"
)

// BrevoMailer sends transactional OTP emails through the Brevo REST API.
type BrevoMailer struct {
	apiKey      string
	senderEmail string
	senderName  string
	baseURL     string
	client      *http.Client
}

// NewBrevoMailer builds a mailer from configuration.
func NewBrevoMailer(cfg config.MailConfig) *BrevoMailer {
	return &BrevoMailer{
		apiKey:      cfg.APIKey,
		senderEmail: cfg.SenderEmail,
		senderName:  cfg.SenderName,
		baseURL:     cfg.BaseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type mailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendRequest struct {
	Sender      mailAddress   `json:"sender"`
	To          []mailAddress `json:"to"`
	Subject     string        `json:"subject"`
	HTMLContent string        `json:"htmlContent"`
}

// SendCode delivers a one-time code with copy matching the purpose.
func (m *BrevoMailer) SendCode(ctx context.Context, email, code string, purpose Purpose) error {
	subject := "Email Verification OTP"
	if purpose == PurposePasswordReset {
		subject = "Password Reset OTP"
	}

	payload := sendRequest{
		Sender:  mailAddress{Email: m.senderEmail, Name: m.senderName},
		To:      []mailAddress{{Email: email}},
		Subject: subject,
		HTMLContent: fmt.Sprintf(`
            <h2>Your OTP is %s</h2>
            <p>This OTP will expire in 5 minutes.</p>
        `, code),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("brevo send failed: status %d", resp.StatusCode)
	}
	return nil
}
