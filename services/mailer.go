package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/devsearch-app/backend/config"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// Mailer delivers transactional mail through the Resend HTTP API.
type Mailer struct {
	apiKey    string
	fromEmail string
	baseURL   string
	client    *http.Client
}

// NewMailer reads RESEND_API_KEY, RESEND_FROM_EMAIL and
// PUBLIC_BASE_URL from the config map. A mailer without an API key is
// still usable; it logs instead of sending, which keeps local
// development working without credentials.
func NewMailer(cfg map[string]string) *Mailer {
	return &Mailer{
		apiKey:    config.GetString(cfg, "RESEND_API_KEY", ""),
		fromEmail: config.GetString(cfg, "RESEND_FROM_EMAIL", "DevSearch <no-reply@devsearch.dev>"),
		baseURL:   config.GetString(cfg, "PUBLIC_BASE_URL", "http://localhost:8080"),
		client:    &http.Client{},
	}
}

// Send delivers a single HTML email.
func (m *Mailer) Send(subject, html string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	if m.apiKey == "" {
		log.Warn().Str("subject", subject).Strs("to", recipients).
			Msg("RESEND_API_KEY not configured, skipping email delivery")
		return nil
	}

	payload := ResendEmailRequest{
		From:    m.fromEmail,
		To:      recipients,
		Subject: subject,
		Html:    html,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, resendEndpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}

	return nil
}

// SendVerificationEmail mails the account confirmation link carrying
// the single-use token.
func (m *Mailer) SendVerificationEmail(recipient, token string) error {
	link := fmt.Sprintf("%s/verify-email/%s", m.baseURL, token)
	html := fmt.Sprintf(
		`<p>Welcome to DevSearch!</p>
<p>Click the link below to verify your account. The link is valid for two hours and can be used once.</p>
<p><a href="%s">Verify my account</a></p>`, link)
	return m.Send("DevSearch Account Verification", html, []string{recipient})
}

// SendPasswordResetEmail mails the time-bounded password reset link.
func (m *Mailer) SendPasswordResetEmail(recipient, token string) error {
	link := fmt.Sprintf("%s/password-reset/%s", m.baseURL, token)
	html := fmt.Sprintf(
		`<p>A password reset was requested for your DevSearch account.</p>
<p>If this was you, follow the link below within two hours. Otherwise you can ignore this email.</p>
<p><a href="%s">Reset my password</a></p>`, link)
	return m.Send("DevSearch Password Reset", html, []string{recipient})
}
