package mailer

import (
	"context"
	"fmt"

	"github.com/pokeverse/pokeverse-backend/pkg/config"
	"github.com/pokeverse/pokeverse-backend/pkg/logger"
	"github.com/resend/resend-go/v2"
)

// Sender is the outbound email capability consumed by the auth flows.
type Sender interface {
	SendVerification(ctx context.Context, to, username, link string) error
	SendPasswordReset(ctx context.Context, to, username, link string) error
}

// Mailer delivers transactional email through Resend. In dev mode (or with no
// API key) messages are logged instead of sent so the signup flow stays
// testable without credentials.
type Mailer struct {
	client *resend.Client
	from   string
	logg   *logger.Logger
	dev    bool
}

func New(cfg config.MailConfig, logg *logger.Logger, dev bool) *Mailer {
	var client *resend.Client
	if cfg.ResendAPIKey != "" && !dev {
		client = resend.NewClient(cfg.ResendAPIKey)
	}
	return &Mailer{
		client: client,
		from:   cfg.FromEmail,
		logg:   logg,
		dev:    dev,
	}
}

func (m *Mailer) SendVerification(ctx context.Context, to, username, link string) error {
	subject := "Verify Your Account"
	body := fmt.Sprintf(
		"Hello %s!\n\n"+
			"We are excited for you to join our platform, but before you receive full access to our service, we ask that you verify your account.\n\n"+
			"Please click the link below to verify your account.\n%s\n\n"+
			"Thank you,\nThe Pokeverse Team",
		username, link,
	)
	return m.send(ctx, "verification", to, subject, body)
}

func (m *Mailer) SendPasswordReset(ctx context.Context, to, username, link string) error {
	subject := "Password Reset"
	body := fmt.Sprintf(
		"Hello %s!\n\n"+
			"A request to reset the password for your account has been made at Pokeverse.\n"+
			"Please click on the link below to continue:\n%s\n\n"+
			"Thank you,\nThe Pokeverse Team",
		username, link,
	)
	return m.send(ctx, "password_reset", to, subject, body)
}

func (m *Mailer) send(ctx context.Context, kind, to, subject, body string) error {
	if m.dev || m.client == nil {
		if m.logg != nil {
			logCtx := m.logg.WithFields(ctx, map[string]any{
				"email_kind": kind,
				"to":         to,
				"subject":    subject,
			})
			m.logg.Info(logCtx, "email logged (dev mode)")
		}
		if !m.dev && m.client == nil {
			return fmt.Errorf("mailer not configured (missing resend api key)")
		}
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send %s email: %w", kind, err)
	}
	if m.logg != nil {
		logCtx := m.logg.WithFields(ctx, map[string]any{"email_kind": kind, "to": to})
		m.logg.Info(logCtx, "email sent")
	}
	return nil
}
