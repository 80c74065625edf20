package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// EmailService sends through Resend. In development, and when no API key is
// configured, messages are only logged.
type EmailService struct {
	client     *resend.Client
	fromEmail  string
	audienceID string
	isDev      bool
	appURL     string
	appName    string
}

func NewEmailService(apiKey, fromEmail, audienceID, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		audienceID: audienceID,
		isDev:      isDev,
		appURL:     appURL,
		appName:    appName,
	}
}

func (s *EmailService) send(ctx context.Context, kind, to, subject, body string) error {
	if s.isDev || s.client == nil {
		slog.Info("email sent (dev mode)", "type", kind, "to", to, "subject", subject)
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	slog.Info("email sent", "type", kind, "to", to)
	return nil
}

func (s *EmailService) SendWelcomeEmail(ctx context.Context, email, name string) error {
	subject, body := welcomeEmailTemplate(name, s.appURL+"/yearbook", s.appName)
	return s.send(ctx, "welcome", email, subject, body)
}

// SubscribeNewsletter adds email to the reunion-updates audience.
// It never reports failure so the form cannot be used to probe addresses.
func (s *EmailService) SubscribeNewsletter(ctx context.Context, email string) error {
	if s.isDev || s.client == nil {
		slog.Info("newsletter subscription (dev mode)", "email", email)
		return nil
	}

	if s.audienceID == "" {
		slog.Warn("newsletter subscription requested but no audience configured", "email", email)
		return nil
	}

	params := &resend.CreateContactRequest{
		Email:      email,
		AudienceId: s.audienceID,
	}

	_, err := s.client.Contacts.Create(params)
	if err != nil {
		slog.Warn("newsletter subscription failed", "error", err, "email", email)
		return nil
	}

	subject, body := reunionSubscribedTemplate(s.appURL, s.appName)
	err = s.send(ctx, "reunion_subscribed", email, subject, body)
	if err != nil {
		slog.Warn("failed to confirm newsletter subscription", "error", err, "email", email)
	}

	slog.Info("newsletter subscription successful", "email", email)
	return nil
}
