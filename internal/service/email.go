package service

import (
	"context"
	"fmt"
	"time"

	"rental-tracker-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewEmailService sends through SendGrid. Without an API key messages are
// only logged, which is what local development uses.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) SendPasswordReset(ctx context.Context, email, resetLink string, expiresAt time.Time) error {
	subject := "Reset your Rental Tracker password"
	plainText := fmt.Sprintf("Hello,\n\nA password reset was requested for your account.\n\nOpen the link below to choose a new password:\n\n%s\n\nThe link expires at %s.\n\nIf you did not request it you can ignore this email.",
		resetLink, expiresAt.UTC().Format(time.RFC1123))
	htmlContent := fmt.Sprintf(`<p>Hello,</p><p>A password reset was requested for your account.</p><p><a href="%s">Choose a new password</a></p><p>The link expires at %s.</p>`,
		resetLink, expiresAt.UTC().Format(time.RFC1123))
	return s.send(ctx, email, subject, plainText, htmlContent)
}

func (s *emailService) send(ctx context.Context, to, subject, plainText, htmlContent string) error {
	if s.apiKey == "" {
		logger.Info("Email delivery disabled, message logged only", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	logger.ExternalServiceCall("sendgrid", "send", "to", to)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil, "status", response.StatusCode)
	return nil
}
