package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"
	"go.uber.org/zap"

	"refugee-portal/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

type Service interface {
	SendEmailVerification(ctx context.Context, toEmail, fullName, verificationToken string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error
	SendRequestDecisionEmail(ctx context.Context, toEmail, fullName, requestType, status string, note *string) error
	SendHouseholdAssignedEmail(ctx context.Context, toEmail, fullName, householdID string, address *string) error
}

// Sender abstracts the Resend emails endpoint.
type Sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type service struct {
	sender Sender
	config *config.Config
	log    *zap.Logger
}

// NewService returns a Resend backed sender. Without RESEND_API_KEY emails
// are only logged.
func NewService(cfg *config.Config, log *zap.Logger) Service {
	var sender Sender
	if cfg.ResendAPIKey != "" {
		sender = resend.NewClient(cfg.ResendAPIKey).Emails
	}
	return NewServiceWithSender(cfg, sender, log)
}

func NewServiceWithSender(cfg *config.Config, sender Sender, log *zap.Logger) Service {
	return &service{sender: sender, config: cfg, log: log}
}

func render(templateName string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		return "", fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) sendEmail(ctx context.Context, toEmail, subject, templateName string, data interface{}) error {
	html, err := render(templateName, data)
	if err != nil {
		return err
	}

	if s.sender == nil {
		s.log.Info("email delivery disabled", zap.String("to", toEmail), zap.String("subject", subject))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Refugee Support Portal <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	if _, err := s.sender.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send %s: %w", templateName, err)
	}
	return nil
}

func (s *service) link(path string) string {
	return fmt.Sprintf("https://%s%s", s.config.Domain, path)
}

func (s *service) SendEmailVerification(ctx context.Context, toEmail, fullName, verificationToken string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: "Verify your email",
		Name:  fullName,
		Link:  s.link("/verify-email?token=" + verificationToken),
	}
	return s.sendEmail(ctx, toEmail, "Verify your email address", "verification.html", data)
}

func (s *service) SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: "Reset your password",
		Name:  fullName,
		Link:  s.link("/reset-password?token=" + resetToken),
	}
	return s.sendEmail(ctx, toEmail, "Password reset request", "reset_password.html", data)
}

func (s *service) SendRequestDecisionEmail(ctx context.Context, toEmail, fullName, requestType, status string, note *string) error {
	data := struct {
		Title       string
		Name        string
		RequestType string
		Status      string
		Note        string
		Link        string
	}{
		Title:       "Update on your request",
		Name:        fullName,
		RequestType: requestType,
		Status:      status,
		Link:        s.link("/refugee/requests"),
	}
	if note != nil {
		data.Note = *note
	}
	return s.sendEmail(ctx, toEmail, fmt.Sprintf("Your %s request was %s", requestType, status), "request_decision.html", data)
}

func (s *service) SendHouseholdAssignedEmail(ctx context.Context, toEmail, fullName, householdID string, address *string) error {
	data := struct {
		Title   string
		Name    string
		Address string
		Link    string
	}{
		Title: "New household assigned",
		Name:  fullName,
		Link:  s.link("/caseworker/households/" + householdID),
	}
	if address != nil {
		data.Address = *address
	}
	return s.sendEmail(ctx, toEmail, "A household has been assigned to you", "household_assigned.html", data)
}
