// Package mail sends transactional email over SMTP.
package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/ssrlogistics/backend/internal/infrastructure/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// Quotation carries the details of a rate quotation email.
type Quotation struct {
	To            string
	POL           string
	POD           string
	ContainerSize string
	Rate          string
}

// SMTPMailer sends mail through an SMTP relay using templated HTML bodies.
type SMTPMailer struct {
	client    *gomail.Client
	from      string
	fromName  string
	templates *template.Template
}

// NewSMTPMailer creates a mailer from SMTP configuration.
func NewSMTPMailer(cfg config.SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}

	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail templates: %w", err)
	}

	return &SMTPMailer{
		client:    client,
		from:      cfg.From,
		fromName:  cfg.FromName,
		templates: templates,
	}, nil
}

// SendOTP mails a password-reset code to the user.
func (m *SMTPMailer) SendOTP(ctx context.Context, to, code string, ttl time.Duration) error {
	return m.send(ctx, to, "Password Reset Code", "otp.html", map[string]any{
		"Code":    code,
		"Minutes": int(ttl.Minutes()),
	})
}

// SendPasswordChanged mails a confirmation after a successful reset.
func (m *SMTPMailer) SendPasswordChanged(ctx context.Context, to string) error {
	return m.send(ctx, to, "Your Password Was Changed", "password_changed.html", map[string]any{
		"ChangedAt": time.Now().Format("02 Jan 2006 15:04 MST"),
	})
}

// SendQuotation mails quotation details to a customer.
func (m *SMTPMailer) SendQuotation(ctx context.Context, q Quotation) error {
	return m.send(ctx, q.To, "Quotation Details", "quotation.html", map[string]any{
		"POL":           q.POL,
		"POD":           q.POD,
		"ContainerSize": q.ContainerSize,
		"Rate":          q.Rate,
	})
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, templateName string, data map[string]any) error {
	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", templateName, err)
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, body.String())

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
