// Package email delivers outgoing mail over SMTP.
package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/orris-inc/helpdesk/internal/application/notification/usecases"
	"github.com/orris-inc/helpdesk/internal/infrastructure/template"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	config    SMTPConfig
	dialer    sender
	templates *template.EmailTemplates
	logger    logger.Interface
}

func NewSMTPMailer(config SMTPConfig, templates *template.EmailTemplates, log logger.Interface) *SMTPMailer {
	return &SMTPMailer{
		config:    config,
		dialer:    gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		templates: templates,
		logger:    log.Named("email"),
	}
}

func (s *SMTPMailer) SendAccessEmail(ctx context.Context, msg usecases.AccessEmail) error {
	htmlBody, err := s.templates.Render(template.AccessEmailHTML, msg)
	if err != nil {
		return err
	}
	plainBody, err := s.templates.Render(template.AccessEmailText, msg)
	if err != nil {
		return err
	}

	subject := "Your support portal access"
	if msg.CompanyName != "" {
		subject = fmt.Sprintf("Your %s support portal access", msg.CompanyName)
	}
	return s.send(ctx, msg.To, subject, htmlBody, plainBody)
}

// send does not honor ctx cancellation once the SMTP dialog has started.
func (s *SMTPMailer) send(ctx context.Context, to, subject, htmlBody, plainBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Debugw("email sent", "to", to, "subject", subject)
	return nil
}
