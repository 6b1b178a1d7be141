package notifications

import (
	"gopkg.in/gomail.v2"

	"github.com/amara-wedding/backend/config"
)

// Mailer delivers one email.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends plaintext mail through the configured SMTP relay.
type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

// NewSMTPMailer creates a mailer from email config.
func NewSMTPMailer(cfg config.EmailConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer:   gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
	}
}

// Send delivers a plaintext email.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
