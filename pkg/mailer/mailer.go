package mailer

import (
	"fmt"
	"net/smtp"
)

// Config holds SMTP connection details, passed in explicitly at construction.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends plain-text mail over SMTP.
type SMTPMailer struct {
	cfg Config
}

// New creates a new SMTPMailer.
func New(cfg Config) *SMTPMailer {
	return &SMTPMailer{
		cfg: cfg,
	}
}

// Send delivers one message to one recipient. No retry; the caller decides
// what a failure means.
func (m *SMTPMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s",
		m.cfg.From, to, subject, body)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
