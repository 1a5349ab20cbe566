package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"quickcourt/config"
	"quickcourt/utils"

	"go.uber.org/zap"
)

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NewMailer returns an SMTP mailer when a host is configured and a logging
// mailer otherwise, so OTP flows work in development.
func NewMailer(cfg config.Config) Mailer {
	if cfg.SMTPHost == "" {
		utils.GetLogger().Warn("SMTP_HOST not set, emails will only be logged")
		return LogMailer{}
	}
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		host: cfg.SMTPHost,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPassword,
		from: cfg.SMTPFrom,
	}
}

type SMTPMailer struct {
	addr, host, user, pass, from string
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	msg := buildMessage(m.from, to, subject, body)

	done := make(chan error, 1)
	go func() { done <- smtp.SendMail(m.addr, auth, envelopeAddress(m.from), []string{to}, msg) }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email to %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// envelopeAddress extracts addr from "Name <addr>".
func envelopeAddress(from string) string {
	if i := strings.LastIndex(from, "<"); i >= 0 {
		if j := strings.LastIndex(from, ">"); j > i {
			return from[i+1 : j]
		}
	}
	return from
}

// LogMailer writes mail to the log instead of sending it.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, body string) error {
	utils.GetLogger().Info("email (not sent)", zap.String("to", to), zap.String("subject", subject), zap.String("body", body))
	return nil
}
