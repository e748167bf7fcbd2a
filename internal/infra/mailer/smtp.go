// Package mailer sends transactional mail over SMTP.
package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"go.uber.org/zap"
)

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer delivers mail through a plain SMTP relay.
type SMTPMailer struct {
	cfg    Config
	logger *zap.Logger
}

// NewSMTP creates a new SMTPMailer.
func NewSMTP(cfg Config, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

// SendPasswordReset mails a one-time reset token to the given address.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	subject := "Password reset"
	body := fmt.Sprintf(
		"A password reset was requested for your account.\r\n\r\n"+
			"Reset token: %s\r\n\r\n"+
			"If you did not request this, you can ignore this message.\r\n",
		token,
	)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.cfg.From, email, subject, body)

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("sending mail via %s: %w", addr, err)
	}

	m.logger.Info("password reset mail sent", zap.String("to", email))

	return nil
}

// LogMailer logs mail instead of sending it. Used in development and when the
// SMTP relay is disabled in config.
type LogMailer struct {
	logger *zap.Logger
}

// NewLog creates a new LogMailer.
func NewLog(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// SendPasswordReset logs the reset token instead of mailing it.
func (m *LogMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	m.logger.Info("password reset mail (delivery disabled)",
		zap.String("to", email),
		zap.String("token", token),
	)

	return nil
}
