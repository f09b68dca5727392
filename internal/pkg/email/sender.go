package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Sender delivers a single plain-text message. It reports success as a bool
// and never returns errors; failures are logged by the implementation.
type Sender interface {
	SendEmail(ctx context.Context, toAddress, toName, subject, body string) bool
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	Timeout   time.Duration
	DryRun    bool
}

// Configured reports whether credentials for a real send are present.
func (c SMTPConfig) Configured() bool {
	return c.Username != "" && c.Password != "" && c.FromEmail != ""
}

// NewSender returns an SMTP sender, or a LogSender when sending is disabled
// or credentials are missing.
func NewSender(config SMTPConfig, logger zerolog.Logger) Sender {
	if config.DryRun {
		logger.Info().Msg("SMTP dry run enabled - emails are logged, not sent")
		return NewLogSender(logger)
	}
	if !config.Configured() {
		logger.Warn().
			Str("host", config.Host).
			Msg("SMTP credentials not configured - emails are logged, not sent")
		return NewLogSender(logger)
	}
	return NewSMTPSender(config, logger)
}

// SMTPSender sends mail through an SMTP relay
type SMTPSender struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPSender creates a new SMTPSender
func NewSMTPSender(config SMTPConfig, logger zerolog.Logger) *SMTPSender {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &SMTPSender{
		config: config,
		logger: logger,
	}
}

// SendEmail sends a plain-text message to toAddress
func (s *SMTPSender) SendEmail(ctx context.Context, toAddress, toName, subject, body string) bool {
	message, err := buildMessage(s.config.FromName, s.config.FromEmail, toName, toAddress, subject, body)
	if err != nil {
		s.logger.Error().Err(err).Str("toEmail", toAddress).Msg("Failed to build email message")
		return false
	}

	if err := s.send(ctx, toAddress, message); err != nil {
		s.logger.Error().
			Err(err).
			Str("server", s.address()).
			Str("toEmail", toAddress).
			Msg("Failed to send email")
		return false
	}

	s.logger.Info().Str("toEmail", toAddress).Str("subject", subject).Msg("Email sent")
	return true
}

func (s *SMTPSender) address() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

func (s *SMTPSender) send(ctx context.Context, toAddress string, message []byte) error {
	deadline := time.Now().Add(s.config.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	dialer := &net.Dialer{Deadline: deadline}
	tlsConfig := &tls.Config{ServerName: s.config.Host}

	// Port 465 expects TLS from the first byte; everything else starts plain.
	var conn net.Conn
	var err error
	if s.config.Port == 465 {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: tlsConfig}).DialContext(ctx, "tcp", s.address())
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", s.address())
	}
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if s.config.UseTLS && s.config.Port != 465 {
		if ok, _ := client.Extension("STARTTLS"); !ok {
			return fmt.Errorf("SMTP server does not support STARTTLS")
		}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if s.config.Username != "" {
		auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(toAddress); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write(message); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

// LogSender writes messages to the log instead of sending them. It is used
// for dry runs and for development setups without SMTP credentials.
type LogSender struct {
	logger zerolog.Logger
}

// NewLogSender creates a new LogSender
func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// SendEmail logs the message and reports success
func (s *LogSender) SendEmail(_ context.Context, toAddress, toName, subject, body string) bool {
	s.logger.Info().
		Str("toEmail", toAddress).
		Str("toName", toName).
		Str("subject", subject).
		Int("bodyLength", len(body)).
		Msg("Email not sent (dry run)")
	return true
}
