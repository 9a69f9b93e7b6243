// Package mail delivers plain-text notification emails.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/axellelanca/catalog/internal/config"
)

// Sender delivers one message to a list of recipients.
type Sender interface {
	Send(ctx context.Context, subject, body string, recipients []string) error
}

// NewSender builds the sender selected by mail.driver.
func NewSender(cfg *config.Config, logger *slog.Logger) (Sender, error) {
	switch cfg.Mail.Driver {
	case "ses":
		return NewSESSender(cfg.Mail.FromEmail, cfg.AWS.Region, cfg.AWS.AccessKeyID, cfg.AWS.SecretAccessKey), nil
	case "log":
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unsupported mail driver %q", cfg.Mail.Driver)
	}
}

// LogSender writes messages to the log instead of sending them.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger.With("component", "mail")}
}

func (s *LogSender) Send(_ context.Context, subject, body string, recipients []string) error {
	s.logger.Info("email not sent (log driver)", "subject", subject, "recipients", recipients, "body_length", len(body))
	return nil
}
