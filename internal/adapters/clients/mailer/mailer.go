// Package mailer implements the outbound SMTP adapter for notification
// delivery. It is a thin transport: message composition happens in the
// domain layer and arrives here fully assembled.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"

	"github.com/den5hade/notification/internal/domain"
	"github.com/den5hade/notification/internal/domain/notification"
	"github.com/den5hade/notification/internal/platform/config"
	"github.com/den5hade/notification/internal/ports"
)

// Compile-time interface check.
var _ ports.NotificationSender = (*Mailer)(nil)

// Mailer delivers composed messages over SMTP using go-mail. A new
// connection is dialed per send; notification volume is low enough that
// connection pooling is not worth the complexity.
type Mailer struct {
	client   *mail.Client
	from     string
	fromName string
	logger   *slog.Logger
}

// New creates a Mailer from SMTP configuration. Authentication is enabled
// only when a username is configured, so local debug relays work without
// credentials.
func New(cfg config.SMTPConfig, logger *slog.Logger) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating SMTP client for %s: %w", cfg.Host, err)
	}

	return &Mailer{
		client:   client,
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
		logger:   logger,
	}, nil
}

// Send delivers a single message. The context bounds the dial and the SMTP
// conversation.
func (m *Mailer) Send(ctx context.Context, msg notification.Message) error {
	mm := mail.NewMsg()
	if err := mm.FromFormat(m.fromName, m.from); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err := mm.To(msg.To); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextPlain, msg.Body)

	if err := m.client.DialAndSendWithContext(ctx, mm); err != nil {
		m.logger.ErrorContext(ctx, "smtp delivery failed",
			slog.String("to", msg.To),
			slog.Any("error", err),
		)
		return fmt.Errorf("delivering mail: %w", err)
	}

	m.logger.InfoContext(ctx, "mail delivered", slog.String("to", msg.To))
	return nil
}

// Disabled is the NotificationSender used when no SMTP host is configured.
// Every send fails with domain.ErrUnavailable so callers get a clean 503
// instead of a dial error against an empty host.
type Disabled struct{}

var _ ports.NotificationSender = Disabled{}

// Send always fails.
func (Disabled) Send(context.Context, notification.Message) error {
	return fmt.Errorf("%w: smtp is not configured", domain.ErrUnavailable)
}
