package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/den5hade/notification/internal/app/fanout"
	"github.com/den5hade/notification/internal/domain"
	"github.com/den5hade/notification/internal/domain/notification"
	"github.com/den5hade/notification/internal/ports"
)

// Compile-time check that NotificationService implements ports.NotificationService.
var _ ports.NotificationService = (*NotificationService)(nil)

// supportFanoutWorkers bounds the concurrent sends of a support-ticket
// fan-out (user confirmation plus team alert).
const supportFanoutWorkers = 2

// NotificationService implements ports.NotificationService. It composes
// messages from domain requests and delivers them through the sender port;
// SMTP mechanics live entirely behind that port.
type NotificationService struct {
	sender         ports.NotificationSender
	supportAddress string
	logger         *slog.Logger
}

// NewNotificationService creates a NotificationService. supportAddress is
// the team inbox that receives support-ticket alerts.
func NewNotificationService(sender ports.NotificationSender, supportAddress string, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		sender:         sender,
		supportAddress: supportAddress,
		logger:         logger,
	}
}

// SendNotification composes and delivers the email for a notification request.
func (s *NotificationService) SendNotification(ctx context.Context, req notification.Request) error {
	if !req.Task.Valid() {
		return fmt.Errorf("%w: unknown task %q", domain.ErrValidation, req.Task)
	}

	s.logger.InfoContext(ctx, "sending notification",
		slog.String("task", string(req.Task)),
	)

	if err := s.sender.Send(ctx, req.Compose()); err != nil {
		s.logger.ErrorContext(ctx, "failed to send notification",
			slog.String("operation", "SendNotification"),
			slog.String("task", string(req.Task)),
			slog.Any("error", err),
		)
		return fmt.Errorf("%w: sending %s email: %v", domain.ErrUnavailable, req.Task, err)
	}

	return nil
}

// SendSupportTicket delivers the user confirmation and the support-team alert
// concurrently. Partial failure is not an error: the result reports which
// recipients were reached. An error is returned only when neither send
// succeeded.
func (s *NotificationService) SendSupportTicket(ctx context.Context, ticket notification.SupportTicket) (*notification.TicketResult, error) {
	if ticket.TicketID == "" {
		ticket.TicketID = uuid.NewString()
	}

	s.logger.InfoContext(ctx, "sending support ticket notifications",
		slog.String("ticket_id", ticket.TicketID),
	)

	messages := []notification.Message{
		ticket.ComposeUserConfirmation(),
		ticket.ComposeSupportAlert(s.supportAddress),
	}

	errs := fanout.Run(ctx, supportFanoutWorkers, messages, func(ctx context.Context, msg notification.Message) error {
		return s.sender.Send(ctx, msg)
	})

	result := &notification.TicketResult{
		TicketID:     ticket.TicketID,
		UserNotified: errs[0] == nil,
		TeamNotified: errs[1] == nil,
	}

	for i, err := range errs {
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to send support ticket email",
				slog.String("operation", "SendSupportTicket"),
				slog.String("ticket_id", ticket.TicketID),
				slog.String("recipient", messages[i].To),
				slog.Any("error", err),
			)
		}
	}

	if !result.UserNotified && !result.TeamNotified {
		return nil, fmt.Errorf("%w: all support ticket emails failed", domain.ErrUnavailable)
	}

	return result, nil
}
