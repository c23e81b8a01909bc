package app_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/den5hade/notification/internal/app"
	"github.com/den5hade/notification/internal/domain"
	"github.com/den5hade/notification/internal/domain/notification"
)

// fakeSender records sent messages and fails those whose recipient matches
// failTo.
type fakeSender struct {
	mu     sync.Mutex
	sent   []notification.Message
	failTo string
}

func (s *fakeSender) Send(_ context.Context, msg notification.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failTo != "" && msg.To == s.failTo {
		return errors.New("smtp: connection refused")
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *fakeSender) messages() []notification.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notification.Message(nil), s.sent...)
}

const supportInbox = "support@example.com"

func TestNotificationService_SendNotification(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	svc := app.NewNotificationService(sender, supportInbox, discardLogger())

	req := notification.Request{
		Email:    "user@example.com",
		Task:     notification.TaskEmailVerification,
		Link:     "https://example.com/verify?code=abc",
		UserName: "Dana",
		Subject:  "Verify your email",
	}

	if err := svc.SendNotification(context.Background(), req); err != nil {
		t.Fatalf("SendNotification: %v", err)
	}

	sent := sender.messages()
	if len(sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sent))
	}
	if sent[0].To != "user@example.com" || sent[0].Subject != "Verify your email" {
		t.Errorf("message = %+v", sent[0])
	}
	if !strings.Contains(sent[0].Body, req.Link) {
		t.Errorf("body %q does not contain the verification link", sent[0].Body)
	}
}

func TestNotificationService_SendNotificationUnknownTask(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	svc := app.NewNotificationService(sender, supportInbox, discardLogger())

	err := svc.SendNotification(context.Background(), notification.Request{
		Email: "user@example.com",
		Task:  "delete_account",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want domain.ErrValidation", err)
	}
	if len(sender.messages()) != 0 {
		t.Error("no message should be sent for an unknown task")
	}
}

func TestNotificationService_SendNotificationDeliveryFailure(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{failTo: "user@example.com"}
	svc := app.NewNotificationService(sender, supportInbox, discardLogger())

	err := svc.SendNotification(context.Background(), notification.Request{
		Email: "user@example.com",
		Task:  notification.TaskChangePassword,
	})
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("error = %v, want domain.ErrUnavailable", err)
	}
}

func TestNotificationService_SendSupportTicket(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	svc := app.NewNotificationService(sender, supportInbox, discardLogger())

	result, err := svc.SendSupportTicket(context.Background(), notification.SupportTicket{
		TicketID:    "T-100",
		UserEmail:   "user@example.com",
		UserName:    "Dana",
		Subject:     "Cannot log in",
		Description: "Password reset loop",
	})
	if err != nil {
		t.Fatalf("SendSupportTicket: %v", err)
	}
	if !result.UserNotified || !result.TeamNotified {
		t.Errorf("result = %+v, want both notified", result)
	}
	if result.TicketID != "T-100" {
		t.Errorf("TicketID = %q, want T-100", result.TicketID)
	}

	sent := sender.messages()
	if len(sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(sent))
	}
	recipients := map[string]bool{}
	for _, m := range sent {
		recipients[m.To] = true
	}
	if !recipients["user@example.com"] || !recipients[supportInbox] {
		t.Errorf("recipients = %v, want user and support inbox", recipients)
	}
}

func TestNotificationService_SendSupportTicketAssignsID(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	svc := app.NewNotificationService(sender, supportInbox, discardLogger())

	result, err := svc.SendSupportTicket(context.Background(), notification.SupportTicket{
		UserEmail: "user@example.com",
		Subject:   "Question",
	})
	if err != nil {
		t.Fatalf("SendSupportTicket: %v", err)
	}
	if result.TicketID == "" {
		t.Error("TicketID should be generated when empty")
	}
}

func TestNotificationService_SendSupportTicketPartialFailure(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{failTo: "user@example.com"}
	svc := app.NewNotificationService(sender, supportInbox, discardLogger())

	result, err := svc.SendSupportTicket(context.Background(), notification.SupportTicket{
		TicketID:  "T-101",
		UserEmail: "user@example.com",
		Subject:   "Broken",
	})
	if err != nil {
		t.Fatalf("partial failure must not be an error, got %v", err)
	}
	if result.UserNotified {
		t.Error("UserNotified = true, want false")
	}
	if !result.TeamNotified {
		t.Error("TeamNotified = false, want true")
	}
}

func TestNotificationService_SendSupportTicketTotalFailure(t *testing.T) {
	t.Parallel()

	// The sender fails every recipient.
	sender := &failingSender{}
	svc := app.NewNotificationService(sender, supportInbox, discardLogger())

	_, err := svc.SendSupportTicket(context.Background(), notification.SupportTicket{
		TicketID:  "T-102",
		UserEmail: "user@example.com",
	})
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("error = %v, want domain.ErrUnavailable", err)
	}
}

type failingSender struct{}

func (failingSender) Send(context.Context, notification.Message) error {
	return errors.New("smtp: connection refused")
}
