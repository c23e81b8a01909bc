package mailer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/den5hade/notification/internal/adapters/clients/mailer"
	"github.com/den5hade/notification/internal/domain"
	"github.com/den5hade/notification/internal/domain/notification"
)

func TestDisabledSender(t *testing.T) {
	t.Parallel()

	err := mailer.Disabled{}.Send(context.Background(), notification.Message{
		To:      "user@example.com",
		Subject: "hello",
	})
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("error = %v, want domain.ErrUnavailable", err)
	}
}
