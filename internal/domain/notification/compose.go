package notification

import "fmt"

// Message is a fully composed email, ready for transport.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Compose builds the deliverable message for a notification request. The
// body is deliberately plain; rich templating is outside this service's
// capture/redaction core and belongs to the mailer's template set.
func (r Request) Compose() Message {
	var body string
	switch r.Task {
	case TaskEmailVerification:
		body = fmt.Sprintf("Hello %s,\n\nPlease verify your email address:\n%s\n", r.UserName, r.Link)
	case TaskChangePassword:
		body = fmt.Sprintf("Hello %s,\n\nUse the link below to change your password:\n%s\n", r.UserName, r.Link)
	default:
		body = fmt.Sprintf("Hello %s,\n\n%s\n", r.UserName, r.Link)
	}
	return Message{To: r.Email, Subject: r.Subject, Body: body}
}

// ComposeUserConfirmation builds the confirmation email sent back to the
// user who opened the ticket.
func (t SupportTicket) ComposeUserConfirmation() Message {
	return Message{
		To:      t.UserEmail,
		Subject: fmt.Sprintf("Support ticket %s received", t.TicketID),
		Body: fmt.Sprintf("Hello %s,\n\nWe received your support request %q and will get back to you shortly.\n\nTicket ID: %s\n",
			t.UserName, t.Subject, t.TicketID),
	}
}

// ComposeSupportAlert builds the alert email sent to the support team inbox.
func (t SupportTicket) ComposeSupportAlert(supportAddress string) Message {
	return Message{
		To:      supportAddress,
		Subject: fmt.Sprintf("New support ticket %s: %s", t.TicketID, t.Subject),
		Body: fmt.Sprintf("Ticket %s from %s <%s>\n\n%s\n",
			t.TicketID, t.UserName, t.UserEmail, t.Description),
	}
}

// TicketResult reports per-recipient outcomes of a support-ticket send.
type TicketResult struct {
	TicketID     string
	UserNotified bool
	TeamNotified bool
}
