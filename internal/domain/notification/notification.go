// Package notification defines the email notification types this service
// accepts from other microservices. The service composes and delivers the
// messages through an opaque sender; templates and SMTP mechanics live in the
// mailer adapter.
package notification

// Task identifies which kind of notification email to send.
type Task string

// Supported notification tasks.
const (
	TaskEmailVerification Task = "email_verification"
	TaskChangePassword    Task = "change_password"
)

// Valid reports whether t is a known task.
func (t Task) Valid() bool {
	switch t {
	case TaskEmailVerification, TaskChangePassword:
		return true
	}
	return false
}

// Request is a notification to deliver to a single recipient.
type Request struct {
	Email    string
	Task     Task
	Link     string
	UserName string
	Subject  string
}

// SupportTicket is a support request that fans out into two emails: a
// confirmation to the reporting user and an alert to the support team.
type SupportTicket struct {
	TicketID    string
	UserEmail   string
	UserName    string
	Subject     string
	Description string
}
