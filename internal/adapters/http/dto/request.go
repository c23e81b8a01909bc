package dto

import (
	"github.com/den5hade/notification/internal/domain/notification"
)

// SendNotificationRequest is the payload of POST /api/v1/notifications/send.
type SendNotificationRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Task     string `json:"task" validate:"required,oneof=email_verification change_password"`
	Link     string `json:"link" validate:"required,url"`
	UserName string `json:"user_name" validate:"required,max=100"`
	Subject  string `json:"subject" validate:"required,max=255"`
}

// Validate checks the request against its field rules.
func (r *SendNotificationRequest) Validate() error {
	return validateStruct(r)
}

// ToNotification converts the request to its domain form.
func (r *SendNotificationRequest) ToNotification() notification.Request {
	return notification.Request{
		Email:    r.Email,
		Task:     notification.Task(r.Task),
		Link:     r.Link,
		UserName: r.UserName,
		Subject:  r.Subject,
	}
}

// SupportTicketRequest is the payload of
// POST /api/v1/notifications/support-ticket.
type SupportTicketRequest struct {
	UserEmail   string `json:"user_email" validate:"required,email"`
	UserName    string `json:"user_name" validate:"required,max=100"`
	Subject     string `json:"subject" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=5000"`
}

// Validate checks the request against its field rules.
func (r *SupportTicketRequest) Validate() error {
	return validateStruct(r)
}

// ToSupportTicket converts the request to its domain form. The ticket ID is
// assigned by the service.
func (r *SupportTicketRequest) ToSupportTicket() notification.SupportTicket {
	return notification.SupportTicket{
		UserEmail:   r.UserEmail,
		UserName:    r.UserName,
		Subject:     r.Subject,
		Description: r.Description,
	}
}
