package handlers

import (
	"net/http"

	"github.com/den5hade/notification/internal/adapters/http/dto"
	"github.com/den5hade/notification/internal/ports"
)

// NotificationHandler handles HTTP requests for sending notification emails.
type NotificationHandler struct {
	notifications ports.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler with the given
// service port.
func NewNotificationHandler(notifications ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// SendNotification handles POST /api/v1/notifications/send.
func (h *NotificationHandler) SendNotification(w http.ResponseWriter, r *http.Request) {
	var req dto.SendNotificationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.notifications.SendNotification(r.Context(), req.ToNotification()); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NotificationAcceptedResponse{
		Message: "notification sent",
	})
}

// SendSupportTicket handles POST /api/v1/notifications/support-ticket.
func (h *NotificationHandler) SendSupportTicket(w http.ResponseWriter, r *http.Request) {
	var req dto.SupportTicketRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.notifications.SendSupportTicket(r.Context(), req.ToSupportTicket())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToSupportTicketResponse(result))
}
