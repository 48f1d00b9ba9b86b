package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hris-service/internal/api/dto"
	"github.com/spec-kit/hris-service/internal/mail"
	"github.com/spec-kit/hris-service/internal/service"
)

// NotificationsHandler manages in-app notifications and ad hoc e-mails.
type NotificationsHandler struct {
	service *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{service: notificationService}
}

// MarkRead POST /api/notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	notification, err := h.service.MarkRead(c.UserContext(), CompanyFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": notification})
}

// SendEmail POST /api/notifications/email. The response reports whether the provider
// accepted the message; a rejected message is not an error.
func (h *NotificationsHandler) SendEmail(c *fiber.Ctx) error {
	var req dto.SendEmailRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	sent, err := h.service.SendTemplate(c.UserContext(), req.To, mail.Template(req.Template), mail.Data(req.Data))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SendEmailResponse{Sent: sent}})
}
