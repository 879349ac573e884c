package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hivedesk/helpdesk/internal/api/dto"
	"github.com/hivedesk/helpdesk/internal/auth"
	"github.com/hivedesk/helpdesk/internal/service"
	apperrors "github.com/hivedesk/helpdesk/pkg/util"
)

// NotificationsHandler serves each user's notification inbox.
type NotificationsHandler struct {
	service *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{service: notificationService}
}

// List GET /notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	limit, offset := parsePage(c)
	items, err := h.service.ListForUser(c.Context(), principal.User.ID, limit, offset)
	if err != nil {
		return err
	}

	result := make([]dto.NotificationItem, 0, len(items))
	for _, item := range items {
		result = append(result, dto.NotificationItem{
			ID:            item.ID,
			TicketID:      item.TicketID,
			ResponsibleID: item.ResponsibleID,
			Message:       item.Message,
			Read:          item.RecipientRead,
			SentAt:        item.SentAt,
		})
	}
	return c.JSON(fiber.Map{"data": result})
}

// MarkRead POST /notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.service.MarkRead(c.Context(), c.Params("id"), principal.User.ID); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// UnreadCount GET /notifications/unread.
func (h *NotificationsHandler) UnreadCount(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	count, err := h.service.UnreadCount(c.Context(), principal.User.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"unread": count}})
}
