package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/borderlesste/cavb-visa-sub001/internal/auth"
	"github.com/borderlesste/cavb-visa-sub001/internal/service"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) ListMine(c *fiber.Ctx) error {
	id, _ := auth.IdentityFromCtx(c)
	notifs, err := h.svc.ListMine(c.Context(), id.UserID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(notifs)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, _ := auth.IdentityFromCtx(c)
	n, err := h.svc.MarkRead(c.Context(), c.Params("id"), id.UserID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(n)
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, _ := auth.IdentityFromCtx(c)
	if err := h.svc.Delete(c.Context(), c.Params("id"), id.UserID); err != nil {
		return writeErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
