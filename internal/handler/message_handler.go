package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/borderlesste/cavb-visa-sub001/internal/auth"
	"github.com/borderlesste/cavb-visa-sub001/internal/service"
)

type MessageHandler struct {
	svc  *service.MessageService
	apps *service.ApplicationService
}

func NewMessageHandler(svc *service.MessageService, apps *service.ApplicationService) *MessageHandler {
	return &MessageHandler{svc: svc, apps: apps}
}

type sendMessageRequest struct {
	RecipientID   string `json:"recipient_id"`
	ApplicationID string `json:"application_id"`
	Content       string `json:"content"`
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	id, _ := auth.IdentityFromCtx(c)
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	m, err := h.svc.Send(c.Context(), id, req.RecipientID, req.ApplicationID, req.Content)
	if err != nil {
		return writeErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

func (h *MessageHandler) ListByApplication(c *fiber.Ctx) error {
	id, _ := auth.IdentityFromCtx(c)
	app, err := h.apps.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeErr(c, err)
	}
	if !canViewApplication(id, app) {
		return writeErr(c, service.ErrForbidden)
	}
	msgs, err := h.svc.ListByApplication(c.Context(), app.ID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(msgs)
}
