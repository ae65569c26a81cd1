package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/borderlesste/cavb-visa-sub001/internal/auth"
	"github.com/borderlesste/cavb-visa-sub001/internal/service"
)

type DocumentHandler struct {
	svc  *service.DocumentService
	apps *service.ApplicationService
}

func NewDocumentHandler(svc *service.DocumentService, apps *service.ApplicationService) *DocumentHandler {
	return &DocumentHandler{svc: svc, apps: apps}
}

type reviewDocumentRequest struct {
	Status string `json:"status"`
	Remark string `json:"remark"`
}

func (h *DocumentHandler) Review(c *fiber.Ctx) error {
	id, _ := auth.IdentityFromCtx(c)
	var req reviewDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	d, err := h.svc.Review(c.Context(), id.UserID, c.Params("id"), req.Status, req.Remark)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(d)
}

func (h *DocumentHandler) ListByApplication(c *fiber.Ctx) error {
	id, _ := auth.IdentityFromCtx(c)
	app, err := h.apps.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeErr(c, err)
	}
	if !canViewApplication(id, app) {
		return writeErr(c, service.ErrForbidden)
	}
	docs, err := h.svc.ListByApplication(c.Context(), app.ID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(docs)
}
