package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/borderlesste/cavb-visa-sub001/internal/auth"
	"github.com/borderlesste/cavb-visa-sub001/internal/service"
)

type ApplicationHandler struct {
	svc *service.ApplicationService
}

func NewApplicationHandler(svc *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

type submitApplicationRequest struct {
	VisaType string `json:"visa_type"`
	Country  string `json:"country"`
}

func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	id, _ := auth.IdentityFromCtx(c)
	var req submitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	app, err := h.svc.Submit(c.Context(), id.UserID, req.VisaType, req.Country)
	if err != nil {
		return writeErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	id, _ := auth.IdentityFromCtx(c)
	app, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeErr(c, err)
	}
	if !canViewApplication(id, app) {
		return writeErr(c, service.ErrForbidden)
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	id, _ := auth.IdentityFromCtx(c)
	apps, err := h.svc.ListMine(c.Context(), id.UserID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(apps)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	app, err := h.svc.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(app)
}
