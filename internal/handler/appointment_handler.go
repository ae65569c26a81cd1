package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/borderlesste/cavb-visa-sub001/internal/auth"
	"github.com/borderlesste/cavb-visa-sub001/internal/service"
)

type AppointmentHandler struct {
	svc *service.AppointmentService
}

func NewAppointmentHandler(svc *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

type scheduleAppointmentRequest struct {
	ApplicationID string    `json:"application_id"`
	Location      string    `json:"location"`
	ScheduledAt   time.Time `json:"scheduled_at"`
}

func (h *AppointmentHandler) Schedule(c *fiber.Ctx) error {
	id, _ := auth.IdentityFromCtx(c)
	var req scheduleAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	a, err := h.svc.Schedule(c.Context(), id.UserID, req.ApplicationID, req.Location, req.ScheduledAt)
	if err != nil {
		return writeErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *AppointmentHandler) Cancel(c *fiber.Ctx) error {
	id, _ := auth.IdentityFromCtx(c)
	a, err := h.svc.Cancel(c.Context(), c.Params("id"), id.UserID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(a)
}

func (h *AppointmentHandler) ListMine(c *fiber.Ctx) error {
	id, _ := auth.IdentityFromCtx(c)
	appts, err := h.svc.ListMine(c.Context(), id.UserID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(appts)
}
