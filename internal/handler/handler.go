package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/borderlesste/cavb-visa-sub001/internal/auth"
	"github.com/borderlesste/cavb-visa-sub001/internal/model"
	"github.com/borderlesste/cavb-visa-sub001/internal/repository"
	"github.com/borderlesste/cavb-visa-sub001/internal/service"
)

// Role values carried in the access token.
const (
	RoleApplicant = "applicant"
	RoleOfficer   = "officer"
	RoleAdmin     = "admin"
)

// canViewApplication reports whether the caller may read rows scoped to
// app: the owning applicant, or consulate staff.
func canViewApplication(id auth.Identity, app *model.Application) bool {
	return app.ApplicantID == id.UserID || id.Role == RoleOfficer || id.Role == RoleAdmin
}

func writeErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, service.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
