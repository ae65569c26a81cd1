package server

import (
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/borderlesste/cavb-visa-sub001/internal/routes"
)

// New assembles the fiber app: panic containment, request logging,
// then the route table.
func New(d routes.Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "visa-case-backend",
		DisableStartupMessage: true,
	})
	app.Use(fiberrecover.New())
	app.Use(fiberlogger.New())

	routes.Register(app, d)
	return app
}
