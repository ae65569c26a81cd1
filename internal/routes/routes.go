package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/websocket/v2"

	"github.com/borderlesste/cavb-visa-sub001/internal/handler"
	"github.com/borderlesste/cavb-visa-sub001/internal/metrics"
	"github.com/borderlesste/cavb-visa-sub001/internal/presence"
	"github.com/borderlesste/cavb-visa-sub001/internal/realtime"
)

type Deps struct {
	Auth          fiber.Handler
	RequireStaff  fiber.Handler
	RateLimit     fiber.Handler
	Gateway       *realtime.Gateway
	Presence      *presence.Store
	Applications  *handler.ApplicationHandler
	Messages      *handler.MessageHandler
	Notifications *handler.NotificationHandler
	Appointments  *handler.AppointmentHandler
	Documents     *handler.DocumentHandler
}

func Register(app *fiber.App, d Deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// realtime endpoint; the token travels as ?token= (no headers on
	// the browser websocket handshake), verified by the gateway itself
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(d.Gateway.Handle))

	api := app.Group("/api/v1")
	if d.RateLimit != nil {
		api.Use(d.RateLimit)
	}
	api.Use(d.Auth)

	api.Post("/applications", d.Applications.Submit)
	api.Get("/applications", d.Applications.ListMine)
	api.Get("/applications/:id", d.Applications.Get)
	api.Patch("/applications/:id/status", d.RequireStaff, d.Applications.UpdateStatus)
	api.Get("/applications/:id/messages", d.Messages.ListByApplication)
	api.Get("/applications/:id/documents", d.Documents.ListByApplication)

	api.Post("/messages", d.Messages.Send)

	api.Get("/notifications", d.Notifications.ListMine)
	api.Patch("/notifications/:id/read", d.Notifications.MarkRead)
	api.Delete("/notifications/:id", d.Notifications.Delete)

	api.Post("/appointments", d.Appointments.Schedule)
	api.Get("/appointments", d.Appointments.ListMine)
	api.Delete("/appointments/:id", d.Appointments.Cancel)

	api.Patch("/documents/:id/review", d.RequireStaff, d.Documents.Review)

	if d.Presence != nil {
		api.Get("/presence/:user_id", func(c *fiber.Ctx) error {
			uid := c.Params("user_id")
			return c.JSON(fiber.Map{"user_id": uid, "online": d.Presence.IsOnline(c.Context(), uid)})
		})
	}
}
