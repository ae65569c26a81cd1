package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/borderlesste/cavb-visa-sub001/internal/auth"
	"github.com/borderlesste/cavb-visa-sub001/internal/config"
	"github.com/borderlesste/cavb-visa-sub001/internal/events"
	"github.com/borderlesste/cavb-visa-sub001/internal/handler"
	"github.com/borderlesste/cavb-visa-sub001/internal/logger"
	"github.com/borderlesste/cavb-visa-sub001/internal/metrics"
	"github.com/borderlesste/cavb-visa-sub001/internal/middleware"
	"github.com/borderlesste/cavb-visa-sub001/internal/presence"
	"github.com/borderlesste/cavb-visa-sub001/internal/realtime"
	"github.com/borderlesste/cavb-visa-sub001/internal/repository"
	"github.com/borderlesste/cavb-visa-sub001/internal/routes"
	"github.com/borderlesste/cavb-visa-sub001/internal/server"
	"github.com/borderlesste/cavb-visa-sub001/internal/service"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("jwt secret is required")
	}

	slog, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = slog.Sync() }()

	metrics.Init()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	pool, err := repository.Connect(ctx, cfg.Postgres.URL)
	cancel()
	if err != nil {
		slog.Fatalw("postgres connect", "err", err)
	}
	defer pool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() { _ = rdb.Close() }()

	publisher := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents, slog)
	defer func() { _ = publisher.Close() }()

	verifier := auth.NewVerifier(cfg.JWT.Secret)
	registry := realtime.NewRegistry()
	dispatcher := realtime.NewDispatcher(registry, slog)
	pres := presence.NewStore(rdb, cfg.Redis.Prefix, 0)
	gateway := realtime.NewGateway(registry, verifier, pres, slog, realtime.Options{
		PingInterval:   cfg.PingInterval,
		WriteDeadline:  cfg.WriteDeadline,
		PongWait:       cfg.PongWait,
		MaxMessageSize: cfg.WS.MaxMessageSizeBytes,
		SendBuffer:     cfg.WS.SendBufferSize,
	})

	appRepo := repository.NewApplicationRepo(pool)
	notifRepo := repository.NewNotificationRepo(pool)
	msgRepo := repository.NewMessageRepo(pool)
	apptRepo := repository.NewAppointmentRepo(pool)
	docRepo := repository.NewDocumentRepo(pool)

	appSvc := service.NewApplicationService(appRepo, notifRepo, dispatcher, publisher, slog)
	msgSvc := service.NewMessageService(msgRepo, dispatcher, publisher, slog)
	notifSvc := service.NewNotificationService(notifRepo, dispatcher, publisher, slog)
	apptSvc := service.NewAppointmentService(apptRepo, notifRepo, dispatcher, publisher, slog)
	docSvc := service.NewDocumentService(docRepo, appRepo, notifRepo, dispatcher, publisher, slog)

	limiter := middleware.NewRateLimiter(rdb, cfg.Redis.Prefix, cfg.RateLimit.Requests, cfg.RateLimitWindow)

	app := server.New(routes.Deps{
		Auth:          auth.Middleware(verifier),
		RequireStaff:  auth.RequireRole(handler.RoleOfficer, handler.RoleAdmin),
		RateLimit:     limiter.Handler(func(c *fiber.Ctx) string { return c.IP() }),
		Gateway:       gateway,
		Presence:      pres,
		Applications:  handler.NewApplicationHandler(appSvc),
		Messages:      handler.NewMessageHandler(msgSvc, appSvc),
		Notifications: handler.NewNotificationHandler(notifSvc),
		Appointments:  handler.NewAppointmentHandler(apptSvc),
		Documents:     handler.NewDocumentHandler(docSvc, appSvc),
	})

	errs := make(chan error, 1)
	go func() {
		addr := ":" + strconv.Itoa(cfg.App.Port)
		slog.Infow("starting server", "addr", addr, "env", cfg.App.Env)
		errs <- app.Listen(addr)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errs:
		slog.Fatalw("server error", "err", err)
	case s := <-sig:
		slog.Infow("signal received", "signal", s.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Warnw("server shutdown", "err", err)
	}
	slog.Infow("shutdown complete")
}
