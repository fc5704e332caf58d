package server

import (
	"context"
	"errors"
	"log"
	"time"

	"eviden-bot/internal/bootstrap"
	"eviden-bot/internal/config"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const healthTimeout = 2 * time.Second

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "eviden-bot",
		BodyLimit:             10 * 1024 * 1024, // Telegram updates are small; photos arrive as file ids
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          cfg.App.UpdateTimeout + 5*time.Second,
		DisableStartupMessage: cfg.IsProduction(),
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(otelfiber.Middleware(otelfiber.WithServerName("eviden-bot")))

	if cfg.Storage.Driver == "local" {
		app.Static("/uploads", cfg.Storage.LocalDir, fiber.Static{ByteRange: true})
	}

	s := &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
	app.Get("/healthz", s.health)

	api := app.Group("/api")
	container.WebhookController.RegisterRoutes(api)

	return s
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Webhook server listening on :%s (path /api%s)", s.cfg.App.Port, s.cfg.Telegram.WebhookPath)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(s.cfg.App.UpdateTimeout)
}

func (s *Server) health(ctx *fiber.Ctx) error {
	if s.container.Health != nil {
		c, cancel := context.WithTimeout(ctx.UserContext(), healthTimeout)
		defer cancel()
		if err := s.container.Health(c); err != nil {
			s.container.Logger.Warn("SERVER", "Health check failed", map[string]interface{}{"error": err.Error()})
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
	}
	return ctx.JSON(fiber.Map{"status": "ok"})
}

// errorHandler keeps fiber's own errors (404, 405, body too large) in JSON like the rest of the API.
func errorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return ctx.Status(code).JSON(fiber.Map{"error": err.Error()})
}
