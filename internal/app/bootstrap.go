package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"jobsync/internal/config"
	"jobsync/internal/delivery/http/middleware"
	"jobsync/internal/delivery/http/routes"
	v1 "jobsync/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{})

	errMw := middleware.NewErrorMiddleware()
	accessMw := middleware.NewAccessLogMiddleware(logger)
	f.Use(errMw.Middleware())
	f.Use(accessMw.Middleware())

	registry := routes.NewRegistry(c.HealthHandler, c.WSHandler, v1.Deps{
		Auth:            c.AuthMiddleware,
		AuthHandler:     c.AuthHandler,
		JobsHandler:     c.JobsHandler,
		Recommendations: c.RecommendationsHandler,
		Applications:    c.ApplicationsHandler,
		Users:           c.UsersHandler,
		Contact:         c.ContactHandler,
	})
	registry.Register(f)

	go c.Hub.Run()
	if err := c.Scheduler.Start(context.Background()); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	app := &App{Fiber: f, Container: c}
	return app, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
