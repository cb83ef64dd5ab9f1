package handler

import (
	"context"

	"jobsync/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    pinger
	cache pinger
}

func NewHealthHandler(db, cache pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Check)
}

// Check reports liveness plus dependency status. The cache being down is
// degraded, not unhealthy: the API keeps serving without it.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	checks := map[string]string{}

	status := fiber.StatusOK
	if h.db != nil {
		if err := h.db.Ping(c.Context()); err != nil {
			checks["database"] = "down"
			status = fiber.StatusServiceUnavailable
		} else {
			checks["database"] = "up"
		}
	}
	if h.cache != nil {
		if err := h.cache.Ping(c.Context()); err != nil {
			checks["cache"] = "degraded"
		} else {
			checks["cache"] = "up"
		}
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "unhealthy", "SERVICE_UNAVAILABLE")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, checks)
}
