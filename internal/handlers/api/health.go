package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
)

// Pinger checks that a storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service liveness.
type HealthHandler struct {
	storage string
	pinger  Pinger
}

// NewHealthHandler creates a health handler. pinger may be nil for
// in-process storage.
func NewHealthHandler(storage string, pinger Pinger) *HealthHandler {
	return &HealthHandler{storage: storage, pinger: pinger}
}

// Check returns 200 when the service and its storage are usable.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.pinger.Ping(ctx); err != nil {
			return jsonError(c, fiber.StatusServiceUnavailable, "storage unavailable")
		}
	}
	return jsonSuccess(c, fiber.Map{
		"health":  "healthy",
		"storage": h.storage,
	})
}
