package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/itcguard/itc-api/internal/application/dto"
)

// pinger is satisfied by every record store.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness and store reachability.
type HealthHandler struct {
	service string
	store   pinger
}

// NewHealthHandler builds the handler.
func NewHealthHandler(service string, store pinger) *HealthHandler {
	return &HealthHandler{service: service, store: store}
}

// Health godoc
// @Summary      Liveness and store status
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      503  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   h.service,
		DBStatus:  "connected",
	}
	if err := h.store.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.DBStatus = "unreachable"
		resp.Error = err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
