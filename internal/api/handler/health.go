package handler

import (
	"github.com/gofiber/fiber/v2"
)

const version = "0.1.0"

type HealthHandler struct {
	provider string
}

// NewHealthHandler creates the probe handler; provider names the face backend
// reported by /ready.
func NewHealthHandler(provider string) *HealthHandler {
	return &HealthHandler{provider: provider}
}

type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version,omitempty"`
	Provider string `json:"provider,omitempty"`
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "ok",
		Version: version,
	})
}

func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:   "ready",
		Provider: h.provider,
	})
}
