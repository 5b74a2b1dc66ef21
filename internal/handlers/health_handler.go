package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/dto"
	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/storage"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	records storage.RecordStore
}

func NewHealthHandler(records storage.RecordStore) *HealthHandler {
	return &HealthHandler{records: records}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if err := h.records.Ping(ctx); err != nil {
		slog.Error("health check: record store ping failed", "error", err)
		dbStatus = "unhealthy"
	}

	return c.JSON(dto.HealthResponse{
		OK:        true,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}
