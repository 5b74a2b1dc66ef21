package handlers

import (
	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/dto"
	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ModerationHandler serves the operator-only endpoints.
type ModerationHandler struct {
	lifecycle *services.LifecycleService
	feed      *services.FeedService
}

func NewModerationHandler(lifecycle *services.LifecycleService, feed *services.FeedService) *ModerationHandler {
	return &ModerationHandler{lifecycle: lifecycle, feed: feed}
}

func (h *ModerationHandler) Pending(c *fiber.Ctx) error {
	items, err := h.feed.ModerationQueue(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPendingQueueResponse(items))
}

// Approve reports changes=0 for unknown or already approved sightings.
func (h *ModerationHandler) Approve(c *fiber.Ctx) error {
	changes, err := h.lifecycle.Approve(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ApproveResponse{OK: true, Changes: changes})
}

func (h *ModerationHandler) Reject(c *fiber.Ctx) error {
	if err := h.lifecycle.Reject(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}
