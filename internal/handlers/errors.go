package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/dto"
	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/services"
	"github.com/gofiber/fiber/v2"
)

// respondError writes user-facing errors and hands everything else to the
// app error handler, which logs it and answers with a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: verr.Reason})
	case errors.Is(err, services.ErrAttachmentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "not found"})
	default:
		return err
	}
}
