package handlers

import (
	"io"
	"mime/multipart"

	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/dto"
	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SightingHandler struct {
	lifecycle *services.LifecycleService
	feed      *services.FeedService
}

func NewSightingHandler(lifecycle *services.LifecycleService, feed *services.FeedService) *SightingHandler {
	return &SightingHandler{lifecycle: lifecycle, feed: feed}
}

// Create accepts a multipart sighting report.
func (h *SightingHandler) Create(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "expected a multipart form",
		})
	}

	raw := services.RawSubmission{
		Title:          formValue(form, "title"),
		Description:    formValue(form, "description"),
		Name:           formValue(form, "name"),
		Email:          formValue(form, "email"),
		SuspicionMeter: formValue(form, "suspicious_meter"),
		Consent:        formValue(form, "consent"),
	}
	for _, fh := range form.File["photos"] {
		raw.Photos = append(raw.Photos, uploadFromHeader(fh))
	}

	id, err := h.lifecycle.Submit(c.UserContext(), raw)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateSightingResponse{OK: true, ID: id})
}

// List serves the public feed of approved sightings.
func (h *SightingHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", services.DefaultFeedLimit)
	offset := c.QueryInt("offset", 0)

	items, err := h.feed.PublicFeed(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPublicFeedResponse(items))
}

func formValue(form *multipart.Form, key string) string {
	if vals := form.Value[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

func uploadFromHeader(fh *multipart.FileHeader) services.Upload {
	return services.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
