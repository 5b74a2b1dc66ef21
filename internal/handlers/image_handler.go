package handlers

import (
	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ImageHandler struct {
	feed *services.FeedService
}

func NewImageHandler(feed *services.FeedService) *ImageHandler {
	return &ImageHandler{feed: feed}
}

// Get streams an attachment with its stored content type.
func (h *ImageHandler) Get(c *fiber.Ctx) error {
	blob, err := h.feed.Attachment(c.UserContext(), c.Params("key"))
	if err != nil {
		return respondError(c, err)
	}

	contentType := blob.ContentType
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")

	size := -1
	if blob.Size > 0 {
		size = int(blob.Size)
	}
	// fasthttp closes the body once it has been written.
	return c.SendStream(blob.Body, size)
}
