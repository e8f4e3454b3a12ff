package handlers_fiber

import (
	"net/http"

	"portfolio-contributions/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// PostRevalidate invalidates the cache when the secret matches.
func (h *Handler) PostRevalidate(c *fiber.Ctx) error {
	var body dto.RevalidateRequest
	if err := c.BodyParser(&body); err != nil {
		h.log.Errorw("failed to parse body", "error", err.Error())
		return c.Status(http.StatusBadRequest).JSON(errorResponse("invalid body"))
	}

	now, err := h.uc.Invalidate(c.UserContext(), body.Secret, body.Username)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(dto.RevalidateResponse{
		Success:     true,
		Revalidated: true,
		Now:         now.UnixMilli(),
	})
}
