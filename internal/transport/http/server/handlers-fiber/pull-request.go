package handlers_fiber

import (
	"net/http"

	"portfolio-contributions/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// GetPullRequests returns the merged pull requests of the tracked author.
func (h *Handler) GetPullRequests(c *fiber.Ctx) error {
	feed, err := h.uc.PullRequests(c.UserContext())
	if err != nil {
		h.log.Errorw("failed to get pull requests", "error", err.Error())
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToPullRequestsResponse(feed))
}

// GetStats returns aggregated statistics over the same pull requests.
func (h *Handler) GetStats(c *fiber.Ctx) error {
	feed, err := h.uc.Stats(c.UserContext())
	if err != nil {
		h.log.Errorw("failed to get stats", "error", err.Error())
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToStatsResponse(feed))
}
