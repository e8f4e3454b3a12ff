package handlers_fiber

import (
	"errors"
	"net/http"

	"portfolio-contributions/internal/entities"
	"portfolio-contributions/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

const (
	msgRateLimited  = "GitHub API rate limit exceeded. Please try again later."
	msgFetchFailed  = "Failed to fetch pull requests"
	msgUnauthorized = "Unauthorized"
	msgForbidden    = "Forbidden"
	msgInternal     = "internal error"
	msgBadRequest   = "invalid request"
)

func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	msg := msgInternal

	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		msg = msgBadRequest
	case errors.Is(err, entities.ErrUnauthorized):
		status = http.StatusUnauthorized
		msg = msgUnauthorized
	case errors.Is(err, entities.ErrForbidden):
		status = http.StatusForbidden
		msg = msgForbidden
	case errors.Is(err, entities.ErrUpstreamRateLimited):
		status = http.StatusTooManyRequests
		msg = msgRateLimited
	case errors.Is(err, entities.ErrNoFallbackAvailable):
		msg = msgFetchFailed
	}

	return c.Status(status).JSON(errorResponse(msg))
}

func errorResponse(msg string) dto.ErrorResponse {
	return dto.ErrorResponse{Error: msg}
}
