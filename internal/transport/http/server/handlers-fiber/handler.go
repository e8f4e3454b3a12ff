// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"portfolio-contributions/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the contributions API using the usecase layer.
type Handler struct {
	log *zap.SugaredLogger
	uc  usecase.InterfaceUsecase
}

// NewHandler constructs an HTTP handler with service dependencies.
func NewHandler(log *zap.SugaredLogger, usecase usecase.InterfaceUsecase) *Handler {
	return &Handler{
		log: log.Named("http"),
		uc:  usecase,
	}
}

// RegisterHandlers mounts the API routes on router.
func RegisterHandlers(router fiber.Router, h *Handler) {
	api := router.Group("/api/github")
	api.Get("/pull-requests", h.GetPullRequests)
	api.Get("/stats", h.GetStats)
	api.Post("/revalidate", h.PostRevalidate)
}
