package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/soltix-resample/internal/aggregation"
	"github.com/soltixdb/soltix-resample/internal/models"
)

// Health reports liveness along with what this resampler accepts
func (h *Handler) Health(c *fiber.Ctx) error {
	names := aggregation.ValidNames()
	aggregators := make([]string, len(names))
	for i, n := range names {
		aggregators[i] = string(n)
	}

	return c.JSON(models.HealthResponse{
		Status:            "healthy",
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
		Version:           Version,
		DefaultAggregator: h.defaultAggregator,
		Aggregators:       aggregators,
		Transforms: []string{
			models.TransformIdentity,
			models.TransformDivide,
			models.TransformRatio,
		},
	})
}

// NotFound answers unknown routes with the request path
func (h *Handler) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "NOT_FOUND",
			Message: "Route not found",
			Path:    c.Path(),
		},
	})
}
