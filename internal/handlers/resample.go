package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/soltix-resample/internal/logging"
	"github.com/soltixdb/soltix-resample/internal/models"
)

// Resample handles resample requests
// POST /v1/resample
func (h *Handler) Resample(c *fiber.Ctx) error {
	var req models.ResampleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_JSON",
				Message: "Failed to parse JSON body",
				Details: map[string]interface{}{"error": err.Error()},
			},
		})
	}

	if err := req.Validate(); err != nil {
		return invalidRequest(c, err)
	}

	resp, err := h.resampleService.Execute(c.UserContext(), &req)
	if err != nil {
		logging.WarnCtx(logging.WithDefaultLogger(c.UserContext(), h.logger), "Resample failed",
			"transform", req.Transform.Type,
			"aggregator", req.Aggregator,
			"points", len(req.Points),
			"error", err,
		)
		return serviceError(c, err, "RESAMPLE_FAILED")
	}

	return c.JSON(resp)
}

// ResampleBatch handles batch resample requests
// POST /v1/resample/batch
func (h *Handler) ResampleBatch(c *fiber.Ctx) error {
	var req models.BatchResampleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_JSON",
				Message: "Failed to parse JSON body",
				Details: map[string]interface{}{"error": err.Error()},
			},
		})
	}

	if len(req.Series) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "series must contain at least one entry",
			},
		})
	}

	resp, err := h.resampleService.ExecuteBatch(c.UserContext(), &req)
	if err != nil {
		return serviceError(c, err, "RESAMPLE_FAILED")
	}

	return c.JSON(resp)
}

// invalidRequest renders a validation error; non-fiber errors are still a bad request
func invalidRequest(c *fiber.Ctx, err error) error {
	status := fiber.StatusBadRequest
	message := err.Error()

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(status).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: message,
		},
	})
}
