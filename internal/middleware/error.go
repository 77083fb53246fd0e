package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/soltix-resample/internal/logging"
	"github.com/soltixdb/soltix-resample/internal/models"
	"github.com/soltixdb/soltix-resample/internal/services"
)

// ErrorHandler returns a custom error handler middleware.
// Errors returned from handlers are rendered as models.ErrorResponse.
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		detail := models.ErrorDetail{
			Code:    "ERROR",
			Message: "Internal Server Error",
			Path:    c.Path(),
		}

		var fiberErr *fiber.Error
		var svcErr *services.ServiceError
		switch {
		case errors.As(err, &svcErr):
			status = svcErr.Status()
			detail.Code = svcErr.Code
			detail.Message = svcErr.Message
			detail.Details = svcErr.Details
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			detail.Message = fiberErr.Message
		}

		logging.ErrorCtx(logging.WithDefaultLogger(c.UserContext(), logger), "Request error",
			"path", c.Path(),
			"method", c.Method(),
			"status", status,
			"error", err,
		)

		return c.Status(status).JSON(models.ErrorResponse{Error: detail})
	}
}
