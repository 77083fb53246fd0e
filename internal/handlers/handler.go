package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/soltix-resample/internal/config"
	"github.com/soltixdb/soltix-resample/internal/logging"
	"github.com/soltixdb/soltix-resample/internal/models"
	"github.com/soltixdb/soltix-resample/internal/services"
)

// Version is reported by the health endpoint
var Version = "1.0.0"

// Handler contains all HTTP handlers
type Handler struct {
	logger *logging.Logger
	// Reported by Health
	defaultAggregator string
	// Services
	resampleService *services.ResampleService
}

// New creates a new handler instance
func New(logger *logging.Logger, resampleCfg config.ResampleConfig) *Handler {
	return &Handler{
		logger:            logger,
		defaultAggregator: resampleCfg.DefaultAggregator,
		resampleService:   services.NewResampleService(logger, resampleCfg),
	}
}

// serviceError renders a service layer error
func serviceError(c *fiber.Ctx, err error, fallbackCode string) error {
	if svcErr, ok := err.(*services.ServiceError); ok {
		return c.Status(svcErr.Status()).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    svcErr.Code,
				Message: svcErr.Message,
				Details: svcErr.Details,
			},
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    fallbackCode,
			Message: err.Error(),
		},
	})
}
