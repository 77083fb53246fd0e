package models

import (
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/soltix-resample/internal/aggregation"
)

// Transform types accepted in TransformRequest.Type
const (
	TransformIdentity = "identity"
	TransformDivide   = "divide"
	TransformRatio    = "ratio"
)

// Point is a single sample of a sparse series
type Point struct {
	Time  int64   `json:"t"`
	Value float64 `json:"v"`
}

// TransformRequest selects how source timestamps map onto target slots
type TransformRequest struct {
	Type    string  `json:"type"`
	Divisor int64   `json:"divisor,omitempty"` // divide: target slot spans Divisor source units
	Ratio   float64 `json:"ratio,omitempty"`   // ratio: target slots per source unit, in (0, 1]
}

// ResampleRequest represents a resample request body
type ResampleRequest struct {
	Points     []Point          `json:"points"`
	Transform  TransformRequest `json:"transform"`
	Aggregator string           `json:"aggregator,omitempty"` // empty selects the configured default
}

// Validate validates the transform and aggregator selection
func (r *ResampleRequest) Validate() error {
	if err := r.Transform.Validate(); err != nil {
		return err
	}

	if r.Aggregator != "" && !aggregation.IsValid(r.Aggregator) {
		return &fiber.Error{
			Code:    fiber.StatusBadRequest,
			Message: "aggregator must be one of: sum, avg, isum, p50, p90, p99",
		}
	}

	return nil
}

// Validate checks the transform parameters
func (t *TransformRequest) Validate() error {
	switch t.Type {
	case TransformIdentity:
		return nil
	case TransformDivide:
		if t.Divisor <= 0 {
			return &fiber.Error{
				Code:    fiber.StatusBadRequest,
				Message: "divisor must be a positive integer",
			}
		}
		return nil
	case TransformRatio:
		if math.IsNaN(t.Ratio) || t.Ratio <= 0 || t.Ratio > 1 {
			return &fiber.Error{
				Code:    fiber.StatusBadRequest,
				Message: "ratio must be in (0, 1]",
			}
		}
		return nil
	case "":
		return &fiber.Error{
			Code:    fiber.StatusBadRequest,
			Message: "transform.type is required",
		}
	default:
		return &fiber.Error{
			Code:    fiber.StatusBadRequest,
			Message: "transform.type must be one of: identity, divide, ratio",
		}
	}
}

// SlotRatio returns target slots per source unit for the transform
func (t *TransformRequest) SlotRatio() float64 {
	switch t.Type {
	case TransformDivide:
		return 1 / float64(t.Divisor)
	case TransformRatio:
		return t.Ratio
	default:
		return 1
	}
}

// BatchResampleRequest resamples several independent series in one call
type BatchResampleRequest struct {
	Series []ResampleRequest `json:"series"`
}
