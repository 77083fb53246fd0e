package aggregation

import (
	"fmt"

	"github.com/DataDog/sketches-go/ddsketch"
)

// DefaultQuantileAccuracy is the relative accuracy used by named quantile aggregators
const DefaultQuantileAccuracy = 0.01

// WeightedQuantile returns an aggregator that estimates quantile q of the
// slot's values, counting each value by its overlap weight.
// Unlike the sum aggregators it does not preserve mass across slots.
func WeightedQuantile(q, relativeAccuracy float64) (func(values []float64, overlapFirst, overlapLast float64) float64, error) {
	if q < 0 || q > 1 {
		return nil, fmt.Errorf("quantile must be in [0, 1], got %v", q)
	}
	// Fail early on a bad accuracy instead of on every slot
	if _, err := ddsketch.NewDefaultDDSketch(relativeAccuracy); err != nil {
		return nil, fmt.Errorf("invalid quantile accuracy %v: %w", relativeAccuracy, err)
	}

	return func(values []float64, overlapFirst, overlapLast float64) float64 {
		sketch, err := ddsketch.NewDefaultDDSketch(relativeAccuracy)
		if err != nil {
			return 0
		}

		for i, v := range values {
			weight := Weight(i, len(values), overlapFirst, overlapLast)
			if weight <= 0 {
				continue
			}
			_ = sketch.AddWithCount(v, weight)
		}

		if sketch.IsEmpty() {
			return 0
		}
		value, err := sketch.GetValueAtQuantile(q)
		if err != nil {
			return 0
		}
		return value
	}, nil
}
