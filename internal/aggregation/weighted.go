// Package aggregation provides reference aggregators for the resample engine.
// Each aggregator reduces the values gathered for one target slot, weighting
// the first and last values by their overlap with the slot.
package aggregation

import "math"

// unitWeightTolerance is how close to 1.0 a weight must be for an integer
// value to be added exactly instead of going through truncation.
const unitWeightTolerance = 1e-10

// Weight returns the weight of values[i] in a window of n values.
// A single-value window weighs overlapFirst.
func Weight(i, n int, overlapFirst, overlapLast float64) float64 {
	switch {
	case i == 0:
		return overlapFirst
	case i == n-1:
		return overlapLast
	default:
		return 1.0
	}
}

// WeightedSum returns the overlap-weighted sum of values.
// Summing every target slot yields the sum of the source series.
func WeightedSum(values []float64, overlapFirst, overlapLast float64) float64 {
	sum := 0.0
	for i, v := range values {
		sum += v * Weight(i, len(values), overlapFirst, overlapLast)
	}
	return sum
}

// WeightedAverage returns an aggregator that scales the weighted sum by
// slotRatio (source slot width / target slot width), so rate-like quantities
// keep their magnitude instead of being summed. 0.5 is a two-to-one mapping.
// Missing source slots contribute zero mass.
func WeightedAverage(slotRatio float64) func(values []float64, overlapFirst, overlapLast float64) float64 {
	return func(values []float64, overlapFirst, overlapLast float64) float64 {
		result := 0.0
		for i, v := range values {
			result += v * slotRatio * Weight(i, len(values), overlapFirst, overlapLast)
		}
		return result
	}
}

// IntegerSum returns the overlap-weighted sum of integer values.
//
// Fully weighted values are added exactly. Partially weighted values are
// truncated toward zero and the truncated fractions are collected separately;
// the floor of that remainder is added once at the end. This keeps the loss
// below one unit per slot instead of one unit per value.
func IntegerSum(values []int64, overlapFirst, overlapLast float64) int64 {
	var accum int64
	remainder := 0.0

	for i, v := range values {
		weight := Weight(i, len(values), overlapFirst, overlapLast)
		if math.Abs(1.0-weight) < unitWeightTolerance {
			accum += v
			continue
		}

		scaled := float64(v) * weight
		truncated := int64(scaled)
		accum += truncated
		remainder += scaled - float64(truncated)
	}

	return accum + int64(math.Floor(remainder))
}
