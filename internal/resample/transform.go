package resample

import "math"

// MisalignedTimestamp maps a source sample onto a target slot.
// Overlap is the fraction (0.0 to 1.0) of the sample's weight that lands in
// Timestamp; the remaining 1-Overlap spills into Timestamp+1. 1.0 means the
// sample is perfectly aligned.
type MisalignedTimestamp struct {
	Timestamp int64
	Overlap   float64
}

// TimeTransform maps a source timestamp to its target slot.
//
// A transform must be a pure function of its input. When a source timestamp
// falls exactly on the boundary between two target slots it MUST resolve to
// the lower slot; otherwise the lower slot's contribution is silently dropped.
// Target timestamps must be non-decreasing for increasing source timestamps.
// None of this is checked by the engine.
type TimeTransform func(source int64) MisalignedTimestamp

// Identity maps every timestamp onto itself with full overlap
func Identity() TimeTransform {
	return func(source int64) MisalignedTimestamp {
		return MisalignedTimestamp{Timestamp: source, Overlap: 1.0}
	}
}

// Divide maps n consecutive source slots onto one target slot (exact n-to-1).
// Negative timestamps floor toward the lower slot.
func Divide(n int64) TimeTransform {
	return func(source int64) MisalignedTimestamp {
		target := source / n
		if source%n != 0 && (source < 0) != (n < 0) {
			target--
		}
		return MisalignedTimestamp{Timestamp: target, Overlap: 1.0}
	}
}

// Ratio scales source timestamps by ratio (source slot width / target slot width).
// A ratio of 2/3 maps three source slots onto two target slots; the fractional
// part of the scaled timestamp becomes the spill into the next slot.
func Ratio(ratio float64) TimeTransform {
	return func(source int64) MisalignedTimestamp {
		precise := float64(source) * ratio
		floor := math.Floor(precise)
		return MisalignedTimestamp{
			Timestamp: int64(floor),
			Overlap:   1.0 - (precise - floor),
		}
	}
}
