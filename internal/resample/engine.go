// Package resample downsamples sparse time series onto a coarser or shifted
// timeline while carrying the partial overlap of samples that straddle a
// target slot boundary into the next slot.
//
// The engine trusts its callers: transforms must be deterministic,
// monotonically non-decreasing and tie-break toward the lower slot, and
// overlap values must lie in [0, 1]. Violations produce undefined numeric
// results rather than errors; validate transform and aggregator output at the
// edge of the system if the inputs are untrusted.
package resample

import "github.com/soltixdb/soltix-resample/internal/series"

// RemainderTolerance is the smallest spill-over fraction that is carried into
// the next slot. Anything at or below it is treated as full alignment.
const RemainderTolerance = 0.0001

// Aggregator reduces the samples gathered for one target slot.
// values[0] carries weight overlapFirst, values[len-1] carries overlapLast and
// every interior value carries full weight. The engine always passes at least
// one value. The slice is reused after the call returns and must not be retained.
type Aggregator[T any] func(values []T, overlapFirst, overlapLast float64) T

// Source is the read side of a series consumed by the engine
type Source[T any] interface {
	Timestamps() []int64
	Get(ts int64) (T, bool)
}

// Sink is the write side of a series populated by the engine
type Sink[T any] interface {
	Set(ts int64, value T)
}

// Stats summarizes one resampling pass
type Stats struct {
	Samples    int // source samples consumed
	Slots      int // target slots written from a full accumulation window
	Remainders int // target slots written from a lone carried remainder
}

// Down resamples source into a new series
func Down[T any](source Source[T], transform TimeTransform, aggregate Aggregator[T]) *series.Series[T] {
	target := series.New[T]()
	DownInto(source, target, transform, aggregate)
	return target
}

// DownInto resamples source into target in a single ascending pass.
// Each write to target overwrites; existing target values are never merged.
// Only downsampling is supported: a transform that fans one source slot out
// to several target slots leaves holes in the result.
func DownInto[T any](source Source[T], target Sink[T], transform TimeTransform, aggregate Aggregator[T]) Stats {
	w := window[T]{target: target, aggregate: aggregate}

	var m MisalignedTimestamp
	for _, ts := range source.Timestamps() {
		value, ok := source.Get(ts)
		if !ok {
			continue
		}
		m = transform(ts)
		w.add(m, value)
	}

	// Flush the trailing slot; m.Timestamp is the open slot, so any remainder
	// is always written on its own.
	if len(w.values) > 0 {
		w.close(m)
	}

	return w.stats
}

// window is the accumulation state for the target slot being built.
// It lives only for the duration of one DownInto call.
type window[T any] struct {
	target    Sink[T]
	aggregate Aggregator[T]

	open         bool
	slot         int64
	values       []T
	overlapFirst float64
	overlapLast  float64

	stats Stats
}

func (w *window[T]) add(m MisalignedTimestamp, value T) {
	w.stats.Samples++

	if !w.open {
		w.open = true
		w.slot = m.Timestamp
	} else if m.Timestamp != w.slot {
		w.close(m)
		w.slot = m.Timestamp
	}

	if len(w.values) == 0 {
		w.overlapFirst = m.Overlap
	}
	w.values = append(w.values, value)
	w.overlapLast = m.Overlap
}

// close emits the current slot and seeds the next window with the unconsumed
// part of the last value. next is the mapping of the sample that triggered the
// close; when it does not land in the slot right after the closed one, the
// remainder has nowhere else to go and is emitted by itself.
func (w *window[T]) close(next MisalignedTimestamp) {
	w.target.Set(w.slot, w.aggregate(w.values, w.overlapFirst, w.overlapLast))
	w.stats.Slots++

	residual := 1.0 - w.overlapLast
	if residual <= RemainderTolerance {
		w.values = w.values[:0]
		return
	}

	last := w.values[len(w.values)-1]
	w.values = append(w.values[:0], last)
	w.overlapFirst = residual
	w.overlapLast = residual

	spill := w.slot + 1
	if next.Timestamp != spill {
		w.target.Set(spill, w.aggregate(w.values, residual, residual))
		w.stats.Remainders++
		w.values = w.values[:0]
	}
}
