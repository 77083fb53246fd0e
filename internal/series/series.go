package series

import "sort"

// Number is the set of value types that support accumulation.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Series is a sparse mapping from int64 timestamps to values.
// Timestamps are kept in ascending order regardless of insertion order;
// a missing timestamp means "no sample", which is distinct from a zero value.
//
// NOT THREAD-SAFE: callers sharing a Series across goroutines must serialize access.
type Series[T any] struct {
	timestamps []int64 // ascending, unique
	values     map[int64]T
}

// New creates an empty series
func New[T any]() *Series[T] {
	return &Series[T]{
		values: make(map[int64]T),
	}
}

// Get returns the value stored at ts and whether one exists
func (s *Series[T]) Get(ts int64) (T, bool) {
	v, ok := s.values[ts]
	return v, ok
}

// Set stores v at ts, overwriting any existing value.
// Appending past the last timestamp is O(1); out-of-order inserts use binary search.
func (s *Series[T]) Set(ts int64, v T) {
	if _, exists := s.values[ts]; exists {
		s.values[ts] = v
		return
	}
	s.values[ts] = v

	// Fast path: append in time order (common case)
	n := len(s.timestamps)
	if n == 0 || ts > s.timestamps[n-1] {
		s.timestamps = append(s.timestamps, ts)
		return
	}

	idx := sort.Search(n, func(i int) bool {
		return s.timestamps[i] > ts
	})
	s.timestamps = append(s.timestamps, 0)
	copy(s.timestamps[idx+1:], s.timestamps[idx:])
	s.timestamps[idx] = ts
}

// Timestamps returns an ascending snapshot of the stored timestamps.
// The returned slice is a copy and is safe to keep while the series is mutated.
func (s *Series[T]) Timestamps() []int64 {
	out := make([]int64, len(s.timestamps))
	copy(out, s.timestamps)
	return out
}

// Len returns the number of stored samples
func (s *Series[T]) Len() int {
	return len(s.timestamps)
}

// Add adds delta to the value at ts, treating a missing sample as zero,
// and returns the new total.
func Add[T Number](s *Series[T], ts int64, delta T) T {
	cur, _ := s.Get(ts)
	total := cur + delta
	s.Set(ts, total)
	return total
}
