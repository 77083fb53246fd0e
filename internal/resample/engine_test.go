package resample

import (
	"strings"
	"sync"
	"testing"

	"github.com/soltixdb/soltix-resample/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func concat(values []string, _, _ float64) string {
	return strings.Join(values, "")
}

func sum(values []float64, overlapFirst, overlapLast float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for i, v := range values {
		weight := 1.0
		if i == 0 {
			weight = overlapFirst
		} else if i == len(values)-1 {
			weight = overlapLast
		}
		total += v * weight
	}
	return total
}

type aggregateCall struct {
	values       []float64
	overlapFirst float64
	overlapLast  float64
}

// recorder wraps sum and keeps a copy of every window it was called with
func recorder(calls *[]aggregateCall) Aggregator[float64] {
	return func(values []float64, overlapFirst, overlapLast float64) float64 {
		cp := make([]float64, len(values))
		copy(cp, values)
		*calls = append(*calls, aggregateCall{cp, overlapFirst, overlapLast})
		return sum(values, overlapFirst, overlapLast)
	}
}

func TestDown_ExactTwoToOne(t *testing.T) {
	source := series.New[string]()
	source.Set(1000, "1.000K")
	source.Set(1001, "1.001K")
	source.Set(1010, "1.010K")
	source.Set(1011, "1.011K")
	source.Set(1100, "1.100K")
	source.Set(1101, "1.101K")
	source.Set(1200, "1.200K")
	source.Set(1301, "1.301K")
	source.Set(2000, "2.000K")
	source.Set(2001, "2.001K")

	target := Down(source, Divide(2), concat)

	want := map[int64]string{
		500:  "1.000K1.001K",
		505:  "1.010K1.011K",
		550:  "1.100K1.101K",
		600:  "1.200K",
		650:  "1.301K",
		1000: "2.000K2.001K",
	}
	assert.Equal(t, len(want), target.Len())
	for ts, expected := range want {
		got, ok := target.Get(ts)
		require.True(t, ok, "missing slot %d", ts)
		assert.Equal(t, expected, got, "slot %d", ts)
	}
}

func TestDown_ThreeToTwo(t *testing.T) {
	source := series.New[float64]()
	for _, ts := range []int64{3, 4, 5, 6, 7, 9, 30, 61, 92} {
		series.Add(source, ts, 1.0)
	}

	ratio := 2.0 / 3.0
	target := series.New[float64]()
	stats := DownInto(source, target, Ratio(ratio), sum)

	want := map[int64]float64{
		2:  4.0 / 3.0,
		3:  4.0 / 3.0,
		4:  5.0 / 3.0,
		5:  2.0 / 3.0,
		6:  1.0,
		20: 1.0,
		40: 1.0 / 3.0,
		41: 2.0 / 3.0,
		61: 2.0 / 3.0,
		62: 1.0 / 3.0,
	}
	assert.Equal(t, 10, target.Len())
	for ts, expected := range want {
		got, ok := target.Get(ts)
		require.True(t, ok, "missing slot %d", ts)
		assert.InDelta(t, expected, got, 1e-10, "slot %d", ts)
	}

	assert.Equal(t, Stats{Samples: 9, Slots: 7, Remainders: 3}, stats)
}

func TestDown_ThreeToTwoWindows(t *testing.T) {
	source := series.New[float64]()
	source.Set(4, 4)
	source.Set(5, 5)
	source.Set(9, 9)

	var calls []aggregateCall
	target := Down(source, Ratio(2.0/3.0), recorder(&calls))

	// 4 -> 2.67 (slot 2, 1/3), 5 -> 3.33 (slot 3, 2/3), 9 -> 6.0 (slot 6, 1)
	require.Len(t, calls, 4)

	assert.Equal(t, []float64{4}, calls[0].values)
	assert.InDelta(t, 1.0/3.0, calls[0].overlapFirst, 1e-10)
	assert.InDelta(t, 1.0/3.0, calls[0].overlapLast, 1e-10)

	// Remainder of 4 continues into slot 3 together with 5
	assert.Equal(t, []float64{4, 5}, calls[1].values)
	assert.InDelta(t, 2.0/3.0, calls[1].overlapFirst, 1e-10)
	assert.InDelta(t, 2.0/3.0, calls[1].overlapLast, 1e-10)

	// Remainder of 5 has no company in slot 4 and is emitted alone
	assert.Equal(t, []float64{5}, calls[2].values)
	assert.InDelta(t, 1.0/3.0, calls[2].overlapFirst, 1e-10)
	assert.InDelta(t, 1.0/3.0, calls[2].overlapLast, 1e-10)

	assert.Equal(t, []float64{9}, calls[3].values)
	assert.InDelta(t, 1.0, calls[3].overlapFirst, 1e-10)

	assert.Equal(t, []int64{2, 3, 4, 6}, target.Timestamps())
}

func TestDown_EmptySource(t *testing.T) {
	called := false
	agg := func(values []float64, _, _ float64) float64 {
		called = true
		return 0
	}

	target := series.New[float64]()
	stats := DownInto(series.New[float64](), target, Ratio(0.5), agg)

	assert.Equal(t, 0, target.Len())
	assert.Equal(t, Stats{}, stats)
	assert.False(t, called)
}

func TestDown_IdentityReproducesSource(t *testing.T) {
	source := series.New[float64]()
	values := map[int64]float64{-7: 1.5, 0: 2, 1: 3.25, 2: -4, 10: 100, 11: 0}
	for ts, v := range values {
		source.Set(ts, v)
	}

	target := Down(source, Identity(), sum)

	assert.Equal(t, source.Timestamps(), target.Timestamps())
	for ts, v := range values {
		got, ok := target.Get(ts)
		require.True(t, ok)
		assert.Equal(t, v, got)
	}
}

func TestDown_RemainderBelowToleranceDiscarded(t *testing.T) {
	nearlyAligned := func(source int64) MisalignedTimestamp {
		return MisalignedTimestamp{Timestamp: source / 2, Overlap: 0.99995}
	}

	source := series.New[float64]()
	source.Set(0, 1)
	source.Set(1, 1)
	source.Set(10, 1)

	target := series.New[float64]()
	stats := DownInto(source, target, nearlyAligned, sum)

	assert.Equal(t, []int64{0, 5}, target.Timestamps())
	assert.Equal(t, 0, stats.Remainders)
}

func TestDown_RemainderAboveToleranceCarried(t *testing.T) {
	spill := func(source int64) MisalignedTimestamp {
		return MisalignedTimestamp{Timestamp: source, Overlap: 0.9998}
	}

	source := series.New[float64]()
	source.Set(0, 10)

	target := Down(source, spill, sum)

	assert.Equal(t, []int64{0, 1}, target.Timestamps())
	v, _ := target.Get(0)
	assert.InDelta(t, 9.998, v, 1e-9)
	v, _ = target.Get(1)
	assert.InDelta(t, 0.002, v, 1e-9)
}

func TestDown_TrailingRemainderFlushed(t *testing.T) {
	source := series.New[float64]()
	source.Set(1, 8) // 0.5 -> slot 0 with half the weight

	target := Down(source, Ratio(0.5), sum)

	assert.Equal(t, []int64{0, 1}, target.Timestamps())
	v, _ := target.Get(0)
	assert.InDelta(t, 4, v, 1e-12)
	v, _ = target.Get(1)
	assert.InDelta(t, 4, v, 1e-12)
}

func TestDownInto_OverwritesTarget(t *testing.T) {
	source := series.New[float64]()
	source.Set(0, 1)
	source.Set(1, 2)

	target := series.New[float64]()
	target.Set(0, 99)
	target.Set(42, 7)

	DownInto(source, target, Divide(2), sum)

	v, _ := target.Get(0)
	assert.Equal(t, 3.0, v)
	v, _ = target.Get(42)
	assert.Equal(t, 7.0, v)
}

func TestDown_IndependentRuns(t *testing.T) {
	const runs = 8

	var wg sync.WaitGroup
	results := make([]*series.Series[float64], runs)
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			source := series.New[float64]()
			for ts := int64(0); ts < 1000; ts++ {
				source.Set(ts, float64(i))
			}
			results[i] = Down(source, Ratio(0.25), sum)
		}(i)
	}
	wg.Wait()

	for i, target := range results {
		// 0.75 of the last sample spills past slot 249
		assert.Equal(t, 251, target.Len())
		v, _ := target.Get(10)
		assert.InDelta(t, 4*float64(i), v, 1e-9)
	}
}

func TestTransforms(t *testing.T) {
	tests := []struct {
		name      string
		transform TimeTransform
		source    int64
		want      MisalignedTimestamp
	}{
		{"identity", Identity(), 17, MisalignedTimestamp{17, 1.0}},
		{"divide exact", Divide(2), 1000, MisalignedTimestamp{500, 1.0}},
		{"divide odd", Divide(2), 1301, MisalignedTimestamp{650, 1.0}},
		{"divide negative floors", Divide(2), -3, MisalignedTimestamp{-2, 1.0}},
		{"divide negative exact", Divide(2), -4, MisalignedTimestamp{-2, 1.0}},
		{"ratio aligned", Ratio(0.5), 4, MisalignedTimestamp{2, 1.0}},
		{"ratio half", Ratio(0.5), 5, MisalignedTimestamp{2, 0.5}},
		{"ratio negative floors", Ratio(0.5), -3, MisalignedTimestamp{-2, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.transform(tt.source)
			assert.Equal(t, tt.want.Timestamp, got.Timestamp)
			assert.InDelta(t, tt.want.Overlap, got.Overlap, 1e-12)
		})
	}
}

func TestRatio_TwoThirds(t *testing.T) {
	transform := Ratio(2.0 / 3.0)

	tests := []struct {
		source  int64
		slot    int64
		overlap float64
	}{
		{3, 2, 1.0},
		{4, 2, 1.0 / 3.0},
		{5, 3, 2.0 / 3.0},
		{6, 4, 1.0},
		{92, 61, 2.0 / 3.0},
	}
	for _, tt := range tests {
		got := transform(tt.source)
		assert.Equal(t, tt.slot, got.Timestamp, "source %d", tt.source)
		assert.InDelta(t, tt.overlap, got.Overlap, 1e-10, "source %d", tt.source)
	}
}
