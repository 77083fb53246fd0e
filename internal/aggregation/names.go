package aggregation

import (
	"fmt"

	"github.com/soltixdb/soltix-resample/internal/resample"
)

// Name identifies an aggregator selectable by configuration or request
type Name string

const (
	// NameSum preserves total mass
	NameSum Name = "sum"
	// NameAverage preserves rate magnitude using the slot ratio
	NameAverage Name = "avg"
	// NameIntegerSum preserves total mass of integer series with compensated rounding
	NameIntegerSum Name = "isum"
	// NameP50, NameP90 and NameP99 are overlap-weighted quantiles
	NameP50 Name = "p50"
	NameP90 Name = "p90"
	NameP99 Name = "p99"
)

var quantiles = map[Name]float64{
	NameP50: 0.50,
	NameP90: 0.90,
	NameP99: 0.99,
}

// ValidNames returns all selectable aggregator names
func ValidNames() []Name {
	return []Name{NameSum, NameAverage, NameIntegerSum, NameP50, NameP90, NameP99}
}

// IsValid checks if an aggregator name is known
func IsValid(name string) bool {
	for _, n := range ValidNames() {
		if string(n) == name {
			return true
		}
	}
	return false
}

// IsInteger reports whether the aggregator operates on int64 series
func (n Name) IsInteger() bool {
	return n == NameIntegerSum
}

// Lookup returns the float64 aggregator for name.
// slotRatio is only used by the average aggregator.
func Lookup(name Name, slotRatio float64) (resample.Aggregator[float64], error) {
	switch name {
	case NameSum:
		return WeightedSum, nil
	case NameAverage:
		return WeightedAverage(slotRatio), nil
	case NameIntegerSum:
		return nil, fmt.Errorf("aggregator %q operates on integer series", name)
	}

	if q, ok := quantiles[name]; ok {
		fn, err := WeightedQuantile(q, DefaultQuantileAccuracy)
		if err != nil {
			return nil, err
		}
		return fn, nil
	}

	return nil, fmt.Errorf("unknown aggregator: %s", name)
}
