package liquefaction

import (
	"fmt"

	"github.com/alexiusacademia/goliq/internal/borehole"
	"github.com/alexiusacademia/goliq/internal/soil"
)

// Interval is a soil layer with explicit bounds and resolved properties
type Interval struct {
	UpperDepth float64 `json:"upper_depth"`
	LowerDepth float64 `json:"lower_depth"`
	ClassName  string  `json:"class_name"`
	Resolved   bool    `json:"resolved"` // false when defaults were applied
	soil.Properties
}

// Thickness returns the interval thickness (m)
func (iv Interval) Thickness() float64 {
	return iv.LowerDepth - iv.UpperDepth
}

// Contains reports whether depth lies within the closed interval
func (iv Interval) Contains(depth float64) bool {
	return iv.UpperDepth <= depth && depth <= iv.LowerDepth
}

// distance returns how far depth is from the nearer boundary
func (iv Interval) distance(depth float64) float64 {
	switch {
	case depth < iv.UpperDepth:
		return iv.UpperDepth - depth
	case depth > iv.LowerDepth:
		return depth - iv.LowerDepth
	}
	return 0
}

// BuildIntervals converts ordered soil layers into contiguous intervals.
// Interval i starts where interval i-1 ends; the first starts at 0.
// Class names are resolved by exact match; misses get soil.Default and an event.
func BuildIntervals(layers []borehole.SoilLayer, table *soil.Table, rec *Recorder) ([]Interval, error) {
	if len(layers) == 0 {
		return nil, configErr("soil_layers", "[]", "at least one soil layer is required")
	}
	if table == nil {
		table = soil.DefaultTable()
	}

	intervals := make([]Interval, 0, len(layers))
	upper := 0.0
	for i, l := range layers {
		if l.LowerDepth <= upper {
			return nil, configErr(fmt.Sprintf("soil_layers[%d].lower_depth", i), l.LowerDepth,
				fmt.Sprintf("must be greater than %.2f", upper))
		}

		props, ok := table.Lookup(l.ClassName)
		if !ok {
			props = soil.Default
			rec.Record(Event{
				Kind:      UnresolvedSoilClass,
				Depth:     l.LowerDepth,
				ClassName: l.ClassName,
				Detail:    "soil class not in property table, using defaults",
			})
		}

		intervals = append(intervals, Interval{
			UpperDepth: upper,
			LowerDepth: l.LowerDepth,
			ClassName:  l.ClassName,
			Resolved:   ok,
			Properties: props,
		})
		upper = l.LowerDepth
	}
	return intervals, nil
}
